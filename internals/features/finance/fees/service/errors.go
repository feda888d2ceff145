// file: internals/features/finance/fees/service/errors.go
package service

import "errors"

/* =========================================================
   Error taxonomy of the fee engine. Public operations
   return these sentinels (wrapped where extra context
   helps); controllers translate them to HTTP envelopes.
========================================================= */

var (
	ErrNoSchoolContext             = errors.New("no school context")
	ErrNoActiveSchoolYear          = errors.New("no active school year")
	ErrStudentNotEnrolled          = errors.New("student has no confirmed enrollment for this school year")
	ErrNoSiblingDiscountConfigured = errors.New("no active auto-apply sibling discount configured")
	ErrNoParentLinked              = errors.New("student has no linked parent")
	ErrNoSiblingEnrolled           = errors.New("no sibling with a confirmed enrollment this school year")
	ErrDiscountAlreadyApplied      = errors.New("discount already applied for this student and school year")
	ErrBatchInsert                 = errors.New("batch insert failed")
	ErrValidation                  = errors.New("invalid input")
)
