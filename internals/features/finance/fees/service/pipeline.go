// file: internals/features/finance/fees/service/pipeline.go
package service

import (
	"context"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

/* =========================================================
   Fee engine. All public operations take the injected
   store; nothing here touches a global handle.
========================================================= */

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// isNewStudent: all-time confirmed enrollments (including the current
// one) <= 1. Computed once per invocation and passed down.
func isNewStudent(count int64) bool {
	return count <= 1
}

// structureMatches keeps fee structures for the enrollment's class
// whose section is either unset (applies to every section) or equal
// to the enrollment's.
func structureMatches(fs fees.FeeStructure, enr *enrollments.Enrollment) bool {
	if fs.FeeStructureClassID != enr.EnrollmentClassID {
		return false
	}
	if fs.FeeStructureSectionID == nil {
		return true
	}
	return enr.EnrollmentSectionID != nil && *fs.FeeStructureSectionID == *enr.EnrollmentSectionID
}

// resolveYear falls back to the active school year when none given.
// A caller-supplied year must belong to the school, otherwise it
// cannot be resolved.
func (e *Engine) resolveYear(ctx context.Context, schoolID, schoolYearID uuid.UUID) (uuid.UUID, error) {
	if schoolYearID == uuid.Nil {
		return e.store.ActiveSchoolYearID(ctx, schoolID)
	}
	ok, err := e.store.SchoolYearExists(ctx, schoolID, schoolYearID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, ErrNoActiveSchoolYear
	}
	return schoolYearID, nil
}

// =======================================================
// ComputeFeesForStudent — pure computation, nothing persisted
// =======================================================

func (e *Engine) ComputeFeesForStudent(ctx context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*Breakdown, error) {
	if schoolID == uuid.Nil {
		return nil, ErrNoSchoolContext
	}

	yearID, err := e.resolveYear(ctx, schoolID, schoolYearID)
	if err != nil {
		return nil, err
	}

	enr, err := e.store.ConfirmedEnrollment(ctx, schoolID, studentID, yearID)
	if err != nil {
		return nil, err
	}

	counts, err := e.store.ConfirmedEnrollmentCounts(ctx, []uuid.UUID{studentID})
	if err != nil {
		return nil, err
	}
	newStudent := isNewStudent(counts[studentID])

	applicable, err := e.store.ApplicableFees(ctx, schoolID, yearID, []uuid.UUID{enr.EnrollmentClassID})
	if err != nil {
		return nil, err
	}
	matched := applicable[:0:0]
	for _, af := range applicable {
		if structureMatches(af.Structure, enr) {
			matched = append(matched, af)
		}
	}

	grantsByStudent, err := e.store.ApprovedGrants(ctx, schoolID, yearID, []uuid.UUID{studentID})
	if err != nil {
		return nil, err
	}

	return &Breakdown{
		StudentID:    studentID,
		EnrollmentID: enr.EnrollmentID,
		SchoolYearID: yearID,
		IsNewStudent: newStudent,
		Lines:        BuildBreakdown(newStudent, matched, grantsByStudent[studentID]),
	}, nil
}

// =======================================================
// AssignFeesToStudent — compute + idempotent persist
// =======================================================

func (e *Engine) AssignFeesToStudent(ctx context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*AssignResult, error) {
	bd, err := e.ComputeFeesForStudent(ctx, schoolID, studentID, schoolYearID)
	if err != nil {
		return nil, err
	}

	rows := make([]fees.StudentFee, 0, len(bd.Lines))
	for _, ln := range bd.Lines {
		rows = append(rows, feeRowFromLine(schoolID, *bd, ln))
	}

	// The unique index on (enrollment_id, fee_structure_id) plus the
	// conflict-ignore insert makes a repeat call write nothing, even
	// under concurrent invocations.
	inserted, err := e.store.InsertStudentFees(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &AssignResult{
		Breakdown: *bd,
		Inserted:  inserted,
		Skipped:   len(rows) - inserted,
	}, nil
}

func feeRowFromLine(schoolID uuid.UUID, bd Breakdown, ln FeeLine) fees.StudentFee {
	return fees.StudentFee{
		StudentFeeSchoolID:       schoolID,
		StudentFeeStudentID:      bd.StudentID,
		StudentFeeEnrollmentID:   bd.EnrollmentID,
		StudentFeeFeeStructureID: ln.FeeStructureID,
		StudentFeeOriginalCents:  ln.OriginalCents,
		StudentFeeDiscountCents:  ln.DiscountCents,
		StudentFeeFinalCents:     ln.FinalCents,
		StudentFeeBalanceCents:   ln.FinalCents,
		StudentFeeIsNewStudent:   ln.IsNewStudent,
		StudentFeeStatus:         fees.StudentFeeStatusPending,
	}
}
