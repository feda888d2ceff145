// file: internals/features/finance/fees/service/sibling.go
package service

import (
	"context"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   Sibling-discount auto-apply resolver. No persisted state
   beyond the StudentDiscount row it creates. Check order:
   rule → parents → co-enrolled siblings → dedupe → insert.
========================================================= */

type SiblingApplyResult struct {
	StudentDiscount fees.StudentDiscount `json:"student_discount"`
	SiblingCount    int64                `json:"sibling_count"`
	AutoApproved    bool                 `json:"auto_approved"`
}

func (e *Engine) ApplySiblingDiscount(ctx context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*SiblingApplyResult, error) {
	if schoolID == uuid.Nil {
		return nil, ErrNoSchoolContext
	}

	yearID, err := e.resolveYear(ctx, schoolID, schoolYearID)
	if err != nil {
		return nil, err
	}

	// 1) the school's active auto-apply sibling rule
	rule, err := e.store.AutoApplySiblingDiscount(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	// 2) linked parents
	parentIDs, err := e.store.ParentUserIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(parentIDs) == 0 {
		return nil, ErrNoParentLinked
	}

	// 3) distinct co-enrolled siblings, excluding self
	siblings, err := e.store.EnrolledSiblingCount(ctx, schoolID, yearID, studentID, parentIDs)
	if err != nil {
		return nil, err
	}
	if siblings == 0 {
		return nil, ErrNoSiblingEnrolled
	}

	// 4) dedupe per student/discount/year
	exists, err := e.store.StudentDiscountExists(ctx, studentID, rule.DiscountID, yearID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDiscountAlreadyApplied
	}

	// 5) calculated amount: percentage resolves later per fee line,
	//    fixed carries the rule's value now (in cents).
	var calculated int64
	if rule.DiscountCalculationType == fees.DiscountCalculationFixed {
		calculated = ToCents(rule.DiscountValue)
	}

	// 6) approved immediately unless the rule requires approval
	status := fees.StudentDiscountStatusApproved
	if rule.DiscountRequiresApproval {
		status = fees.StudentDiscountStatusPending
	}

	row := fees.StudentDiscount{
		StudentDiscountSchoolID:              schoolID,
		StudentDiscountStudentID:             studentID,
		StudentDiscountDiscountID:            rule.DiscountID,
		StudentDiscountSchoolYearID:          yearID,
		StudentDiscountCalculatedAmountCents: &calculated,
		StudentDiscountStatus:                status,
	}
	if err := e.store.InsertStudentDiscount(ctx, &row); err != nil {
		return nil, err
	}

	return &SiblingApplyResult{
		StudentDiscount: row,
		SiblingCount:    siblings,
		AutoApproved:    status == fees.StudentDiscountStatusApproved,
	}, nil
}
