// file: internals/features/finance/fees/service/autoassign.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   Auto-assignment trigger. Fired on enrollment confirmation
   with system authority (no user context, no permission
   check). Failures are soft: the caller embeds the result
   in its response but never fails the enrollment over it.
========================================================= */

func (e *Engine) AutoAssignOnEnrollment(ctx context.Context, enrollmentID uuid.UUID) AutoAssignResult {
	enr, err := e.store.ConfirmedEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return softFailure(err)
	}

	bd, err := e.ComputeFeesForStudent(ctx, enr.EnrollmentSchoolID, enr.EnrollmentStudentID, enr.EnrollmentSchoolYearID)
	if err != nil {
		return softFailure(err)
	}

	rows := make([]fees.StudentFee, 0, len(bd.Lines))
	for _, ln := range bd.Lines {
		rows = append(rows, feeRowFromLine(enr.EnrollmentSchoolID, *bd, ln))
	}

	// insert-or-ignore guarded by the (enrollment, fee_structure)
	// unique index — safe to re-fire on a repeated confirmation.
	inserted, err := e.store.InsertStudentFees(ctx, rows)
	if err != nil {
		return softFailure(err)
	}

	return AutoAssignResult{Success: true, FeesAssigned: inserted}
}

func softFailure(err error) AutoAssignResult {
	log.Printf("[FEES] auto-assign skipped: %v", err)
	return AutoAssignResult{Success: false, FeesAssigned: 0, Error: err.Error()}
}
