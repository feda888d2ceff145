// file: internals/features/finance/fees/service/bulk.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

/* =========================================================
   Bulk fee assignment. All lookups are batched (IN-clause
   queries building in-memory maps), breakdowns run per
   student, and the accumulated insert list goes to the
   ledger in chunked conflict-ignore writes inside one
   transaction. An insert failure rolls everything back and
   marks the whole batch failed — no partial success at the
   insert stage.
========================================================= */

type BulkRequest struct {
	SchoolID     uuid.UUID
	SchoolYearID uuid.UUID   // Nil = active year
	StudentIDs   []uuid.UUID
	ClassID      *uuid.UUID // optional filter

	// StrictEnrollment makes students without a confirmed
	// current-year enrollment produce an explicit error entry.
	// Default (false) silently skips them.
	StrictEnrollment bool
}

func (e *Engine) BulkAssignFees(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	if req.SchoolID == uuid.Nil {
		return nil, ErrNoSchoolContext
	}
	if len(req.StudentIDs) == 0 {
		return nil, ErrValidation
	}

	yearID, err := e.resolveYear(ctx, req.SchoolID, req.SchoolYearID)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{Total: len(req.StudentIDs)}

	// 1) all-time confirmed counts → new/returning per student
	counts, err := e.store.ConfirmedEnrollmentCounts(ctx, req.StudentIDs)
	if err != nil {
		return nil, err
	}

	// 2) current-year confirmed enrollments
	enrs, err := e.store.ConfirmedEnrollments(ctx, req.SchoolID, yearID, req.StudentIDs)
	if err != nil {
		return nil, err
	}
	enrByStudent := make(map[uuid.UUID]*enrollments.Enrollment, len(enrs))
	classSet := map[uuid.UUID]bool{}
	otherClass := map[uuid.UUID]bool{}
	for i := range enrs {
		enr := &enrs[i]
		if req.ClassID != nil && enr.EnrollmentClassID != *req.ClassID {
			otherClass[enr.EnrollmentStudentID] = true
			continue
		}
		enrByStudent[enr.EnrollmentStudentID] = enr
		classSet[enr.EnrollmentClassID] = true
	}

	if req.StrictEnrollment {
		// students enrolled in another class are filtered, not
		// unenrolled, so they get no error entry
		for _, sid := range req.StudentIDs {
			if _, ok := enrByStudent[sid]; !ok && !otherClass[sid] {
				res.Errors = append(res.Errors, BulkError{
					StudentID: sid.String(),
					Error:     ErrStudentNotEnrolled.Error(),
				})
			}
		}
	}

	// 3) fee structures for the class union + approved discounts
	classIDs := make([]uuid.UUID, 0, len(classSet))
	for id := range classSet {
		classIDs = append(classIDs, id)
	}
	applicable, err := e.store.ApplicableFees(ctx, req.SchoolID, yearID, classIDs)
	if err != nil {
		return nil, err
	}
	grants, err := e.store.ApprovedGrants(ctx, req.SchoolID, yearID, req.StudentIDs)
	if err != nil {
		return nil, err
	}

	// 4) existing (enrollment, fee_structure) pairs to exclude
	enrollmentIDs := make([]uuid.UUID, 0, len(enrByStudent))
	for _, enr := range enrByStudent {
		enrollmentIDs = append(enrollmentIDs, enr.EnrollmentID)
	}
	existing, err := e.store.ExistingFeePairs(ctx, enrollmentIDs)
	if err != nil {
		return nil, err
	}

	// 5) per-student breakdowns → one accumulated insert list
	var rows []fees.StudentFee
	for _, sid := range req.StudentIDs {
		enr, ok := enrByStudent[sid]
		if !ok {
			continue // silent skip (or already reported in strict mode)
		}

		matched := make([]ApplicableFee, 0, len(applicable))
		for _, af := range applicable {
			if structureMatches(af.Structure, enr) {
				matched = append(matched, af)
			}
		}

		bd := Breakdown{
			StudentID:    sid,
			EnrollmentID: enr.EnrollmentID,
			SchoolYearID: yearID,
			IsNewStudent: isNewStudent(counts[sid]),
		}
		bd.Lines = BuildBreakdown(bd.IsNewStudent, matched, grants[sid])

		for _, ln := range bd.Lines {
			if existing[FeePair{EnrollmentID: enr.EnrollmentID, FeeStructureID: ln.FeeStructureID}] {
				continue
			}
			rows = append(rows, feeRowFromLine(req.SchoolID, bd, ln))
		}
	}

	// 6) chunked conflict-ignore insert in one transaction
	inserted, err := e.store.InsertStudentFees(ctx, rows)
	if err != nil {
		if errors.Is(err, ErrBatchInsert) {
			res.Failed = res.Total
			res.Errors = append(res.Errors, BulkError{StudentID: "batch", Error: err.Error()})
			return res, nil
		}
		return nil, err
	}

	res.Inserted = inserted
	res.Succeeded = res.Total - len(res.Errors)
	res.Failed = len(res.Errors)
	return res, nil
}
