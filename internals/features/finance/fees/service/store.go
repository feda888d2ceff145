// file: internals/features/finance/fees/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

// FeePair identifies one ledger line's uniqueness scope.
type FeePair struct {
	EnrollmentID   uuid.UUID
	FeeStructureID uuid.UUID
}

/* =========================================================
   Store is the engine's view of its external collaborators
   (enrollment store, fee catalog, discount ledger, student
   fee ledger). The GORM implementation lives in
   gorm_store.go; tests use an in-memory fake.
========================================================= */

type Store interface {
	// --- school year ---
	ActiveSchoolYearID(ctx context.Context, schoolID uuid.UUID) (uuid.UUID, error)
	// True when the year exists and belongs to the school.
	SchoolYearExists(ctx context.Context, schoolID, schoolYearID uuid.UUID) (bool, error)

	// --- enrollment store ---
	ConfirmedEnrollment(ctx context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*enrollments.Enrollment, error)
	ConfirmedEnrollmentByID(ctx context.Context, enrollmentID uuid.UUID) (*enrollments.Enrollment, error)
	// All-time confirmed counts across school years, one map entry
	// per requested student (absent = zero).
	ConfirmedEnrollmentCounts(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// Confirmed enrollments of the given students for one year.
	ConfirmedEnrollments(ctx context.Context, schoolID, schoolYearID uuid.UUID, studentIDs []uuid.UUID) ([]enrollments.Enrollment, error)

	// --- fee catalog ---
	// Fee structures joined with their active fee types for the given
	// classes (section filtering happens in the engine).
	ApplicableFees(ctx context.Context, schoolID, schoolYearID uuid.UUID, classIDs []uuid.UUID) ([]ApplicableFee, error)

	// --- discount ledger ---
	// Approved grants per student, applies-to filter decoded.
	ApprovedGrants(ctx context.Context, schoolID, schoolYearID uuid.UUID, studentIDs []uuid.UUID) (map[uuid.UUID][]DiscountGrant, error)

	// --- student fee ledger ---
	ExistingFeePairs(ctx context.Context, enrollmentIDs []uuid.UUID) (map[FeePair]bool, error)
	// Conflict-tolerant chunked insert inside one transaction;
	// returns the number of rows actually written.
	InsertStudentFees(ctx context.Context, rows []fees.StudentFee) (int, error)

	// --- sibling discount resolver ---
	AutoApplySiblingDiscount(ctx context.Context, schoolID uuid.UUID) (*fees.Discount, error)
	ParentUserIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	EnrolledSiblingCount(ctx context.Context, schoolID, schoolYearID, studentID uuid.UUID, parentUserIDs []uuid.UUID) (int64, error)
	StudentDiscountExists(ctx context.Context, studentID, discountID, schoolYearID uuid.UUID) (bool, error)
	InsertStudentDiscount(ctx context.Context, row *fees.StudentDiscount) error
}
