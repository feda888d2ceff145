// file: internals/features/finance/fees/service/memory_store_test.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

/* =========================================================
   In-memory Store fake. Mirrors the GORM implementation's
   error contract so the engine tests exercise the same
   paths the production store produces.
========================================================= */

type memoryStore struct {
	activeYears map[uuid.UUID]uuid.UUID // school → active year
	yearSchools map[uuid.UUID]uuid.UUID // year → owning school

	enrollRows   []enrollments.Enrollment
	allTimeCount map[uuid.UUID]int64

	applicable []ApplicableFee
	grants     map[uuid.UUID][]DiscountGrant

	feeRows   []fees.StudentFee
	insertErr error // forces the batch-insert failure path

	siblingRule      *fees.Discount
	parents          map[uuid.UUID][]uuid.UUID
	siblingCounts    map[uuid.UUID]int64
	studentDiscounts []fees.StudentDiscount
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		activeYears:   map[uuid.UUID]uuid.UUID{},
		yearSchools:   map[uuid.UUID]uuid.UUID{},
		allTimeCount:  map[uuid.UUID]int64{},
		grants:        map[uuid.UUID][]DiscountGrant{},
		parents:       map[uuid.UUID][]uuid.UUID{},
		siblingCounts: map[uuid.UUID]int64{},
	}
}

var _ Store = (*memoryStore)(nil)

func (m *memoryStore) ActiveSchoolYearID(_ context.Context, schoolID uuid.UUID) (uuid.UUID, error) {
	id, ok := m.activeYears[schoolID]
	if !ok {
		return uuid.Nil, ErrNoActiveSchoolYear
	}
	return id, nil
}

func (m *memoryStore) SchoolYearExists(_ context.Context, schoolID, schoolYearID uuid.UUID) (bool, error) {
	if m.activeYears[schoolID] == schoolYearID {
		return true, nil
	}
	return m.yearSchools[schoolYearID] == schoolID, nil
}

func (m *memoryStore) ConfirmedEnrollment(_ context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*enrollments.Enrollment, error) {
	for i := range m.enrollRows {
		e := &m.enrollRows[i]
		if e.EnrollmentSchoolID == schoolID &&
			e.EnrollmentStudentID == studentID &&
			e.EnrollmentSchoolYearID == schoolYearID &&
			e.EnrollmentStatus == enrollments.EnrollmentStatusConfirmed {
			return e, nil
		}
	}
	return nil, ErrStudentNotEnrolled
}

func (m *memoryStore) ConfirmedEnrollmentByID(_ context.Context, enrollmentID uuid.UUID) (*enrollments.Enrollment, error) {
	for i := range m.enrollRows {
		e := &m.enrollRows[i]
		if e.EnrollmentID == enrollmentID && e.EnrollmentStatus == enrollments.EnrollmentStatusConfirmed {
			return e, nil
		}
	}
	return nil, ErrStudentNotEnrolled
}

func (m *memoryStore) ConfirmedEnrollmentCounts(_ context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(studentIDs))
	for _, id := range studentIDs {
		if n, ok := m.allTimeCount[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (m *memoryStore) ConfirmedEnrollments(_ context.Context, schoolID, schoolYearID uuid.UUID, studentIDs []uuid.UUID) ([]enrollments.Enrollment, error) {
	want := make(map[uuid.UUID]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []enrollments.Enrollment
	for _, e := range m.enrollRows {
		if e.EnrollmentSchoolID == schoolID &&
			e.EnrollmentSchoolYearID == schoolYearID &&
			want[e.EnrollmentStudentID] &&
			e.EnrollmentStatus == enrollments.EnrollmentStatusConfirmed {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) ApplicableFees(_ context.Context, _, schoolYearID uuid.UUID, classIDs []uuid.UUID) ([]ApplicableFee, error) {
	want := make(map[uuid.UUID]bool, len(classIDs))
	for _, id := range classIDs {
		want[id] = true
	}
	var out []ApplicableFee
	for _, af := range m.applicable {
		if af.Structure.FeeStructureSchoolYearID == schoolYearID && want[af.Structure.FeeStructureClassID] {
			out = append(out, af)
		}
	}
	return out, nil
}

func (m *memoryStore) ApprovedGrants(_ context.Context, _, _ uuid.UUID, studentIDs []uuid.UUID) (map[uuid.UUID][]DiscountGrant, error) {
	out := make(map[uuid.UUID][]DiscountGrant, len(studentIDs))
	for _, id := range studentIDs {
		if g, ok := m.grants[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (m *memoryStore) ExistingFeePairs(_ context.Context, enrollmentIDs []uuid.UUID) (map[FeePair]bool, error) {
	want := make(map[uuid.UUID]bool, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		want[id] = true
	}
	out := map[FeePair]bool{}
	for _, r := range m.feeRows {
		if want[r.StudentFeeEnrollmentID] {
			out[FeePair{EnrollmentID: r.StudentFeeEnrollmentID, FeeStructureID: r.StudentFeeFeeStructureID}] = true
		}
	}
	return out, nil
}

func (m *memoryStore) InsertStudentFees(_ context.Context, rows []fees.StudentFee) (int, error) {
	if m.insertErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrBatchInsert, m.insertErr)
	}
	existing := map[FeePair]bool{}
	for _, r := range m.feeRows {
		existing[FeePair{EnrollmentID: r.StudentFeeEnrollmentID, FeeStructureID: r.StudentFeeFeeStructureID}] = true
	}
	inserted := 0
	for _, r := range rows {
		pair := FeePair{EnrollmentID: r.StudentFeeEnrollmentID, FeeStructureID: r.StudentFeeFeeStructureID}
		if existing[pair] {
			continue // conflict-ignore, like the unique index
		}
		existing[pair] = true
		m.feeRows = append(m.feeRows, r)
		inserted++
	}
	return inserted, nil
}

func (m *memoryStore) AutoApplySiblingDiscount(_ context.Context, _ uuid.UUID) (*fees.Discount, error) {
	if m.siblingRule == nil {
		return nil, ErrNoSiblingDiscountConfigured
	}
	return m.siblingRule, nil
}

func (m *memoryStore) ParentUserIDs(_ context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	return m.parents[studentID], nil
}

func (m *memoryStore) EnrolledSiblingCount(_ context.Context, _, _, studentID uuid.UUID, _ []uuid.UUID) (int64, error) {
	return m.siblingCounts[studentID], nil
}

func (m *memoryStore) StudentDiscountExists(_ context.Context, studentID, discountID, schoolYearID uuid.UUID) (bool, error) {
	for _, sd := range m.studentDiscounts {
		if sd.StudentDiscountStudentID == studentID &&
			sd.StudentDiscountDiscountID == discountID &&
			sd.StudentDiscountSchoolYearID == schoolYearID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) InsertStudentDiscount(_ context.Context, row *fees.StudentDiscount) error {
	row.StudentDiscountID = uuid.New()
	m.studentDiscounts = append(m.studentDiscounts, *row)
	return nil
}
