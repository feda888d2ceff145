// file: internals/features/finance/fees/service/bulk_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkAssignFees(t *testing.T) {
	f := newFixture()
	a, b := uuid.New(), uuid.New()
	f.enroll(a, 2)
	f.enroll(b, 1)
	f.addFee(uuid.New(), 50000_00, i64(60000_00))
	f.addFee(uuid.New(), 30000_00, nil)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{a, b},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 4, res.Inserted)
	assert.Empty(t, res.Errors)

	// new-student pricing applied to b, not a
	var newRows, regularRows int
	for _, r := range f.store.feeRows {
		if r.StudentFeeStudentID == b && r.StudentFeeIsNewStudent {
			newRows++
		}
		if r.StudentFeeStudentID == a && !r.StudentFeeIsNewStudent {
			regularRows++
		}
	}
	assert.Equal(t, 2, newRows)
	assert.Equal(t, 2, regularRows)
}

func TestBulkAssignFees_SkipsUnenrolledByDefault(t *testing.T) {
	f := newFixture()
	enrolled, ghost := uuid.New(), uuid.New()
	f.enroll(enrolled, 2)
	f.addFee(uuid.New(), 100_00, nil)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{enrolled, ghost},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Inserted)
	assert.Empty(t, res.Errors)
}

func TestBulkAssignFees_StrictEnrollment(t *testing.T) {
	f := newFixture()
	enrolled, ghost := uuid.New(), uuid.New()
	f.enroll(enrolled, 2)
	f.addFee(uuid.New(), 100_00, nil)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:         f.schoolID,
		StudentIDs:       []uuid.UUID{enrolled, ghost},
		StrictEnrollment: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ghost.String(), res.Errors[0].StudentID)
	assert.Equal(t, ErrStudentNotEnrolled.Error(), res.Errors[0].Error)
}

func TestBulkAssignFees_ClassFilter(t *testing.T) {
	f := newFixture()
	inClass, otherClass := uuid.New(), uuid.New()
	f.enroll(inClass, 2)

	otherClassID := uuid.New()
	enrID := f.enroll(otherClass, 2)
	for i := range f.store.enrollRows {
		if f.store.enrollRows[i].EnrollmentID == enrID {
			f.store.enrollRows[i].EnrollmentClassID = otherClassID
		}
	}

	f.addFee(uuid.New(), 100_00, nil)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{inClass, otherClass},
		ClassID:    &f.classID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
}

// A student enrolled in another class is filtered by the class
// filter, not unenrolled — strict mode must not flag them.
func TestBulkAssignFees_StrictEnrollmentWithClassFilter(t *testing.T) {
	f := newFixture()
	inClass, otherClass, ghost := uuid.New(), uuid.New(), uuid.New()
	f.enroll(inClass, 2)

	otherClassID := uuid.New()
	enrID := f.enroll(otherClass, 2)
	for i := range f.store.enrollRows {
		if f.store.enrollRows[i].EnrollmentID == enrID {
			f.store.enrollRows[i].EnrollmentClassID = otherClassID
		}
	}

	f.addFee(uuid.New(), 100_00, nil)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:         f.schoolID,
		StudentIDs:       []uuid.UUID{inClass, otherClass, ghost},
		ClassID:          &f.classID,
		StrictEnrollment: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ghost.String(), res.Errors[0].StudentID)
}

func TestBulkAssignFees_ExistingPairsSkipped(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 2)
	f.addFee(uuid.New(), 100_00, nil)
	f.addFee(uuid.New(), 200_00, nil)

	// first run seeds the ledger
	_, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{student},
	})
	require.NoError(t, err)

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{student},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Succeeded)
	assert.Len(t, f.store.feeRows, 2)
}

// An insert failure rolls the whole batch back: no partial success.
func TestBulkAssignFees_BatchInsertFailure(t *testing.T) {
	f := newFixture()
	a, b := uuid.New(), uuid.New()
	f.enroll(a, 2)
	f.enroll(b, 2)
	f.addFee(uuid.New(), 100_00, nil)
	f.store.insertErr = errors.New("connection reset")

	res, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{
		SchoolID:   f.schoolID,
		StudentIDs: []uuid.UUID{a, b},
	})
	require.NoError(t, err) // reported in the result, not as an error

	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 0, res.Inserted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "batch", res.Errors[0].StudentID)
	assert.Contains(t, res.Errors[0].Error, ErrBatchInsert.Error())
}

func TestBulkAssignFees_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.engine.BulkAssignFees(context.Background(), BulkRequest{SchoolID: f.schoolID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.engine.BulkAssignFees(context.Background(), BulkRequest{StudentIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrNoSchoolContext)
}
