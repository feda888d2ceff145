// file: internals/features/finance/fees/service/autoassign_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoAssignOnEnrollment(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	enrID := f.enroll(student, 1)
	f.addFee(uuid.New(), 50000_00, nil)
	f.addFee(uuid.New(), 30000_00, nil)

	res := f.engine.AutoAssignOnEnrollment(context.Background(), enrID)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.FeesAssigned)
	assert.Empty(t, res.Error)
	require.Len(t, f.store.feeRows, 2)
	assert.True(t, f.store.feeRows[0].StudentFeeIsNewStudent)
}

func TestAutoAssignOnEnrollment_UnknownEnrollment(t *testing.T) {
	f := newFixture()

	res := f.engine.AutoAssignOnEnrollment(context.Background(), uuid.New())

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.FeesAssigned)
	assert.Equal(t, ErrStudentNotEnrolled.Error(), res.Error)
}

// Re-firing the trigger on an already-billed enrollment is harmless.
func TestAutoAssignOnEnrollment_Refire(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	enrID := f.enroll(student, 1)
	f.addFee(uuid.New(), 100_00, nil)

	first := f.engine.AutoAssignOnEnrollment(context.Background(), enrID)
	require.True(t, first.Success)

	second := f.engine.AutoAssignOnEnrollment(context.Background(), enrID)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.FeesAssigned)
	assert.Len(t, f.store.feeRows, 1)
}

// A failed insert surfaces as a soft failure, never a panic or error
// the caller must handle.
func TestAutoAssignOnEnrollment_SoftFailure(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	enrID := f.enroll(student, 1)
	f.addFee(uuid.New(), 100_00, nil)
	f.store.insertErr = assert.AnError

	res := f.engine.AutoAssignOnEnrollment(context.Background(), enrID)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, ErrBatchInsert.Error())
}
