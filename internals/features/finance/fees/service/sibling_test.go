// file: internals/features/finance/fees/service/sibling_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

func siblingRule(requiresApproval bool) *fees.Discount {
	return &fees.Discount{
		DiscountID:               uuid.New(),
		DiscountType:             fees.DiscountTypeSibling,
		DiscountCalculationType:  fees.DiscountCalculationPercentage,
		DiscountValue:            10,
		DiscountAutoApply:        true,
		DiscountRequiresApproval: requiresApproval,
		DiscountStatus:           fees.DiscountStatusActive,
	}
}

func TestApplySiblingDiscount_AutoApproved(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	parent := uuid.New()

	f.store.siblingRule = siblingRule(false)
	f.store.parents[student] = []uuid.UUID{parent}
	f.store.siblingCounts[student] = 1

	res, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)

	assert.True(t, res.AutoApproved)
	assert.Equal(t, int64(1), res.SiblingCount)
	assert.Equal(t, fees.StudentDiscountStatusApproved, res.StudentDiscount.StudentDiscountStatus)
	assert.Equal(t, f.yearID, res.StudentDiscount.StudentDiscountSchoolYearID)
	// percentage rules resolve per fee line, not up front
	require.NotNil(t, res.StudentDiscount.StudentDiscountCalculatedAmountCents)
	assert.Equal(t, int64(0), *res.StudentDiscount.StudentDiscountCalculatedAmountCents)
}

func TestApplySiblingDiscount_RequiresApproval(t *testing.T) {
	f := newFixture()
	student := uuid.New()

	f.store.siblingRule = siblingRule(true)
	f.store.parents[student] = []uuid.UUID{uuid.New()}
	f.store.siblingCounts[student] = 2

	res, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)

	assert.False(t, res.AutoApproved)
	assert.Equal(t, fees.StudentDiscountStatusPending, res.StudentDiscount.StudentDiscountStatus)
}

func TestApplySiblingDiscount_FixedCarriesAmount(t *testing.T) {
	f := newFixture()
	student := uuid.New()

	rule := siblingRule(false)
	rule.DiscountCalculationType = fees.DiscountCalculationFixed
	rule.DiscountValue = 250 // major units
	f.store.siblingRule = rule
	f.store.parents[student] = []uuid.UUID{uuid.New()}
	f.store.siblingCounts[student] = 1

	res, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, res.StudentDiscount.StudentDiscountCalculatedAmountCents)
	assert.Equal(t, int64(250_00), *res.StudentDiscount.StudentDiscountCalculatedAmountCents)
}

func TestApplySiblingDiscount_NoRule(t *testing.T) {
	f := newFixture()

	_, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNoSiblingDiscountConfigured)
}

func TestApplySiblingDiscount_NoParent(t *testing.T) {
	f := newFixture()
	f.store.siblingRule = siblingRule(false)

	_, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNoParentLinked)
}

func TestApplySiblingDiscount_NoSibling(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.store.siblingRule = siblingRule(false)
	f.store.parents[student] = []uuid.UUID{uuid.New()}

	_, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	assert.ErrorIs(t, err, ErrNoSiblingEnrolled)
}

func TestApplySiblingDiscount_AlreadyApplied(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.store.siblingRule = siblingRule(false)
	f.store.parents[student] = []uuid.UUID{uuid.New()}
	f.store.siblingCounts[student] = 1

	_, err := f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)

	_, err = f.engine.ApplySiblingDiscount(context.Background(), f.schoolID, student, uuid.Nil)
	assert.ErrorIs(t, err, ErrDiscountAlreadyApplied)
}
