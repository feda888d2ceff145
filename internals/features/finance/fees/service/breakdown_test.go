// file: internals/features/finance/fees/service/breakdown_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

func applicableFee(feeTypeID uuid.UUID, amountCents int64, newStudentCents *int64) ApplicableFee {
	return ApplicableFee{
		Structure: fees.FeeStructure{
			FeeStructureID:                    uuid.New(),
			FeeStructureFeeTypeID:             feeTypeID,
			FeeStructureAmountCents:           amountCents,
			FeeStructureNewStudentAmountCents: newStudentCents,
		},
		Type: fees.FeeType{
			FeeTypeID:       feeTypeID,
			FeeTypeName:     "Tuition",
			FeeTypeCategory: "recurring",
		},
	}
}

func i64(v int64) *int64 { return &v }

func TestBuildBreakdown_PercentageWithCap(t *testing.T) {
	tuition := uuid.New()
	activity := uuid.New()

	applicable := []ApplicableFee{
		applicableFee(tuition, 50000_00, nil),
		applicableFee(activity, 30000_00, nil),
	}
	// 10% off everything, capped at 2000.00
	grants := []DiscountGrant{{
		DiscountID:       uuid.New(),
		CalculationType:  fees.DiscountCalculationPercentage,
		Value:            10,
		MaxDiscountCents: i64(2000_00),
	}}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 2)

	// 10% of 50000.00 = 5000.00 → capped at 2000.00
	assert.Equal(t, int64(50000_00), lines[0].OriginalCents)
	assert.Equal(t, int64(2000_00), lines[0].DiscountCents)
	assert.Equal(t, int64(48000_00), lines[0].FinalCents)

	// 10% of 30000.00 = 3000.00 → capped at 2000.00
	assert.Equal(t, int64(2000_00), lines[1].DiscountCents)
	assert.Equal(t, int64(28000_00), lines[1].FinalCents)
}

func TestBuildBreakdown_NewStudentPricing(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 50000_00, i64(60000_00))}

	newLines := BuildBreakdown(true, applicable, nil)
	require.Len(t, newLines, 1)
	assert.Equal(t, int64(60000_00), newLines[0].OriginalCents)
	assert.True(t, newLines[0].IsNewStudent)

	returning := BuildBreakdown(false, applicable, nil)
	assert.Equal(t, int64(50000_00), returning[0].OriginalCents)
	assert.False(t, returning[0].IsNewStudent)
}

func TestBuildBreakdown_DiscountsSum(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 10000_00, nil)}

	grants := []DiscountGrant{
		{DiscountID: uuid.New(), CalculationType: fees.DiscountCalculationPercentage, Value: 10},
		{DiscountID: uuid.New(), CalculationType: fees.DiscountCalculationFixed, CalculatedAmountCents: i64(500_00)},
	}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 1)
	// 1000.00 + 500.00 stacked
	assert.Equal(t, int64(1500_00), lines[0].DiscountCents)
	assert.Equal(t, int64(8500_00), lines[0].FinalCents)
}

// The smallest declared cap bounds the combined reduction, not just
// the discount that declared it.
func TestBuildBreakdown_MinCapBoundsSum(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 10000_00, nil)}

	grants := []DiscountGrant{
		{DiscountID: uuid.New(), CalculationType: fees.DiscountCalculationPercentage, Value: 20, MaxDiscountCents: i64(300_00)},
		{DiscountID: uuid.New(), CalculationType: fees.DiscountCalculationFixed, CalculatedAmountCents: i64(500_00)},
	}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 1)
	// 2000.00 + 500.00 = 2500.00, bounded by the 300.00 cap
	assert.Equal(t, int64(300_00), lines[0].DiscountCents)
}

func TestBuildBreakdown_AppliesToFilter(t *testing.T) {
	tuition := uuid.New()
	activity := uuid.New()

	applicable := []ApplicableFee{
		applicableFee(tuition, 10000_00, nil),
		applicableFee(activity, 5000_00, nil),
	}
	grants := []DiscountGrant{{
		DiscountID:          uuid.New(),
		CalculationType:     fees.DiscountCalculationPercentage,
		Value:               50,
		AppliesToFeeTypeIDs: []uuid.UUID{tuition},
	}}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(5000_00), lines[0].DiscountCents)
	assert.Equal(t, int64(0), lines[1].DiscountCents)
}

func TestBuildBreakdown_DiscountNeverExceedsBase(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 1000_00, nil)}

	grants := []DiscountGrant{{
		DiscountID:            uuid.New(),
		CalculationType:       fees.DiscountCalculationFixed,
		CalculatedAmountCents: i64(9999_00),
	}}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1000_00), lines[0].DiscountCents)
	assert.Equal(t, int64(0), lines[0].FinalCents)
}

// Full scenario: 50000.00 tuition with a 30000.00 new-student price,
// 10% discount capped at 2000.00.
func TestBuildBreakdown_NewStudentCappedScenario(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 50000_00, i64(30000_00))}
	grants := []DiscountGrant{{
		DiscountID:       uuid.New(),
		CalculationType:  fees.DiscountCalculationPercentage,
		Value:            10,
		MaxDiscountCents: i64(2000_00),
	}}

	lines := BuildBreakdown(true, applicable, grants)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(30000_00), lines[0].OriginalCents)
	assert.Equal(t, int64(2000_00), lines[0].DiscountCents) // 3000.00 capped
	assert.Equal(t, int64(28000_00), lines[0].FinalCents)
}

// The documented rounding anchor: 33% of 12345 cents is 4074.
func TestBuildBreakdown_RoundingAnchor(t *testing.T) {
	ft := uuid.New()
	applicable := []ApplicableFee{applicableFee(ft, 12345, nil)}
	grants := []DiscountGrant{{
		DiscountID:      uuid.New(),
		CalculationType: fees.DiscountCalculationPercentage,
		Value:           33,
	}}

	lines := BuildBreakdown(false, applicable, grants)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(4074), lines[0].DiscountCents)
	assert.Equal(t, int64(8271), lines[0].FinalCents)
}

func TestBuildBreakdown_NoFees(t *testing.T) {
	lines := BuildBreakdown(false, nil, nil)
	assert.Empty(t, lines)
}
