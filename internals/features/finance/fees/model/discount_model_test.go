// file: internals/features/finance/fees/model/discount_model_test.go
package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDiscountAppliesTo(t *testing.T) {
	var d Discount
	ids, err := d.AppliesTo()
	require.NoError(t, err)
	assert.Nil(t, ids, "empty filter means every fee type")

	want := []uuid.UUID{uuid.New(), uuid.New()}
	raw, err := json.Marshal(want)
	require.NoError(t, err)
	d.DiscountAppliesToFeeTypeIDs = datatypes.JSON(raw)

	ids, err = d.AppliesTo()
	require.NoError(t, err)
	assert.Equal(t, want, ids)

	d.DiscountAppliesToFeeTypeIDs = datatypes.JSON(`{"bad":`)
	_, err = d.AppliesTo()
	assert.Error(t, err)
}

func TestFeeStructureBaseAmountCents(t *testing.T) {
	newAmount := int64(60000_00)
	fs := FeeStructure{FeeStructureAmountCents: 50000_00}

	assert.Equal(t, int64(50000_00), fs.BaseAmountCents(false))
	assert.Equal(t, int64(50000_00), fs.BaseAmountCents(true), "no new-student price configured")

	fs.FeeStructureNewStudentAmountCents = &newAmount
	assert.Equal(t, newAmount, fs.BaseAmountCents(true))
	assert.Equal(t, int64(50000_00), fs.BaseAmountCents(false))
}
