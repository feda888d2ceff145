// file: internals/features/finance/fees/service/money_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(50000_00), ToCents(50000))
	assert.Equal(t, int64(13), ToCents(0.125)) // half-up
	assert.Equal(t, int64(0), ToCents(0))
	assert.Equal(t, int64(199), ToCents(1.99))
}

func TestToMajor(t *testing.T) {
	assert.Equal(t, 500.0, ToMajor(50000))
	assert.Equal(t, 0.01, ToMajor(1))
}

func TestPercentOf(t *testing.T) {
	// 33% of 12345 = 4073.85 → rounds to 4074
	assert.Equal(t, int64(4074), PercentOf(12345, 33))

	assert.Equal(t, int64(0), PercentOf(0, 50))
	assert.Equal(t, int64(12345), PercentOf(12345, 100))
	assert.Equal(t, int64(500), PercentOf(10000, 5))
	// 2.5% of 999 = 24.975 → 25
	assert.Equal(t, int64(25), PercentOf(999, 2.5))
}
