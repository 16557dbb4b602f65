package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharecalc/config"
)

func TestComparisonService_Compare(t *testing.T) {
	calc := NewCalculatorService(nil, nil, time.Minute)
	cs := NewComparisonService(calc, config.ComparisonConfig{PessimisticFactor: 0.5, OptimisticFactor: 1.5})

	cmp := cs.Compare(networkInput(), "")
	require.Len(t, cmp.Variants, 3)

	low, mid, high := cmp.Variants[0], cmp.Variants[1], cmp.Variants[2]
	assert.Equal(t, "pessimistic", low.Label)
	assert.Equal(t, "realistic", mid.Label)
	assert.Equal(t, "optimistic", high.Label)

	// 5 direct x1: 5, 5, 5 users
	assert.Equal(t, 15, low.Result.TotalUsers)
	assert.Equal(t, 350.0, low.Result.TotalOneTimeBonus)
	assert.Equal(t, networkInput(), mid.Input)
	assert.Equal(t, 1000.0, mid.Result.TotalOneTimeBonus)
	// 15 direct x3: 15, 45, 135 users
	assert.Equal(t, 195, high.Result.TotalUsers)
	assert.Equal(t, 2100.0, high.Result.TotalOneTimeBonus)

	assert.Equal(t, 180.0, cmp.RecurringSpread)
	assert.Equal(t, 1750.0, cmp.OneTimeSpread)
}

func TestPerturbInput(t *testing.T) {
	in := networkInput()
	in.DirectRecruits = 7
	in.ResidentialGreen = 4

	out := PerturbInput(in, 0.5)

	assert.Equal(t, 3, out.DirectRecruits)
	assert.Equal(t, 1.0, out.IndirectRecruits)
	assert.Equal(t, 4, out.ResidentialGreen)
	assert.Equal(t, in.NetworkDepth, out.NetworkDepth)
	assert.Equal(t, 7, in.DirectRecruits)
}
