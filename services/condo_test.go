package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharecalc/models"
)

func TestComputeCondoSimulation_CohortTenure(t *testing.T) {
	in := models.CondoInput{
		Cohorts: []models.CondoCohort{
			{YearAdded: 1, GreenUnits: 10},
			{YearAdded: 2, LightUnits: 4},
		},
	}

	r := ComputeCondoSimulation(in, nil, nil)
	require.Len(t, r.Years, models.CondoYears)

	y1, y2, y3 := r.Years[0], r.Years[1], r.Years[2]

	assert.Equal(t, 10, y1.ActiveUnits)
	assert.Equal(t, 10, y1.NewUnits)
	assert.Equal(t, 1000.0, y1.OneTimeBonus)
	assert.Equal(t, 50.0, y1.RecurringMonthly)
	assert.Equal(t, 600.0, y1.RecurringAnnual)
	assert.Equal(t, 1600.0, y1.TotalEarnings)

	// green cohort moves to its second-year rate while light starts on year one
	assert.Equal(t, 10, y2.ActiveGreenUnits)
	assert.Equal(t, 4, y2.ActiveLightUnits)
	assert.Equal(t, 4, y2.NewUnits)
	assert.Equal(t, 200.0, y2.OneTimeBonus)
	assert.Equal(t, 85.0, y2.RecurringMonthly)
	assert.Equal(t, 1020.0, y2.RecurringAnnual)

	assert.Zero(t, y3.NewUnits)
	assert.Zero(t, y3.OneTimeBonus)
	assert.Equal(t, 115.0, y3.RecurringMonthly)
	assert.Equal(t, 1380.0, y3.RecurringAnnual)

	assert.Equal(t, 14, r.TotalUnits)
	assert.Equal(t, 1200.0, r.TotalOneTimeBonus)
	assert.Equal(t, 3000.0, r.TotalRecurringAnnual)
	assert.Equal(t, 4200.0, r.TotalEarnings)
	assert.Nil(t, r.NetworkStats)
}

func TestComputeCondoSimulation_PreexistingUnits(t *testing.T) {
	in := models.CondoInput{
		Cohorts: []models.CondoCohort{{YearAdded: 0, GreenUnits: 2}},
	}

	r := ComputeCondoSimulation(in, nil, nil)

	assert.Zero(t, r.TotalOneTimeBonus)
	assert.Equal(t, 15.0, r.Years[0].RecurringMonthly)
	assert.Equal(t, 20.0, r.Years[1].RecurringMonthly)
	// tenure beyond the rate table stays on the last rate
	assert.Equal(t, 20.0, r.Years[2].RecurringMonthly)
}

func TestComputeCondoSimulation_AlreadyActiveCohort(t *testing.T) {
	in := models.CondoInput{
		Cohorts: []models.CondoCohort{
			{YearAdded: 1, GreenUnits: 2, AlreadyActive: true},
			{YearAdded: 2, LightUnits: 4},
		},
	}

	r := ComputeCondoSimulation(in, nil, nil)
	require.Len(t, r.Years, models.CondoYears)

	// the active book starts on the year-1 rate and reaches year 3 without a bonus
	assert.Equal(t, 10.0, r.Years[0].RecurringMonthly)
	assert.Zero(t, r.Years[0].NewUnits)
	assert.Zero(t, r.Years[0].OneTimeBonus)
	assert.Equal(t, 2, r.Years[0].ActiveUnits)

	assert.Equal(t, 25.0, r.Years[1].RecurringMonthly)
	assert.Equal(t, 4, r.Years[1].NewUnits)
	assert.Equal(t, 200.0, r.Years[1].OneTimeBonus)

	assert.Equal(t, 35.0, r.Years[2].RecurringMonthly)
	assert.Equal(t, 200.0, r.TotalOneTimeBonus)
	assert.Equal(t, 6, r.TotalUnits)
}

func TestComputeCondoSimulation_LateCohortIgnored(t *testing.T) {
	in := models.CondoInput{
		Cohorts: []models.CondoCohort{{YearAdded: 4, GreenUnits: 50}},
	}

	r := ComputeCondoSimulation(in, nil, nil)

	assert.Zero(t, r.TotalUnits)
	assert.Zero(t, r.TotalEarnings)
}

func TestComputeCondoSimulation_ClientMode(t *testing.T) {
	in := models.CondoInput{
		Cohorts:  []models.CondoCohort{{YearAdded: 1, GreenUnits: 10}},
		ViewMode: models.ViewModeClient,
	}

	r := ComputeCondoSimulation(in, nil, nil)

	assert.Equal(t, 500.0, r.Years[0].OneTimeBonus)
	assert.Equal(t, 25.0, r.Years[0].RecurringMonthly)
}

func TestComputeCondoSimulation_NetworkConversion(t *testing.T) {
	in := models.CondoInput{
		Cohorts: []models.CondoCohort{
			{YearAdded: 1, GreenUnits: 10},
			{YearAdded: 2, LightUnits: 4},
		},
		FamiliesPerCondo:      10,
		NetworkConversionRate: 50,
		ContractsPerUser:      1,
	}

	r := ComputeCondoSimulation(in, nil, nil)
	require.NotNil(t, r.NetworkStats)
	ns := r.NetworkStats

	assert.Equal(t, 70, ns.ConvertedUsers)
	require.Len(t, ns.LevelData, 2)
	assert.Equal(t, 3500.0, ns.LevelData[0].OneTimeBonus)
	assert.Equal(t, 1050.0, ns.LevelData[1].OneTimeBonus)
	assert.Equal(t, 4550.0, ns.OneTimeBonus)
	assert.Equal(t, 140.0, ns.RecurringYear1)
	assert.Equal(t, 210.0, ns.RecurringYear2)
	assert.Equal(t, 280.0, ns.RecurringYear3)

	assert.False(t, ns.IncludesMainNetwork)
	assert.Equal(t, 70, ns.TotalNetworkUsers)
	assert.Equal(t, ns.OneTimeBonus, ns.TotalOneTimeBonus)
}

func TestComputeCondoSimulation_BlendsMainNetwork(t *testing.T) {
	main := ComputeCompensationPlan(networkInput(), "", nil)
	in := models.CondoInput{
		Cohorts:               []models.CondoCohort{{YearAdded: 1, GreenUnits: 2}},
		FamiliesPerCondo:      5,
		NetworkConversionRate: 100,
		ContractsPerUser:      1,
		IncludeNetwork:        true,
	}

	r := ComputeCondoSimulation(in, &main, nil)
	require.NotNil(t, r.NetworkStats)
	ns := r.NetworkStats

	assert.Equal(t, 10, ns.ConvertedUsers)
	assert.True(t, ns.IncludesMainNetwork)
	assert.Equal(t, 70, ns.MainNetworkUsers)
	assert.Equal(t, 80, ns.TotalNetworkUsers)
	assert.Equal(t, 650.0, ns.OneTimeBonus)
	assert.Equal(t, 1650.0, ns.TotalOneTimeBonus)
	assert.Equal(t, 90.0, ns.TotalRecurringYear1)
	assert.Equal(t, 135.0, ns.TotalRecurringYear2)
	assert.Equal(t, 180.0, ns.TotalRecurringYear3)
}

func TestComputeCondoSimulation_IncludeNetworkWithoutConversion(t *testing.T) {
	main := ComputeCompensationPlan(networkInput(), "", nil)
	in := models.CondoInput{IncludeNetwork: true}

	r := ComputeCondoSimulation(in, &main, nil)
	require.NotNil(t, r.NetworkStats)

	assert.Zero(t, r.NetworkStats.ConvertedUsers)
	assert.Empty(t, r.NetworkStats.LevelData)
	assert.Equal(t, 1000.0, r.NetworkStats.TotalOneTimeBonus)
	assert.Equal(t, 70, r.NetworkStats.TotalNetworkUsers)
}

func TestComputeCondoSimulation_DefaultFamiliesPerCondo(t *testing.T) {
	in := models.CondoInput{
		Cohorts:               []models.CondoCohort{{YearAdded: 1, GreenUnits: 9}},
		NetworkConversionRate: 50,
		ContractsPerUser:      1,
	}

	r := ComputeCondoSimulation(in, nil, nil)
	require.NotNil(t, r.NetworkStats)
	assert.Equal(t, 4, r.NetworkStats.ConvertedUsers)
}
