package services

import (
	"math"

	"sharecalc/models"
	"sharecalc/utils"
)

// ComputeCompensationPlan turns a parameter set into the leveled network,
// its one-time and recurring totals and the month-by-month ramp-up.
// viewMode overrides input.ViewMode when set. A nil rate table means the
// built-in schedule.
//
// The function is pure: no validation, no I/O, no shared state.
func ComputeCompensationPlan(input models.PlanInput, viewMode models.ViewMode, rates *models.RateTable) models.CompensationPlanResult {
	if rates == nil {
		rates = models.DefaultRateTable()
	}
	if viewMode == "" {
		viewMode = input.ViewMode
	}
	multiplier := rates.Multiplier(viewMode)
	ym := rates.YearMultipliers

	levels := BuildNetworkLevels(input.DirectRecruits, input.IndirectRecruits, input.NetworkDepth)

	var oneTime, recurring float64
	for i := range levels {
		lvl := &levels[i]
		bonus := LevelOneTimeBonus(lvl.Users, rates.LevelRate(lvl.Level), input.ContractsPerUser, multiplier)
		base := RecurringBase(lvl.Users, input.ContractsPerUser, rates, multiplier)

		lvl.OneTimeBonus = utils.RoundCents(bonus)
		lvl.RecurringYear1 = utils.RoundCents(base * ym.Year1)
		lvl.RecurringYear2 = utils.RoundCents(base * ym.Year2)
		lvl.RecurringYear3 = utils.RoundCents(base * ym.Year3)

		oneTime += bonus
		recurring += base
	}

	personalOneTime, personalRecurring := personalEarnings(input, rates.Personal, multiplier)
	oneTime += personalOneTime
	recurring += personalRecurring

	// Consumer-side benefits are never scaled by the role multiplier
	cashback := input.CashbackSpending * input.CashbackPercentage / 100
	panelYield := float64(input.PanelCount) * input.PanelYieldPerPanel
	oneTime += cashback

	totalUsers := NetworkSize(levels)
	personalContracts := input.PersonalContracts()

	result := models.CompensationPlanResult{
		LevelData:           levels,
		PersonalContracts:   personalContracts,
		TotalUsers:          totalUsers,
		TotalContracts:      utils.RoundCents(float64(totalUsers)*input.ContractsPerUser + float64(personalContracts)),
		TotalOneTimeBonus:   utils.RoundCents(oneTime),
		TotalRecurringYear1: utils.RoundCents(recurring * ym.Year1),
		TotalRecurringYear2: utils.RoundCents(recurring * ym.Year2),
		TotalRecurringYear3: utils.RoundCents(recurring * ym.Year3),
		MonthlyCashback:     utils.RoundCents(cashback),
		MonthlyPanelYield:   utils.RoundCents(panelYield),
		MonthlyData:         []models.MonthlyGrowthData{},
	}
	result.AverageEarningsPerUser = utils.RoundCents(recurring * ym.Year1 / math.Max(float64(totalUsers), 1))

	if totalUsers > 0 || personalContracts > 0 || cashback > 0 {
		result.MonthlyData = ProjectMonthlyGrowth(oneTime, recurring*ym.Year1, totalUsers, input.RealizationTimeMonths)
	}

	return result
}

// LevelOneTimeBonus pays the first-contract rate once per user and the extra
// rate for every average contract beyond the first.
func LevelOneTimeBonus(users int, rate models.LevelRate, contractsAvg, multiplier float64) float64 {
	u := float64(users)
	if contractsAvg < 1 {
		// Partial first contract only
		return u * contractsAvg * rate.First * multiplier
	}
	first := u * rate.First * multiplier
	extraContracts := math.Max(0, contractsAvg-1)
	extra := u * extraContracts * rate.Extra * multiplier
	return first + extra
}

// RecurringBase is the monthly recurring commission of a level before year multipliers
func RecurringBase(users int, contractsAvg float64, rates *models.RateTable, multiplier float64) float64 {
	baseFirst := rates.RecurringFirst * multiplier
	baseExtra := rates.RecurringExtra * multiplier
	u := float64(users)
	if contractsAvg < 1 {
		return u * contractsAvg * baseFirst
	}
	return u * (baseFirst + (contractsAvg-1)*baseExtra)
}

func personalEarnings(input models.PlanInput, rates models.PersonalRates, multiplier float64) (oneTime, recurring float64) {
	categories := []struct {
		count int
		rate  models.CategoryRate
	}{
		{input.ResidentialGreen, rates.ResidentialGreen},
		{input.ResidentialLight, rates.ResidentialLight},
		{input.BusinessGreen, rates.BusinessGreen},
		{input.BusinessLight, rates.BusinessLight},
		{input.SelfOwnedGreen, rates.SelfOwnedGreen},
		{input.SelfOwnedLight, rates.SelfOwnedLight},
	}

	for _, c := range categories {
		n := float64(c.count)
		oneTime += n * c.rate.OneTime * multiplier
		recurring += n * c.rate.Recurring * multiplier
	}
	return oneTime, recurring
}
