package services

import (
	"math"

	"sharecalc/models"
	"sharecalc/utils"
)

// GrowthExponent shapes the ramp-up: slow start, accelerating toward target
const GrowthExponent = 1.5

// GrowthFactor is (month/totalMonths)^GrowthExponent
func GrowthFactor(month, totalMonths int) float64 {
	if totalMonths <= 0 {
		return 0
	}
	return math.Pow(float64(month)/float64(totalMonths), GrowthExponent)
}

// ProjectMonthlyGrowth spreads the one-time target and the year-1 monthly
// recurring rate across the realization horizon. The one-time amount is
// released as cumulative target * growth factor; recurring income in a month
// is the year-1 rate scaled by that month's growth factor. Amounts are
// rounded to cents only when stored.
func ProjectMonthlyGrowth(targetOneTime, targetRecurringYear1 float64, totalUsers, months int) []models.MonthlyGrowthData {
	if months <= 0 {
		return []models.MonthlyGrowthData{}
	}

	data := make([]models.MonthlyGrowthData, 0, months)
	var prevOneTime, cumRecurring, cumEarnings float64

	for m := 1; m <= months; m++ {
		gf := GrowthFactor(m, months)

		cumOneTime := targetOneTime * gf
		monthlyRecurring := targetRecurringYear1 * gf
		oneTimeFlow := cumOneTime - prevOneTime
		monthlyTotal := oneTimeFlow + monthlyRecurring

		cumRecurring += monthlyRecurring
		cumEarnings += monthlyTotal

		data = append(data, models.MonthlyGrowthData{
			Month:                  m,
			Users:                  floorCount(float64(totalUsers) * gf),
			MonthlyOneTimeBonus:    utils.RoundCents(oneTimeFlow),
			MonthlyRecurring:       utils.RoundCents(monthlyRecurring),
			MonthlyTotalEarnings:   utils.RoundCents(monthlyTotal),
			CumulativeOneTimeBonus: utils.RoundCents(cumOneTime),
			CumulativeRecurring:    utils.RoundCents(cumRecurring),
			CumulativeEarnings:     utils.RoundCents(cumEarnings),
		})

		prevOneTime = cumOneTime
	}
	return data
}
