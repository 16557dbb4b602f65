package services

import (
	"sharecalc/models"
	"sharecalc/utils"
)

// ComputeCondoSimulation projects the condominium product over CondoYears.
// Every cohort follows its own tenure-based rate escalation: in year y a
// cohort added in year a bills at its (y-a+1)-th year rate. One-time bonuses
// are paid in the year a cohort is added. main may be nil; it is only used
// when input.IncludeNetwork is set.
func ComputeCondoSimulation(input models.CondoInput, main *models.CompensationPlanResult, rates *models.RateTable) models.CondoSimulationResult {
	if rates == nil {
		rates = models.DefaultRateTable()
	}
	mode := input.ViewMode
	if mode == "" {
		mode = models.ViewModeCondo
	}
	multiplier := rates.Multiplier(mode)
	green, light := rates.Condo.Green, rates.Condo.Light

	result := models.CondoSimulationResult{
		Years: make([]models.CondoYearResult, 0, models.CondoYears),
	}

	var totalOneTime, totalAnnual float64
	for year := 1; year <= models.CondoYears; year++ {
		yr := models.CondoYearResult{Year: year}
		var oneTime, monthly float64

		for _, c := range input.Cohorts {
			if c.YearAdded > year {
				continue
			}
			tenure := year - c.YearAdded + 1

			yr.ActiveGreenUnits += c.GreenUnits
			yr.ActiveLightUnits += c.LightUnits
			monthly += float64(c.GreenUnits)*green.RecurringForYear(tenure) +
				float64(c.LightUnits)*light.RecurringForYear(tenure)

			if c.YearAdded == year && !c.AlreadyActive {
				yr.NewUnits += c.GreenUnits + c.LightUnits
				oneTime += float64(c.GreenUnits)*green.OneTime + float64(c.LightUnits)*light.OneTime
			}
		}

		oneTime *= multiplier
		monthly *= multiplier
		annual := monthly * 12

		yr.ActiveUnits = yr.ActiveGreenUnits + yr.ActiveLightUnits
		yr.OneTimeBonus = utils.RoundCents(oneTime)
		yr.RecurringMonthly = utils.RoundCents(monthly)
		yr.RecurringAnnual = utils.RoundCents(annual)
		yr.TotalEarnings = utils.RoundCents(oneTime + annual)
		result.Years = append(result.Years, yr)

		totalOneTime += oneTime
		totalAnnual += annual
		result.TotalUnits = yr.ActiveUnits
	}

	result.TotalOneTimeBonus = utils.RoundCents(totalOneTime)
	result.TotalRecurringAnnual = utils.RoundCents(totalAnnual)
	result.TotalEarnings = utils.RoundCents(totalOneTime + totalAnnual)

	if input.NetworkConversionRate > 0 || (input.IncludeNetwork && main != nil) {
		result.NetworkStats = condoNetworkStats(input, result.TotalUnits, main, rates, multiplier)
	}

	return result
}

// condoNetworkStats estimates residents converted into network users and
// pays them as a level 0 / level 1 pair: the recruiter commission and the
// condominium administrator's override. An unset families-per-condo counts
// each unit as one family.
func condoNetworkStats(input models.CondoInput, totalUnits int, main *models.CompensationPlanResult, rates *models.RateTable, multiplier float64) *models.CondoNetworkStats {
	families := input.FamiliesPerCondo
	if families <= 0 {
		families = 1
	}
	converted := floorCount(float64(totalUnits) * families * input.NetworkConversionRate / 100)
	ym := rates.YearMultipliers

	stats := &models.CondoNetworkStats{
		ConvertedUsers: converted,
		LevelData:      make([]models.LevelData, 0, 2),
	}

	var oneTime, recurring float64
	if converted > 0 {
		for level := 0; level <= 1; level++ {
			bonus := LevelOneTimeBonus(converted, rates.LevelRate(level), input.ContractsPerUser, multiplier)
			base := RecurringBase(converted, input.ContractsPerUser, rates, multiplier)
			stats.LevelData = append(stats.LevelData, models.LevelData{
				Level:          level,
				Users:          converted,
				OneTimeBonus:   utils.RoundCents(bonus),
				RecurringYear1: utils.RoundCents(base * ym.Year1),
				RecurringYear2: utils.RoundCents(base * ym.Year2),
				RecurringYear3: utils.RoundCents(base * ym.Year3),
			})
			oneTime += bonus
			recurring += base
		}
	}

	stats.OneTimeBonus = utils.RoundCents(oneTime)
	stats.RecurringYear1 = utils.RoundCents(recurring * ym.Year1)
	stats.RecurringYear2 = utils.RoundCents(recurring * ym.Year2)
	stats.RecurringYear3 = utils.RoundCents(recurring * ym.Year3)

	stats.TotalNetworkUsers = converted
	stats.TotalOneTimeBonus = stats.OneTimeBonus
	stats.TotalRecurringYear1 = stats.RecurringYear1
	stats.TotalRecurringYear2 = stats.RecurringYear2
	stats.TotalRecurringYear3 = stats.RecurringYear3

	if input.IncludeNetwork && main != nil {
		stats.IncludesMainNetwork = true
		stats.MainNetworkUsers = main.TotalUsers
		stats.TotalNetworkUsers = addCounts(stats.TotalNetworkUsers, main.TotalUsers)
		stats.TotalOneTimeBonus = utils.RoundCents(oneTime + main.TotalOneTimeBonus)
		stats.TotalRecurringYear1 = utils.RoundCents(recurring*ym.Year1 + main.TotalRecurringYear1)
		stats.TotalRecurringYear2 = utils.RoundCents(recurring*ym.Year2 + main.TotalRecurringYear2)
		stats.TotalRecurringYear3 = utils.RoundCents(recurring*ym.Year3 + main.TotalRecurringYear3)
	}

	return stats
}
