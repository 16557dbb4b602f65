package services

import (
	"sync"

	"sharecalc/config"
	"sharecalc/models"
	"sharecalc/utils"
)

type ComparisonService struct {
	calc    *CalculatorService
	factors config.ComparisonConfig
}

func NewComparisonService(calc *CalculatorService, factors config.ComparisonConfig) *ComparisonService {
	return &ComparisonService{
		calc:    calc,
		factors: factors,
	}
}

// Compare projects the plan under pessimistic, realistic and optimistic
// recruiting assumptions. Engine calls are independent, so the three
// variants run concurrently.
func (cs *ComparisonService) Compare(input models.PlanInput, viewMode models.ViewMode) models.ScenarioComparison {
	variants := []models.ScenarioVariant{
		{Label: "pessimistic", Factor: cs.factors.PessimisticFactor},
		{Label: "realistic", Factor: 1},
		{Label: "optimistic", Factor: cs.factors.OptimisticFactor},
	}

	var wg sync.WaitGroup
	for i := range variants {
		variants[i].Input = PerturbInput(input, variants[i].Factor)

		wg.Add(1)
		go func(v *models.ScenarioVariant) {
			defer wg.Done()
			r := cs.calc.ComputePlan(v.Input, viewMode)
			v.Result = &r
		}(&variants[i])
	}
	wg.Wait()

	low, high := variants[0].Result, variants[len(variants)-1].Result
	return models.ScenarioComparison{
		Variants:        variants,
		RecurringSpread: utils.RoundCents(high.TotalRecurringYear1 - low.TotalRecurringYear1),
		OneTimeSpread:   utils.RoundCents(high.TotalOneTimeBonus - low.TotalOneTimeBonus),
	}
}

// PerturbInput scales the recruiting assumptions of a plan. Direct recruits
// stay whole people and are floored.
func PerturbInput(input models.PlanInput, factor float64) models.PlanInput {
	out := input
	out.DirectRecruits = floorCount(float64(input.DirectRecruits) * factor)
	out.IndirectRecruits = input.IndirectRecruits * factor
	return out
}
