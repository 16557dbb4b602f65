package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cespare/xxhash/v2"

	"sharecalc/models"
)

// CalculatorService is the memoizing front of the projection engine.
// The engine functions stay pure; this service only decides whether a
// result can be served from cache.
type CalculatorService struct {
	rates     *models.RateTable
	ratesHash string
	cache     *CacheService
	ttl       time.Duration
}

func NewCalculatorService(rates *models.RateTable, cache *CacheService, ttl time.Duration) *CalculatorService {
	if rates == nil {
		rates = models.DefaultRateTable()
	}

	hash := rates.Version
	if raw, err := json.Marshal(rates); err == nil {
		hash = fmt.Sprintf("%016x", xxhash.Sum64(raw))
	}

	return &CalculatorService{
		rates:     rates,
		ratesHash: hash,
		cache:     cache,
		ttl:       ttl,
	}
}

// Rates returns the active schedule
func (cs *CalculatorService) Rates() *models.RateTable {
	return cs.rates
}

type planKey struct {
	Rates string           `json:"r"`
	Mode  models.ViewMode  `json:"m"`
	Input models.PlanInput `json:"i"`
}

type condoKey struct {
	Rates string            `json:"r"`
	Input models.CondoInput `json:"i"`
	Plan  *models.PlanInput `json:"p,omitempty"`
}

// ComputePlan runs the compensation engine for input, serving repeated
// inputs from cache
func (cs *CalculatorService) ComputePlan(input models.PlanInput, viewMode models.ViewMode) models.CompensationPlanResult {
	if viewMode == "" {
		viewMode = input.ViewMode
	}

	key, err := InputKey("plan:", planKey{Rates: cs.ratesHash, Mode: viewMode, Input: input})
	if err == nil && cs.cache != nil {
		var cached models.CompensationPlanResult
		if cs.cache.GetInto(key, &cached) {
			return cached
		}
	}

	result := ComputeCompensationPlan(input, viewMode, cs.rates)

	if err == nil && cs.cache != nil {
		cs.cache.Set(key, result, cs.ttl)
	} else if err != nil {
		log.Printf("Plan result not cached: %v", err)
	}
	return result
}

// ComputeCondo runs the condominium engine. When plan is given its projection
// is used as the main network result.
func (cs *CalculatorService) ComputeCondo(input models.CondoInput, plan *models.PlanInput) models.CondoSimulationResult {
	key, err := InputKey("condo:", condoKey{Rates: cs.ratesHash, Input: input, Plan: plan})
	if err == nil && cs.cache != nil {
		var cached models.CondoSimulationResult
		if cs.cache.GetInto(key, &cached) {
			return cached
		}
	}

	var main *models.CompensationPlanResult
	if plan != nil {
		r := cs.ComputePlan(*plan, plan.ViewMode)
		main = &r
	}
	result := ComputeCondoSimulation(input, main, cs.rates)

	if err == nil && cs.cache != nil {
		cs.cache.Set(key, result, cs.ttl)
	}
	return result
}
