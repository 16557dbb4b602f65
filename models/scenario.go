package models

import "time"

// Scenario is a saved projection, stored with the inputs and the schedule
// version it was computed against
type Scenario struct {
	ID          string                  `json:"id" bson:"_id"`
	Name        string                  `json:"name" bson:"name" validate:"required,max=120"`
	Notes       string                  `json:"notes,omitempty" bson:"notes,omitempty"`
	Input       PlanInput               `json:"input" bson:"input"`
	RateVersion string                  `json:"rateVersion" bson:"rate_version"`
	Result      *CompensationPlanResult `json:"result,omitempty" bson:"result,omitempty"`
	CreatedAt   time.Time               `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time               `json:"updatedAt" bson:"updated_at"`
}

// ScenarioVariant is one leg of a scenario comparison
type ScenarioVariant struct {
	Label  string                  `json:"label"` // "pessimistic", "realistic", "optimistic"
	Factor float64                 `json:"factor"`
	Input  PlanInput               `json:"input"`
	Result *CompensationPlanResult `json:"result"`
}

// ScenarioComparison runs the same plan under perturbed growth assumptions
type ScenarioComparison struct {
	Variants []ScenarioVariant `json:"variants"`

	// Year-1 recurring spread between optimistic and pessimistic variants
	RecurringSpread float64 `json:"recurringSpread"`
	OneTimeSpread   float64 `json:"oneTimeSpread"`
}
