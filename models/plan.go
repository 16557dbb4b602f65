package models

// ViewMode selects the role the projection is computed for
type ViewMode string

const (
	ViewModeFamily ViewMode = "family"
	ViewModeClient ViewMode = "client"
	ViewModeCondo  ViewMode = "condo"
)

// PlanInput is the parameter set of one compensation-plan projection
type PlanInput struct {
	// Network shape
	DirectRecruits   int     `json:"directRecruits" bson:"direct_recruits" validate:"gte=0"`
	IndirectRecruits float64 `json:"indirectRecruits" bson:"indirect_recruits" validate:"finite,gte=0"`
	NetworkDepth     int     `json:"networkDepth" bson:"network_depth" validate:"gte=1,lte=20"`
	ContractsPerUser float64 `json:"contractsPerUser" bson:"contracts_per_user" validate:"finite,gte=0"`

	// Personal clients
	ResidentialGreen int `json:"residentialGreen" bson:"residential_green" validate:"gte=0"`
	ResidentialLight int `json:"residentialLight" bson:"residential_light" validate:"gte=0"`
	BusinessGreen    int `json:"businessGreen" bson:"business_green" validate:"gte=0"`
	BusinessLight    int `json:"businessLight" bson:"business_light" validate:"gte=0"`
	SelfOwnedGreen   int `json:"selfOwnedGreen" bson:"self_owned_green" validate:"gte=0"`
	SelfOwnedLight   int `json:"selfOwnedLight" bson:"self_owned_light" validate:"gte=0"`

	// Consumer-side benefits
	CashbackSpending   float64 `json:"cashbackSpending" bson:"cashback_spending" validate:"finite,gte=0"`
	CashbackPercentage float64 `json:"cashbackPercentage" bson:"cashback_percentage" validate:"finite,gte=0,lte=100"`
	PanelCount         int     `json:"panelCount" bson:"panel_count" validate:"gte=0"`
	PanelYieldPerPanel float64 `json:"panelYieldPerPanel" bson:"panel_yield_per_panel" validate:"finite,gte=0"`

	RealizationTimeMonths int      `json:"realizationTimeMonths" bson:"realization_time_months" validate:"gte=0,lte=120"`
	ViewMode              ViewMode `json:"viewMode" bson:"view_mode" validate:"omitempty,oneof=family client condo"`
}

// PersonalContracts is the number of clients and self-owned units signed directly
func (p PlanInput) PersonalContracts() int {
	return p.ResidentialGreen + p.ResidentialLight +
		p.BusinessGreen + p.BusinessLight +
		p.SelfOwnedGreen + p.SelfOwnedLight
}

// LevelData is one depth tier of the projected network
type LevelData struct {
	Level          int     `json:"level" bson:"level"`
	Users          int     `json:"users" bson:"users"`
	OneTimeBonus   float64 `json:"oneTimeBonus" bson:"one_time_bonus"`
	RecurringYear1 float64 `json:"recurringYear1" bson:"recurring_year1"`
	RecurringYear2 float64 `json:"recurringYear2" bson:"recurring_year2"`
	RecurringYear3 float64 `json:"recurringYear3" bson:"recurring_year3"`
}

// MonthlyGrowthData is one month of the ramp-up projection
type MonthlyGrowthData struct {
	Month                  int     `json:"month" bson:"month"`
	Users                  int     `json:"users" bson:"users"`
	MonthlyOneTimeBonus    float64 `json:"monthlyOneTimeBonus" bson:"monthly_one_time_bonus"`
	MonthlyRecurring       float64 `json:"monthlyRecurring" bson:"monthly_recurring"`
	MonthlyTotalEarnings   float64 `json:"monthlyTotalEarnings" bson:"monthly_total_earnings"`
	CumulativeOneTimeBonus float64 `json:"cumulativeOneTimeBonus" bson:"cumulative_one_time_bonus"`
	CumulativeRecurring    float64 `json:"cumulativeRecurring" bson:"cumulative_recurring"`
	CumulativeEarnings     float64 `json:"cumulativeEarnings" bson:"cumulative_earnings"`
}

// CompensationPlanResult aggregates a full projection
type CompensationPlanResult struct {
	LevelData         []LevelData `json:"levelData" bson:"level_data"`
	PersonalContracts int         `json:"personalContracts" bson:"personal_contracts"`
	TotalUsers        int         `json:"totalUsers" bson:"total_users"` // network users across all levels
	TotalContracts    float64     `json:"totalContracts" bson:"total_contracts"`

	TotalOneTimeBonus   float64 `json:"totalOneTimeBonus" bson:"total_one_time_bonus"`
	TotalRecurringYear1 float64 `json:"totalRecurringYear1" bson:"total_recurring_year1"`
	TotalRecurringYear2 float64 `json:"totalRecurringYear2" bson:"total_recurring_year2"`
	TotalRecurringYear3 float64 `json:"totalRecurringYear3" bson:"total_recurring_year3"`

	MonthlyCashback        float64 `json:"monthlyCashback" bson:"monthly_cashback"`
	MonthlyPanelYield      float64 `json:"monthlyPanelYield" bson:"monthly_panel_yield"`
	AverageEarningsPerUser float64 `json:"averageEarningsPerUser" bson:"average_earnings_per_user"`

	MonthlyData []MonthlyGrowthData `json:"monthlyData" bson:"monthly_data"`
}
