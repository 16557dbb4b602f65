package models

// CondoYears is the projection horizon of the condominium product
const CondoYears = 3

// CondoCohort is a batch of units that started billing in the same year.
// YearAdded 1 is the first projected year; values below 1 describe units
// that were already active before the projection started and so enter year
// 1 at a later-tenure rate. AlreadyActive units bill from their YearAdded
// tenure like any other cohort but never pay the one-time bonus, which
// expresses units on the book at the start that begin at the year-1 rate.
type CondoCohort struct {
	YearAdded     int  `json:"yearAdded" bson:"year_added" validate:"lte=3"`
	GreenUnits    int  `json:"greenUnits" bson:"green_units" validate:"gte=0"`
	LightUnits    int  `json:"lightUnits" bson:"light_units" validate:"gte=0"`
	AlreadyActive bool `json:"alreadyActive,omitempty" bson:"already_active"`
}

// CondoInput is the parameter set of a condominium simulation
type CondoInput struct {
	Cohorts []CondoCohort `json:"cohorts" bson:"cohorts" validate:"dive"`

	// Network conversion of condominium residents
	FamiliesPerCondo      float64 `json:"familiesPerCondo" bson:"families_per_condo" validate:"finite,gte=0"`
	NetworkConversionRate float64 `json:"networkConversionRate" bson:"network_conversion_rate" validate:"finite,gte=0,lte=100"`
	ContractsPerUser      float64 `json:"contractsPerUser" bson:"contracts_per_user" validate:"finite,gte=0"`
	IncludeNetwork        bool    `json:"includeNetwork" bson:"include_network"`

	ViewMode ViewMode `json:"viewMode" bson:"view_mode" validate:"omitempty,oneof=family client condo"`
}

// CondoYearResult is the state of the condominium book in one projected year
type CondoYearResult struct {
	Year             int     `json:"year" bson:"year"`
	ActiveGreenUnits int     `json:"activeGreenUnits" bson:"active_green_units"`
	ActiveLightUnits int     `json:"activeLightUnits" bson:"active_light_units"`
	ActiveUnits      int     `json:"activeUnits" bson:"active_units"`
	NewUnits         int     `json:"newUnits" bson:"new_units"`
	OneTimeBonus     float64 `json:"oneTimeBonus" bson:"one_time_bonus"`
	RecurringMonthly float64 `json:"recurringMonthly" bson:"recurring_monthly"`
	RecurringAnnual  float64 `json:"recurringAnnual" bson:"recurring_annual"`
	TotalEarnings    float64 `json:"totalEarnings" bson:"total_earnings"`
}

// CondoNetworkStats models residents who join the referral network
type CondoNetworkStats struct {
	ConvertedUsers int         `json:"convertedUsers" bson:"converted_users"`
	LevelData      []LevelData `json:"levelData" bson:"level_data"` // 0 = recruiter commission, 1 = admin override

	OneTimeBonus   float64 `json:"oneTimeBonus" bson:"one_time_bonus"`
	RecurringYear1 float64 `json:"recurringYear1" bson:"recurring_year1"`
	RecurringYear2 float64 `json:"recurringYear2" bson:"recurring_year2"`
	RecurringYear3 float64 `json:"recurringYear3" bson:"recurring_year3"`

	// Blended with the main network projection when requested
	IncludesMainNetwork bool    `json:"includesMainNetwork" bson:"includes_main_network"`
	MainNetworkUsers    int     `json:"mainNetworkUsers" bson:"main_network_users"`
	TotalNetworkUsers   int     `json:"totalNetworkUsers" bson:"total_network_users"`
	TotalOneTimeBonus   float64 `json:"totalOneTimeBonus" bson:"total_one_time_bonus"`
	TotalRecurringYear1 float64 `json:"totalRecurringYear1" bson:"total_recurring_year1"`
	TotalRecurringYear2 float64 `json:"totalRecurringYear2" bson:"total_recurring_year2"`
	TotalRecurringYear3 float64 `json:"totalRecurringYear3" bson:"total_recurring_year3"`
}

type CondoSimulationResult struct {
	Years                []CondoYearResult  `json:"years" bson:"years"`
	TotalUnits           int                `json:"totalUnits" bson:"total_units"`
	TotalOneTimeBonus    float64            `json:"totalOneTimeBonus" bson:"total_one_time_bonus"`
	TotalRecurringAnnual float64            `json:"totalRecurringAnnual" bson:"total_recurring_annual"`
	TotalEarnings        float64            `json:"totalEarnings" bson:"total_earnings"`
	NetworkStats         *CondoNetworkStats `json:"networkStats,omitempty" bson:"network_stats,omitempty"`
}
