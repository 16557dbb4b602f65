package models

// LevelRate is the one-time bonus paid per user of a network level
type LevelRate struct {
	First float64 `json:"first" yaml:"first"` // first contract of the user
	Extra float64 `json:"extra" yaml:"extra"` // every contract beyond the first
}

// CategoryRate is the flat rate of a personal-client or self-owned category
type CategoryRate struct {
	OneTime   float64 `json:"oneTime" yaml:"one_time"`
	Recurring float64 `json:"recurring" yaml:"recurring"` // monthly base, before year multipliers
}

// YearMultipliers escalate recurring bases with contract tenure
type YearMultipliers struct {
	Year1 float64 `json:"year1" yaml:"year1"`
	Year2 float64 `json:"year2" yaml:"year2"`
	Year3 float64 `json:"year3" yaml:"year3"`
}

// ForYear returns the multiplier for a 1-based tenure year. Tenure beyond
// year 3 stays on the year 3 rate; anything below year 1 earns nothing.
func (ym YearMultipliers) ForYear(year int) float64 {
	switch {
	case year < 1:
		return 0
	case year == 1:
		return ym.Year1
	case year == 2:
		return ym.Year2
	default:
		return ym.Year3
	}
}

// PersonalRates covers the clients a promoter signs directly
type PersonalRates struct {
	ResidentialGreen CategoryRate `json:"residentialGreen" yaml:"residential_green"`
	ResidentialLight CategoryRate `json:"residentialLight" yaml:"residential_light"`
	BusinessGreen    CategoryRate `json:"businessGreen" yaml:"business_green"`
	BusinessLight    CategoryRate `json:"businessLight" yaml:"business_light"`
	SelfOwnedGreen   CategoryRate `json:"selfOwnedGreen" yaml:"self_owned_green"`
	SelfOwnedLight   CategoryRate `json:"selfOwnedLight" yaml:"self_owned_light"`
}

// CondoUnitRate holds the one-time and per-tenure-year monthly rates of a condo unit type
type CondoUnitRate struct {
	OneTime   float64    `json:"oneTime" yaml:"one_time"`
	Recurring [3]float64 `json:"recurring" yaml:"recurring"`
}

// RecurringForYear returns the monthly rate of a unit in its n-th active year
func (r CondoUnitRate) RecurringForYear(year int) float64 {
	if year < 1 {
		return 0
	}
	if year > len(r.Recurring) {
		year = len(r.Recurring)
	}
	return r.Recurring[year-1]
}

type CondoRates struct {
	Green CondoUnitRate `json:"green" yaml:"green"`
	Light CondoUnitRate `json:"light" yaml:"light"`
}

// RateTable is the whole compensation schedule. It is passed explicitly to
// every engine call so alternate schedules can be evaluated side by side.
type RateTable struct {
	Version          string          `json:"version" yaml:"version"`
	Levels           []LevelRate     `json:"levels" yaml:"levels"` // index = network level
	RecurringFirst   float64         `json:"recurringFirst" yaml:"recurring_first"`
	RecurringExtra   float64         `json:"recurringExtra" yaml:"recurring_extra"`
	YearMultipliers  YearMultipliers `json:"yearMultipliers" yaml:"year_multipliers"`
	Personal         PersonalRates   `json:"personal" yaml:"personal"`
	Condo            CondoRates      `json:"condo" yaml:"condo"`
	ClientMultiplier float64         `json:"clientMultiplier" yaml:"client_multiplier"`
}

// LevelRate returns the rate pair for a level. Levels outside the table pay {0,0}.
func (rt *RateTable) LevelRate(level int) LevelRate {
	if rt == nil || level < 0 || level >= len(rt.Levels) {
		return LevelRate{}
	}
	return rt.Levels[level]
}

// Multiplier returns the role-based commission factor for a view mode
func (rt *RateTable) Multiplier(mode ViewMode) float64 {
	if mode == ViewModeClient {
		return rt.ClientMultiplier
	}
	return 1.0
}

// DefaultRateTable is the published schedule
func DefaultRateTable() *RateTable {
	return &RateTable{
		Version: "1.0.0",
		Levels: []LevelRate{
			{First: 50, Extra: 7.5},
			{First: 15, Extra: 2.5},
			{First: 5, Extra: 1.5},
			{First: 3, Extra: 1.25},
			{First: 2.5, Extra: 1.25},
			{First: 2.5, Extra: 1.25},
		},
		RecurringFirst:  1.00,
		RecurringExtra:  0.50,
		YearMultipliers: YearMultipliers{Year1: 1.0, Year2: 1.5, Year3: 2.0},
		Personal: PersonalRates{
			ResidentialGreen: CategoryRate{OneTime: 50, Recurring: 1.00},
			ResidentialLight: CategoryRate{OneTime: 25, Recurring: 0.50},
			BusinessGreen:    CategoryRate{OneTime: 100, Recurring: 2.00},
			BusinessLight:    CategoryRate{OneTime: 50, Recurring: 1.00},
			SelfOwnedGreen:   CategoryRate{OneTime: 50, Recurring: 1.00},
			SelfOwnedLight:   CategoryRate{OneTime: 25, Recurring: 0.50},
		},
		Condo: CondoRates{
			Green: CondoUnitRate{OneTime: 100, Recurring: [3]float64{5.00, 7.50, 10.00}},
			Light: CondoUnitRate{OneTime: 50, Recurring: [3]float64{2.50, 3.75, 5.00}},
		},
		ClientMultiplier: 0.5,
	}
}
