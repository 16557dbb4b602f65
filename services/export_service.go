package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sharecalc/models"
	"sharecalc/utils"
)

type exportLabels struct {
	header   []string
	you      string
	direct   string
	total    string
	cashback string
	contract string
}

var labelsByLocale = map[string]exportLabels{
	utils.LocaleItalian: {
		header:   []string{"Livello", "Utenti", "Bonus una tantum", "Ricorrente Anno 1", "Ricorrente Anno 2", "Ricorrente Anno 3"},
		you:      "Tu",
		direct:   "diretto",
		total:    "Totale",
		cashback: "Cashback mensile",
		contract: "Contratti totali",
	},
	utils.LocaleEnglish: {
		header:   []string{"Level", "Users", "One-time bonus", "Recurring Year 1", "Recurring Year 2", "Recurring Year 3"},
		you:      "You",
		direct:   "direct",
		total:    "Total",
		cashback: "Monthly cashback",
		contract: "Total contracts",
	},
}

// LevelLabel renders a level the way exported reports name it
func LevelLabel(level int, locale string) string {
	l, ok := labelsByLocale[locale]
	if !ok {
		l = labelsByLocale[utils.LocaleEnglish]
	}
	switch level {
	case 0:
		return fmt.Sprintf("0 (%s)", l.you)
	case 1:
		return fmt.Sprintf("1 (%s)", l.direct)
	}
	return strconv.Itoa(level)
}

// WritePlanCSV writes the per-level table followed by the plan totals
func WritePlanCSV(w io.Writer, result models.CompensationPlanResult, locale string) error {
	l, ok := labelsByLocale[locale]
	if !ok {
		l = labelsByLocale[utils.LocaleEnglish]
		locale = utils.LocaleEnglish
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(l.header); err != nil {
		return err
	}

	for _, lvl := range result.LevelData {
		row := []string{
			LevelLabel(lvl.Level, locale),
			strconv.Itoa(lvl.Users),
			money(lvl.OneTimeBonus),
			money(lvl.RecurringYear1),
			money(lvl.RecurringYear2),
			money(lvl.RecurringYear3),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	footer := [][]string{
		{
			l.total,
			strconv.Itoa(result.TotalUsers),
			money(result.TotalOneTimeBonus),
			money(result.TotalRecurringYear1),
			money(result.TotalRecurringYear2),
			money(result.TotalRecurringYear3),
		},
		{l.contract, money(result.TotalContracts)},
		{l.cashback, money(result.MonthlyCashback)},
	}
	if err := cw.WriteAll(footer); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
