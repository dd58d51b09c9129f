package calendar

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// The display languages the original interface ships with. Unknown
// preferences fall back to American English via BCP-47 matching.
var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var localeMatcher = language.NewMatcher(supportedTags)

var portugueseMonths = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthYearLabel renders the month-year grouping label for a date in the
// given display language, matching the labels the browser produced
// ("January 2026" / "janeiro de 2026").
func MonthYearLabel(lang string, t time.Time) string {
	_, index, _ := localeMatcher.Match(language.Make(lang))
	if supportedTags[index] == language.BrazilianPortuguese {
		return fmt.Sprintf("%s de %d", portugueseMonths[t.Month()-1], t.Year())
	}
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}
