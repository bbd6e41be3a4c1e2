package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// frenchMonths — месяцы французской локали, как они приходят
// в свободном тексте даты сдачи ("Juin 2026").
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"fevrier":   time.February,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"aout":      time.August,
	"août":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"decembre":  time.December,
	"décembre":  time.December,
}

// ParseDeliveryDate разбирает дату сдачи вида "Juin 2026" в последний
// момент указанного месяца: объект со сдачей "Juin 2026" проходит срез
// "до июня 2026" включительно.
func ParseDeliveryDate(s string) (time.Time, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("delivery date %q: want \"<month> <year>\"", s)
	}

	month, ok := frenchMonths[strings.ToLower(parts[0])]
	if !ok {
		return time.Time{}, fmt.Errorf("delivery date %q: unknown month %q", s, parts[0])
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1900 || year > 2200 {
		return time.Time{}, fmt.Errorf("delivery date %q: bad year %q", s, parts[1])
	}

	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Second), nil
}
