package schedule

import (
	"fmt"
	"time"
)

const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

var (
	ruDays   = [7]string{"пн", "вт", "ср", "чт", "пт", "сб", "вс"}
	ruMonths = [12]string{"янв", "фев", "мар", "апр", "мая", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}
	enDays   = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	enMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// FormatDate renders date as "D mon (wd)" in the given locale, e.g. "17 мая (пт)".
// Unparseable input is returned unchanged.
func FormatDate(date, locale string) string {
	d, err := ParseDate(date)
	if err != nil {
		return date
	}
	return formatDay(d, locale)
}

func formatDay(d time.Time, locale string) string {
	days, months := ruDays, ruMonths
	if locale == LocaleEN {
		days, months = enDays, enMonths
	}
	return fmt.Sprintf("%d %s (%s)", d.Day(), months[d.Month()-1], days[Weekday(d)])
}
