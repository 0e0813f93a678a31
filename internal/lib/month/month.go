// Package month содержит вспомогательные функции для работы с календарными месяцами:
// вычисление границ месяца для биллинга и разбор параметров month/year из запроса.
package month

import (
	"fmt"
	"strconv"
	"time"
)

// Window возвращает границы календарного месяца в UTC.
// Начало — первый день месяца включительно, конец — первый день следующего
// месяца (не включительно), поэтому запросы используют start <= d < end.
func Window(m, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end
}

// Resolve разбирает строковые параметры month и year.
// Пустые значения заменяются текущим месяцем и годом от now.
func Resolve(monthStr, yearStr string, now time.Time) (int, int, error) {
	const op = "month.Resolve"

	m := int(now.Month())
	year := now.Year()

	if monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, fmt.Errorf("%s: invalid month %q", op, monthStr)
		}
		m = parsed
	}
	if yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("%s: invalid year %q", op, yearStr)
		}
		year = parsed
	}
	return m, year, nil
}
