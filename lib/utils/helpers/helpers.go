package helpers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// MonthRange полуинтервал [начало месяца, начало следующего)
func MonthRange(year, month int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// YearRange полуинтервал [начало года, начало следующего)
func YearRange(year int) (from, to time.Time) {
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("некорректный идентификатор %q", value)
	}
	return uint(id), nil
}

// LikePattern шаблон для поиска подстроки без учета регистра
func LikePattern(search string) string {
	search = strings.ToLower(strings.TrimSpace(search))
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + replacer.Replace(search) + "%"
}
