package listview

import (
	"slices"
	"strings"
	"time"
)

// Entity запись списка с уникальным в пределах списка ИД
type Entity interface {
	GetID() uint
}

// Facet условие фильтра, nil означает "не выбрано"
type Facet[T any] func(T) bool

// Filter записи all, удовлетворяющие всем фасетам. all не изменяется, результат всегда новый срез
func Filter[T any](all []T, facets ...Facet[T]) []T {
	active := make([]Facet[T], 0, len(facets))
	for _, facet := range facets {
		if facet != nil {
			active = append(active, facet)
		}
	}
	result := make([]T, 0, len(all))
	for _, rec := range all {
		if matchAll(rec, active) {
			result = append(result, rec)
		}
	}
	return result
}

func matchAll[T any](rec T, facets []Facet[T]) bool {
	for _, facet := range facets {
		if !facet(rec) {
			return false
		}
	}
	return true
}

// Equals нулевое value - фасет не выбран
func Equals[T any, V comparable](get func(T) V, value V) Facet[T] {
	var zero V
	if value == zero {
		return nil
	}
	return func(rec T) bool {
		return get(rec) == value
	}
}

// In пустой набор - фасет не выбран
func In[T any, V comparable](get func(T) V, values ...V) Facet[T] {
	if len(values) == 0 {
		return nil
	}
	set := slices.Clone(values)
	return func(rec T) bool {
		return slices.Contains(set, get(rec))
	}
}

// Month месяц даты записи, 0 - не выбран
func Month[T any](get func(T) time.Time, month int) Facet[T] {
	if month == 0 {
		return nil
	}
	return func(rec T) bool {
		date := get(rec)
		return !date.IsZero() && int(date.Month()) == month
	}
}

// Year год даты записи, 0 - не выбран
func Year[T any](get func(T) time.Time, year int) Facet[T] {
	if year == 0 {
		return nil
	}
	return func(rec T) bool {
		date := get(rec)
		return !date.IsZero() && date.Year() == year
	}
}

// Search подстрока без учета регистра хотя бы в одном из полей
func Search[T any](query string, fields ...func(T) string) Facet[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(fields) == 0 {
		return nil
	}
	return func(rec T) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(rec)), query) {
				return true
			}
		}
		return false
	}
}
