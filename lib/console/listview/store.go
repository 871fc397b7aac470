package listview

import (
	"slices"
	"sync"
)

// Store полный список записей представления и его отфильтрованная проекция.
// Проекция пересчитывается при каждом изменении списка или фасетов
type Store[T Entity] struct {
	mu       sync.RWMutex
	all      []T
	filtered []T
	facets   []Facet[T]
	loaded   bool
}

func NewStore[T Entity]() *Store[T] {
	return &Store[T]{
		all:      []T{},
		filtered: []T{},
	}
}

// Load заменяет список ответом сервера
func (s *Store[T]) Load(list []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = slices.Clone(list)
	if s.all == nil {
		s.all = []T{}
	}
	s.loaded = true
	s.refilter()
}

func (s *Store[T]) SetFacets(facets ...Facet[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facets = slices.Clone(facets)
	s.refilter()
}

// Upsert заменяет запись с тем же ИД или добавляет новую в начало списка
func (s *Store[T]) Upsert(rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.all, func(item T) bool { return item.GetID() == rec.GetID() })
	if idx >= 0 {
		s.all[idx] = rec
	} else {
		s.all = append([]T{rec}, s.all...)
	}
	s.refilter()
}

// Remove удаляет запись из полного и отфильтрованного списков
func (s *Store[T]) Remove(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.all)
	s.all = slices.DeleteFunc(s.all, func(item T) bool { return item.GetID() == id })
	s.filtered = slices.DeleteFunc(s.filtered, func(item T) bool { return item.GetID() == id })
	return len(s.all) != before
}

func (s *Store[T]) Get(id uint) (rec T, found bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.all {
		if item.GetID() == id {
			return item, true
		}
	}
	return rec, false
}

func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.all)
}

func (s *Store[T]) Filtered() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.filtered)
}

func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store[T]) refilter() {
	s.filtered = Filter(s.all, s.facets...)
}
