package importer_test

import (
	"context"
	"maps"

	"droscher.com/BeerImporter/pkg/model"
	"droscher.com/BeerImporter/pkg/repository"
)

// memoryStore keeps rows in maps keyed by id with the same first-write-wins rule as the
// database. Writes made inside Transaction only become visible when the callback succeeds.
type memoryStore struct {
	categories   map[int64]model.Category
	styles       map[int64]model.Style
	glassware    map[int64]model.Glassware
	availability map[int64]model.Availability
	beers        map[string]model.Beer

	// failOn makes the insert for that kind return the error.
	failOn    model.Kind
	failWith  error
	calls     []model.Kind
	committed int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories:   map[int64]model.Category{},
		styles:       map[int64]model.Style{},
		glassware:    map[int64]model.Glassware{},
		availability: map[int64]model.Availability{},
		beers:        map[string]model.Beer{},
	}
}

var _ repository.Store = (*memoryStore)(nil)

func (m *memoryStore) Transaction(_ context.Context, fn func(repository.Store) error) error {
	staged := &memoryStore{
		categories:   maps.Clone(m.categories),
		styles:       maps.Clone(m.styles),
		glassware:    maps.Clone(m.glassware),
		availability: maps.Clone(m.availability),
		beers:        maps.Clone(m.beers),
		failOn:       m.failOn,
		failWith:     m.failWith,
	}

	err := fn(staged)
	m.calls = append(m.calls, staged.calls...)

	if err != nil {
		return err
	}

	m.categories = staged.categories
	m.styles = staged.styles
	m.glassware = staged.glassware
	m.availability = staged.availability
	m.beers = staged.beers
	m.committed++

	return nil
}

func (m *memoryStore) record(kind model.Kind) error {
	m.calls = append(m.calls, kind)

	if m.failWith != nil && m.failOn == kind {
		return m.failWith
	}

	return nil
}

func insertAbsent[K comparable, T any](table map[K]T, rows []T, key func(T) K) {
	for _, row := range rows {
		if _, found := table[key(row)]; !found {
			table[key(row)] = row
		}
	}
}

func (m *memoryStore) InsertCategories(_ context.Context, categories []model.Category) error {
	if err := m.record(model.KindCategory); err != nil {
		return err
	}

	insertAbsent(m.categories, categories, func(row model.Category) int64 { return row.ID })

	return nil
}

func (m *memoryStore) InsertStyles(_ context.Context, styles []model.Style) error {
	if err := m.record(model.KindStyle); err != nil {
		return err
	}

	insertAbsent(m.styles, styles, func(row model.Style) int64 { return row.ID })

	return nil
}

func (m *memoryStore) InsertGlassware(_ context.Context, glassware []model.Glassware) error {
	if err := m.record(model.KindGlassware); err != nil {
		return err
	}

	insertAbsent(m.glassware, glassware, func(row model.Glassware) int64 { return row.ID })

	return nil
}

func (m *memoryStore) InsertAvailability(_ context.Context, availability []model.Availability) error {
	if err := m.record(model.KindAvailability); err != nil {
		return err
	}

	insertAbsent(m.availability, availability, func(row model.Availability) int64 { return row.ID })

	return nil
}

func (m *memoryStore) InsertBeers(_ context.Context, beers []model.Beer) error {
	if err := m.record(model.KindBeer); err != nil {
		return err
	}

	insertAbsent(m.beers, beers, func(row model.Beer) string { return row.ID })

	return nil
}
