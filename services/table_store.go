package services

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/yeremiapane/table-booking/models"
)

// TableStore is the in-memory table registry. All methods are safe for
// concurrent use and return copies of the stored tables.
type TableStore struct {
	clock  clock.Clock
	nextID atomic.Int64
	mu     sync.RWMutex
	tables map[int64]models.Table
}

func NewTableStore(clk clock.Clock) *TableStore {
	if clk == nil {
		clk = clock.New()
	}
	return &TableStore{
		clock:  clk,
		tables: make(map[int64]models.Table),
	}
}

// Create assigns a new id and timestamps to table and stores it. The
// table's fields are kept as given; models.NewTable builds one that starts
// out available.
func (s *TableStore) Create(table models.Table) models.Table {
	now := s.clock.Now()
	table.ID = s.nextID.Add(1)
	table.CreatedAt = now
	table.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.ID] = table
	return table
}

func (s *TableStore) Get(id int64) (models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return models.Table{}, ErrNotFound
	}
	return table, nil
}

func (s *TableStore) List() []models.Table {
	return s.filter(func(models.Table) bool { return true })
}

func (s *TableStore) Available() []models.Table {
	return s.filter(func(t models.Table) bool { return t.IsAvailable })
}

// ByMinCapacity returns tables seating at least minCapacity guests.
func (s *TableStore) ByMinCapacity(minCapacity int) []models.Table {
	return s.filter(func(t models.Table) bool { return t.Capacity >= minCapacity })
}

// ByLocation matches location as a case-insensitive substring.
func (s *TableStore) ByLocation(location string) []models.Table {
	needle := strings.ToLower(location)
	return s.filter(func(t models.Table) bool {
		return strings.Contains(strings.ToLower(t.Location), needle)
	})
}

// Update replaces every field of the stored table except ID and CreatedAt.
func (s *TableStore) Update(id int64, table models.Table) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tables[id]
	if !ok {
		return models.Table{}, ErrNotFound
	}
	table.ID = id
	table.CreatedAt = existing.CreatedAt
	table.UpdatedAt = s.clock.Now()
	s.tables[id] = table
	return table, nil
}

// ToggleAvailability flips IsAvailable and returns the updated table.
func (s *TableStore) ToggleAvailability(id int64) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.tables[id]
	if !ok {
		return models.Table{}, ErrNotFound
	}
	table.IsAvailable = !table.IsAvailable
	table.UpdatedAt = s.clock.Now()
	s.tables[id] = table
	return table, nil
}

// Delete reports whether a table with the given id was removed.
func (s *TableStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[id]; !ok {
		return false
	}
	delete(s.tables, id)
	return true
}

func (s *TableStore) filter(keep func(models.Table) bool) []models.Table {
	s.mu.RLock()
	result := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		if keep(t) {
			result = append(result, t)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
