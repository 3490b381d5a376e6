// Package store holds the authoritative student collection and the active
// search/filter criteria.
//
// HOW STATE FLOWS:
// ────────────────
// The store is the only writer. Every collection change (Add, Update,
// Remove) is applied in memory and then the whole collection is written
// to a storage.Slot before the call returns. Criteria changes are session
// state and never touch the slot.
//
// Readers (handlers, the view package) always receive copies, so nothing
// outside this package can mutate the collection.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/view"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "students"

// Store is the single source of truth for students and criteria.
// A *Store is safe for concurrent use; each method is applied atomically.
type Store struct {
	mu       sync.RWMutex
	students []types.Student
	criteria types.Criteria

	slot storage.Slot
	key  string
	log  *slog.Logger
}

// New builds a Store backed by slot and hydrates it from key.
//
// If the slot is empty, unreadable, or holds a payload that does not
// decode, the seed collection is used instead. None of these are fatal:
// they are logged and the store starts anyway.
func New(slot storage.Slot, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Store{slot: slot, key: key, log: log}

	students, err := s.load()
	switch {
	case err == nil:
		log.Info("students loaded from storage",
			slog.String("key", key),
			slog.Int("count", len(students)))
	case errors.Is(err, storage.ErrNotFound):
		log.Info("no stored students, using seed data", slog.String("key", key))
		students = seedStudents()
	default:
		log.Warn("cannot load stored students, using seed data",
			slog.String("key", key),
			slog.String("error", err.Error()))
		students = seedStudents()
	}
	s.students = students

	return s
}

func (s *Store) load() ([]types.Student, error) {
	payload, err := s.slot.Get(s.key)
	if err != nil {
		return nil, err
	}

	var students []types.Student
	if err := json.Unmarshal(payload, &students); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if students == nil {
		// "null" in the slot; treat it as an empty collection.
		students = make([]types.Student, 0)
	}
	return students, nil
}

// persist writes the current collection to the slot. Caller holds mu.
// A failed write is logged and otherwise ignored: the in-memory state
// stays authoritative and the next successful write catches up.
func (s *Store) persist() {
	payload, err := json.Marshal(s.students)
	if err == nil {
		err = s.slot.Set(s.key, payload)
	}
	if err != nil {
		s.log.Error("failed to persist students",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
	}
}

// Add assigns a fresh id to data, appends it and persists.
// Any id already present on data is discarded.
func (s *Store) Add(data types.Student) types.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = uuid.NewString()
	s.students = append(s.students, data)
	s.persist()

	return data
}

// Update replaces the record whose id matches student.ID, keeping its
// position. It reports false, and changes nothing, when no record matches.
func (s *Store) Update(student types.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(student.ID)
	if i < 0 {
		return false
	}
	s.students[i] = student
	s.persist()

	return true
}

// Remove deletes the record with the given id. It reports false when
// there was nothing to delete.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.students = slices.Delete(s.students, i, i+1)
	s.persist()

	return true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.students, func(st types.Student) bool {
		return st.ID == id
	})
}

// SetSearchTerm, SetCourseFilter and SetYearFilter store their argument
// verbatim. Unknown courses or years are accepted; they simply match no
// student.

func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SearchTerm = term
}

func (s *Store) SetCourseFilter(course string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Course = course
}

func (s *Store) SetYearFilter(year string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Year = year
}

// SetCriteria replaces all three criteria at once.
func (s *Store) SetCriteria(c types.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// Criteria returns the active criteria.
func (s *Store) Criteria() types.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Students returns a copy of the full collection in insertion order.
func (s *Store) Students() []types.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.students)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (types.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, false
	}
	return s.students[i], true
}

// FilteredStudents returns the students visible under the active criteria.
func (s *Store) FilteredStudents() []types.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Filter(s.students, s.criteria)
}

// Statistics summarises the full, unfiltered collection.
func (s *Store) Statistics() (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Statistics(s.students)
}

// Summary returns the statistics together with how many students the
// active criteria let through, both taken from the same snapshot.
func (s *Store) Summary() (types.Stats, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, err := view.Statistics(s.students)
	if err != nil {
		return types.Stats{}, 0, err
	}
	return stats, len(view.Filter(s.students, s.criteria)), nil
}
