package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func johnAndJane() []types.Student {
	return []types.Student{
		{
			ID: "a", FirstName: "John", LastName: "Doe", Email: "john.doe@email.com",
			Phone: "+1-555-0123", DateOfBirth: "1998-05-15", Address: "123 Main St",
			Course: "Computer Science", Year: "Senior", GPA: 3.8, EnrollmentDate: "2020-09-01",
		},
		{
			ID: "b", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com",
			Phone: "+1-555-0124", DateOfBirth: "1999-03-22", Address: "456 Oak Ave",
			Course: "Business Administration", Year: "Junior", GPA: 3.6, EnrollmentDate: "2021-09-01",
		},
	}
}

// storeWith returns a store hydrated from a slot holding students.
func storeWith(t *testing.T, students []types.Student) (*Store, *memory.Memory) {
	t.Helper()
	slot := memory.New()
	payload, err := json.Marshal(students)
	require.NoError(t, err)
	require.NoError(t, slot.Set(DefaultKey, payload))
	return New(slot, DefaultKey, discardLogger()), slot
}

func stored(t *testing.T, slot storage.Slot) []types.Student {
	t.Helper()
	payload, err := slot.Get(DefaultKey)
	require.NoError(t, err)
	var students []types.Student
	require.NoError(t, json.Unmarshal(payload, &students))
	return students
}

func TestNew_Hydration(t *testing.T) {
	t.Run("empty slot uses seed data", func(t *testing.T) {
		s := New(memory.New(), "", discardLogger())
		assert.Equal(t, seedStudents(), s.Students())
	})

	t.Run("corrupt payload uses seed data", func(t *testing.T) {
		slot := memory.New()
		require.NoError(t, slot.Set(DefaultKey, []byte("{not json")))
		s := New(slot, DefaultKey, discardLogger())
		assert.Equal(t, seedStudents(), s.Students())
	})

	t.Run("non-numeric gpa uses seed data", func(t *testing.T) {
		slot := memory.New()
		require.NoError(t, slot.Set(DefaultKey, []byte(`[{"id":"x","gpa":"abc"}]`)))
		s := New(slot, DefaultKey, discardLogger())
		assert.Equal(t, seedStudents(), s.Students())
	})

	t.Run("stored collection is used as is", func(t *testing.T) {
		s, _ := storeWith(t, johnAndJane())
		assert.Equal(t, johnAndJane(), s.Students())
	})

	t.Run("stored empty collection stays empty", func(t *testing.T) {
		s, _ := storeWith(t, []types.Student{})
		assert.Empty(t, s.Students())
	})

	t.Run("criteria start empty", func(t *testing.T) {
		s := New(memory.New(), "", discardLogger())
		assert.Equal(t, types.Criteria{}, s.Criteria())
	})
}

func TestAdd(t *testing.T) {
	s, slot := storeWith(t, johnAndJane())

	data := johnAndJane()[0]
	data.ID = "caller-supplied"
	data.FirstName = "Ada"

	created := s.Add(data)

	students := s.Students()
	require.Len(t, students, 3)
	assert.NotEqual(t, "caller-supplied", created.ID)
	assert.NotEqual(t, "a", created.ID)
	assert.NotEqual(t, "b", created.ID)
	assert.Equal(t, created, students[2], "new student is appended")
	assert.Equal(t, "a", students[0].ID)
	assert.Equal(t, "b", students[1].ID)

	assert.Equal(t, students, stored(t, slot), "add is persisted")
}

func TestAdd_UniqueIDs(t *testing.T) {
	s := New(memory.New(), "", discardLogger())

	seen := make(map[string]bool)
	for _, st := range s.Students() {
		seen[st.ID] = true
	}
	for i := 0; i < 50; i++ {
		created := s.Add(types.Student{FirstName: "x"})
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
	assert.Len(t, s.Students(), 53)
}

func TestUpdate(t *testing.T) {
	t.Run("replaces matching entry in place", func(t *testing.T) {
		s, slot := storeWith(t, johnAndJane())

		jane := johnAndJane()[1]
		jane.GPA = 4.0
		jane.Year = "Senior"

		assert.True(t, s.Update(jane))

		want := johnAndJane()
		want[1] = jane
		assert.Equal(t, want, s.Students())
		assert.Equal(t, want, stored(t, slot))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, slot := storeWith(t, johnAndJane())
		before, err := slot.Get(DefaultKey)
		require.NoError(t, err)

		ghost := johnAndJane()[0]
		ghost.ID = "missing"

		assert.False(t, s.Update(ghost))
		assert.Equal(t, johnAndJane(), s.Students())

		after, err := slot.Get(DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestRemove(t *testing.T) {
	t.Run("present id", func(t *testing.T) {
		s, slot := storeWith(t, johnAndJane())

		assert.True(t, s.Remove("a"))

		_, ok := s.Get("a")
		assert.False(t, ok)
		assert.Equal(t, johnAndJane()[1:], s.Students())
		assert.Equal(t, johnAndJane()[1:], stored(t, slot))
	})

	t.Run("absent id", func(t *testing.T) {
		s, _ := storeWith(t, johnAndJane())

		assert.False(t, s.Remove("missing"))
		assert.Equal(t, johnAndJane(), s.Students())
	})

	t.Run("twice", func(t *testing.T) {
		s, _ := storeWith(t, johnAndJane())

		assert.True(t, s.Remove("b"))
		assert.False(t, s.Remove("b"))
		assert.Len(t, s.Students(), 1)
	})
}

func TestGet(t *testing.T) {
	s, _ := storeWith(t, johnAndJane())

	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FirstName)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestStudents_ReturnsCopy(t *testing.T) {
	s, _ := storeWith(t, johnAndJane())

	students := s.Students()
	students[0].FirstName = "Mutated"

	got, _ := s.Get("a")
	assert.Equal(t, "John", got.FirstName)
}

func TestCriteria(t *testing.T) {
	slot := memory.New()
	s := New(slot, "", discardLogger())

	s.SetSearchTerm("jo")
	s.SetCourseFilter("Astrology")
	s.SetYearFilter("Senior")

	assert.Equal(t, types.Criteria{SearchTerm: "jo", Course: "Astrology", Year: "Senior"}, s.Criteria())
	assert.Empty(t, s.FilteredStudents(), "unknown course matches nothing")

	_, err := slot.Get(DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound, "criteria are never persisted")

	s.SetCriteria(types.Criteria{})
	assert.Len(t, s.FilteredStudents(), 3)
}

func TestFilteredStudents(t *testing.T) {
	s, _ := storeWith(t, johnAndJane())

	assert.Equal(t, johnAndJane(), s.FilteredStudents())

	s.SetSearchTerm("jane")
	assert.Equal(t, johnAndJane()[1:], s.FilteredStudents())

	s.SetSearchTerm("JOHN")
	assert.Equal(t, johnAndJane()[:1], s.FilteredStudents())
}

func TestStatistics(t *testing.T) {
	s, _ := storeWith(t, johnAndJane())
	s.SetSearchTerm("jane")

	stats, err := s.Statistics()
	require.NoError(t, err)
	assert.Equal(t, types.Stats{
		TotalStudents: 2,
		AverageGPA:    "3.70",
		Courses:       []string{"Computer Science", "Business Administration"},
		Years:         []string{"Senior", "Junior"},
	}, stats, "statistics ignore the criteria")
}

func TestRoundTrip(t *testing.T) {
	slot := memory.New()
	first := New(slot, "roster", discardLogger())
	first.Add(johnAndJane()[0])
	first.Remove("2")

	second := New(slot, "roster", discardLogger())
	assert.Equal(t, first.Students(), second.Students())
}

type failingSlot struct{ storage.Slot }

func (failingSlot) Set(string, []byte) error { return errors.New("disk full") }

func TestPersistFailure_KeepsState(t *testing.T) {
	s := New(failingSlot{memory.New()}, "", discardLogger())

	created := s.Add(johnAndJane()[0])

	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "John", got.FirstName)
	assert.Len(t, s.Students(), 4)
}

func TestSummary(t *testing.T) {
	s, _ := storeWith(t, johnAndJane())
	s.SetYearFilter("Junior")

	stats, filtered, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, "3.70", stats.AverageGPA)
	assert.Equal(t, 1, filtered)

	want, err := s.Statistics()
	require.NoError(t, err)
	assert.Equal(t, want, stats)
	assert.Len(t, s.FilteredStudents(), filtered)
}

func TestSummary_ConcurrentWrites(t *testing.T) {
	s := New(memory.New(), "", discardLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			created := s.Add(johnAndJane()[0])
			s.Remove(created.ID)
		}
	}()

	for i := 0; i < 200; i++ {
		stats, filtered, err := s.Summary()
		require.NoError(t, err)
		assert.Equal(t, stats.TotalStudents, filtered, "no criteria: every student is visible")
	}
	<-done
}
