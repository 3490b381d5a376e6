// Package view computes everything the list screen shows from a snapshot
// of the store: the filtered subset and the aggregate statistics.
//
// Every function here is pure. Nothing is cached; the collection is small
// and recomputing on each read keeps the view trivially consistent with
// the store.
package view

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ErrInvalidGPA is returned by Statistics when a record carries a GPA
// that cannot take part in an average (NaN or ±Inf).
var ErrInvalidGPA = errors.New("view: invalid gpa")

// Matches reports whether s satisfies every part of c.
func Matches(s types.Student, c types.Criteria) bool {
	return matchesSearch(s, c.SearchTerm) &&
		(c.Course == "" || s.Course == c.Course) &&
		(c.Year == "" || s.Year == c.Year)
}

// matchesSearch is a case-insensitive substring test over the name,
// email and course fields.
func matchesSearch(s types.Student, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{s.FirstName, s.LastName, s.Email, s.Course} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter returns the students matching c, in their original order.
// The result is never nil so it encodes to [] rather than null.
func Filter(students []types.Student, c types.Criteria) []types.Student {
	out := make([]types.Student, 0, len(students))
	for _, s := range students {
		if Matches(s, c) {
			out = append(out, s)
		}
	}
	return out
}

// Statistics summarises the full collection.
//
// AverageGPA is the arithmetic mean rounded to two decimals, "0.00" for
// an empty collection. Courses and Years list distinct values in order of
// first appearance.
func Statistics(students []types.Student) (types.Stats, error) {
	stats := types.Stats{
		TotalStudents: len(students),
		AverageGPA:    "0.00",
		Courses:       distinct(students, func(s types.Student) string { return s.Course }),
		Years:         distinct(students, func(s types.Student) string { return s.Year }),
	}
	if len(students) == 0 {
		return stats, nil
	}

	var sum float64
	for _, s := range students {
		if math.IsNaN(s.GPA) || math.IsInf(s.GPA, 0) {
			return types.Stats{}, fmt.Errorf("%w: student %s", ErrInvalidGPA, s.ID)
		}
		sum += s.GPA
	}
	stats.AverageGPA = fmt.Sprintf("%.2f", sum/float64(len(students)))

	return stats, nil
}

func distinct(students []types.Student, field func(types.Student) string) []string {
	seen := make(map[string]struct{}, len(students))
	out := make([]string, 0)
	for _, s := range students {
		v := field(s)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
