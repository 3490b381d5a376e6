// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, the store, the view and storage backends can all import
// types without depending on each other.
package types

import "slices"

// Student represents one enrolled person.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON.
//     The names match the persisted slot format, so a record written by
//     the store can be read back byte-for-byte by the next process.
//     GPA carries ",string": it lives as a float64 in memory but travels
//     as a text decimal ("3.8") on the wire and in storage.
//
//  2. validate:"..." — rules checked by the validate package before a
//     record is handed to the store. "notblank", "course" and "year" are
//     custom tags registered there.
type Student struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"      validate:"notblank"`
	LastName       string  `json:"lastName"       validate:"notblank"`
	Email          string  `json:"email"          validate:"notblank,email"`
	Phone          string  `json:"phone"          validate:"notblank"`
	DateOfBirth    string  `json:"dateOfBirth"    validate:"required,datetime=2006-01-02"`
	Address        string  `json:"address"        validate:"notblank"`
	Course         string  `json:"course"         validate:"notblank,course"`
	Year           string  `json:"year"           validate:"notblank,year"`
	GPA            float64 `json:"gpa,string"     validate:"gte=0,lte=4"`
	EnrollmentDate string  `json:"enrollmentDate" validate:"required,datetime=2006-01-02"`
}

// StudentForm is a Student as a client submits it.
//
// GPA shadows the embedded Student's field and is a pointer so that a
// request without "gpa" fails "required" instead of arriving as 0.0.
type StudentForm struct {
	Student
	GPA *float64 `json:"gpa,string" validate:"required,gte=0,lte=4"`
}

// Record returns the submitted student with its GPA filled in.
// Call it only after the form has passed validation.
func (f StudentForm) Record() Student {
	s := f.Student
	if f.GPA != nil {
		s.GPA = *f.GPA
	}
	return s
}

// Criteria is the set of search and filter values that decide which
// students are currently visible. An empty field means "no filter".
type Criteria struct {
	SearchTerm string `json:"searchTerm"`
	Course     string `json:"course"`
	Year       string `json:"year"`
}

// Stats is the aggregate summary over the whole collection.
type Stats struct {
	TotalStudents int      `json:"totalStudents"`
	AverageGPA    string   `json:"averageGPA"`
	Courses       []string `json:"courses"`
	Years         []string `json:"years"`
}

// Courses lists every course a student can be enrolled in.
var Courses = []string{
	"Computer Science",
	"Business Administration",
	"Engineering",
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Psychology",
	"English Literature",
	"History",
	"Economics",
	"Political Science",
}

// Years lists the academic standings, lowest first.
var Years = []string{
	"Freshman",
	"Sophomore",
	"Junior",
	"Senior",
	"Graduate",
}

// IsCourse reports whether c is one of Courses.
func IsCourse(c string) bool { return slices.Contains(Courses, c) }

// IsYear reports whether y is one of Years.
func IsYear(y string) bool { return slices.Contains(Years, y) }
