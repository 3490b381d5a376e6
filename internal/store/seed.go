package store

import "github.com/aanand-mishra/student-records/internal/types"

// seedStudents is the collection used when the slot holds nothing usable.
func seedStudents() []types.Student {
	return []types.Student{
		{
			ID:             "1",
			FirstName:      "John",
			LastName:       "Doe",
			Email:          "john.doe@email.com",
			Phone:          "+1-555-0123",
			DateOfBirth:    "1998-05-15",
			Address:        "123 Main St, City, State 12345",
			Course:         "Computer Science",
			Year:           "Senior",
			GPA:            3.8,
			EnrollmentDate: "2020-09-01",
		},
		{
			ID:             "2",
			FirstName:      "Jane",
			LastName:       "Smith",
			Email:          "jane.smith@email.com",
			Phone:          "+1-555-0124",
			DateOfBirth:    "1999-03-22",
			Address:        "456 Oak Ave, City, State 12346",
			Course:         "Business Administration",
			Year:           "Junior",
			GPA:            3.6,
			EnrollmentDate: "2021-09-01",
		},
		{
			ID:             "3",
			FirstName:      "Mike",
			LastName:       "Johnson",
			Email:          "mike.johnson@email.com",
			Phone:          "+1-555-0125",
			DateOfBirth:    "2000-01-10",
			Address:        "789 Pine Rd, City, State 12347",
			Course:         "Engineering",
			Year:           "Sophomore",
			GPA:            3.9,
			EnrollmentDate: "2022-09-01",
		},
	}
}
