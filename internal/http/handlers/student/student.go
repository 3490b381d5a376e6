// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the store.
// To inject dependencies we use a factory function that:
//
//  1. Accepts dependencies (store, validator)
//  2. Returns a function with the exact signature the router needs
//
// For example:
//
//	router.HandleFunc("POST /api/students", student.New(st, v))
//	//                                              ^^^^^^^^^^^^^
//	//                         New(st, v) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validate"
)

// Store is the part of *store.Store the handlers depend on.
type Store interface {
	Add(data types.Student) types.Student
	Update(student types.Student) bool
	Remove(id string) bool
	Get(id string) (types.Student, bool)
	FilteredStudents() []types.Student
	SetCriteria(c types.Criteria)
	Criteria() types.Criteria
	Summary() (types.Stats, int, error)
}

var errEmptyBody = errors.New("request body is empty")

// decodeStudent reads a StudentForm from the request body and runs the
// form rules over it. On failure it writes the 400 response itself and
// returns false.
func decodeStudent(w http.ResponseWriter, r *http.Request, v *validate.Validator) (types.Student, bool) {
	var form types.StudentForm

	err := json.NewDecoder(r.Body).Decode(&form)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(fmt.Errorf("invalid request body: %w", err)))
		return types.Student{}, false
	}

	if err := v.Form(form); err != nil {
		var fieldErrs validate.Errors
		if errors.As(err, &fieldErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(fieldErrs))
			return types.Student{}, false
		}
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return types.Student{}, false
	}

	return form.Record(), true
}

func notFound(id string) response.Response {
	return response.GeneralError(fmt.Errorf("no student found with id: %s", id))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body. Any "id" in the body
// is ignored; the store generates one.
//
// Request body (JSON):
//
//	{ "firstName": "Ada", "lastName": "Lovelace", "email": "ada@test.com",
//	  "phone": "+1-555-0100", "dateOfBirth": "2001-12-10",
//	  "address": "1 Analytical Way", "course": "Mathematics",
//	  "year": "Freshman", "gpa": "4.0", "enrollmentDate": "2024-09-01" }
//
// Success response (201 Created):
//
//	{ "id": "5f0c..." }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//
// ─────────────────────────────────────────────────────────────────────────────
func New(st Store, v *validate.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r, v)
		if !ok {
			return
		}

		created := st.Add(student)

		slog.Info("student created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	404 Not Found    — no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, ok := st.Get(id)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, notFound(id))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns the students visible under the current criteria, in insertion
// order. Returns [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting filtered students")
		response.WriteJSON(w, http.StatusOK, st.FilteredStudents())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student. The id in the path wins
// over any id in the body.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	404 Not Found    — no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(st Store, v *validate.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		student, ok := decodeStudent(w, r, v)
		if !ok {
			return
		}
		student.ID = id

		if !st.Update(student) {
			response.WriteJSON(w, http.StatusNotFound, notFound(id))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if !st.Remove(id) {
			response.WriteJSON(w, http.StatusNotFound, notFound(id))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
