package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// GetCriteria handles GET /api/criteria
func GetCriteria(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, st.Criteria())
	}
}

// SetCriteria handles PUT /api/criteria
// The body replaces all three criteria; omitted fields clear that filter.
//
//	{ "searchTerm": "jane", "course": "", "year": "Junior" }
func SetCriteria(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c types.Criteria
		err := json.NewDecoder(r.Body).Decode(&c)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		st.SetCriteria(c)
		slog.Debug("criteria updated",
			slog.String("searchTerm", c.SearchTerm),
			slog.String("course", c.Course),
			slog.String("year", c.Year))

		response.WriteJSON(w, http.StatusOK, c)
	}
}

// statsResponse is the stats header shown above the list: the aggregate
// over every student plus how many the current criteria let through.
type statsResponse struct {
	types.Stats
	FilteredCount int `json:"filteredCount"`
}

// GetStats handles GET /api/stats
func GetStats(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, filtered, err := st.Summary()
		if err != nil {
			slog.Error("error computing statistics", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, statsResponse{
			Stats:         stats,
			FilteredCount: filtered,
		})
	}
}

// GetOptions handles GET /api/options
// It lists the values a form may offer for course and year.
func GetOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string][]string{
			"courses": types.Courses,
			"years":   types.Years,
		})
	}
}
