package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVerify translates query parameters into a filter and runs one
// aggregation. Invalid input is the one case that returns an error status;
// upstream trouble shows up inside the report instead.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := s.verifier.Verify(r.Context(), f)
	if err != nil {
		var fe *models.FilterError
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fe.Error()})
			return
		}
		s.log.Error("verify failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func filterFromQuery(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	f := models.Filter{
		Team:        q.Get("team"),
		Competition: q.Get("key"),
		Date:        q.Get("date"),
		Exact:       q.Get("exact") == "1" || q.Get("exact") == "true",
		NoCache:     q.Get("nocache") == "1" || q.Get("nocache") == "true",
		Debug:       q.Get("debug") == "1" || q.Get("debug") == "true",
	}
	if raw := q.Get("hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return models.Filter{}, &models.FilterError{Field: "hours", Value: raw, Reason: "must be an integer"}
		}
		f.Hours = &hours
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
