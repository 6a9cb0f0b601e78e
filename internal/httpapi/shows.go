package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"showbook/internal/models"
)

type showRequest struct {
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	show, err := s.shows.Create(r.Context(), req.ArtistID, req.VenueID, req.StartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, show)
}

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	show, err := s.shows.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []models.ShowWithDetails{}
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handleUpcomingShows(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	shows, err := s.shows.ListUpcoming(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []models.ShowWithDetails{}
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handlePastShows(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	shows, err := s.shows.ListPast(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []models.ShowWithDetails{}
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handleDeleteShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.shows.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShowStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.shows.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDirectoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.shows.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// queryLimit parses an optional limit query parameter, defaulting to zero.
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		return 0, false
	}
	return limit, true
}
