package httpapi

import (
	"encoding/json"
	"net/http"

	"showbook/internal/models"
)

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genres.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}

type genreRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetOrCreateGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	genre, err := s.genres.GetOrCreate(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (s *Server) handlePopularGenres(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	popular, err := s.genres.Popular(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if popular == nil {
		popular = []models.GenrePopularity{}
	}
	writeJSON(w, http.StatusOK, popular)
}

type deleteUnusedResponse struct {
	Deleted int `json:"deleted"`
}

func (s *Server) handleDeleteUnusedGenres(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.genres.DeleteUnused(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteUnusedResponse{Deleted: deleted})
}
