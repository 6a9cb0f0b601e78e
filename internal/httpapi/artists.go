package httpapi

import (
	"encoding/json"
	"net/http"

	"showbook/internal/models"
)

type artistRequest struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	artist := &models.Artist{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		WebsiteLink:        req.WebsiteLink,
		SeekingVenue:       req.SeekingVenue,
		SeekingDescription: req.SeekingDescription,
	}

	created, err := s.artists.Create(r.Context(), artist)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if artists == nil {
		artists = []models.ArtistListItem{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	results, err := s.artists.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.ArtistListItem{}
	}
	writeJSON(w, http.StatusOK, results)
}

type artistUpdateRequest struct {
	Name               *string  `json:"name"`
	City               *string  `json:"city"`
	State              *string  `json:"state"`
	Phone              *string  `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          *string  `json:"image_link"`
	FacebookLink       *string  `json:"facebook_link"`
	WebsiteLink        *string  `json:"website_link"`
	SeekingVenue       *bool    `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description"`
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req artistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	upd := &models.ArtistUpdate{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		WebsiteLink:        req.WebsiteLink,
		SeekingVenue:       req.SeekingVenue,
		SeekingDescription: req.SeekingDescription,
	}

	artist, err := s.artists.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
