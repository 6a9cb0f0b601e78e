package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"showbook/internal/models"
)

type venueRequest struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	venue := &models.Venue{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Address:            req.Address,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		WebsiteLink:        req.WebsiteLink,
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: req.SeekingDescription,
	}

	created, err := s.venues.Create(r.Context(), venue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleListVenueAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.Areas(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if areas == nil {
		areas = []models.Area{}
	}
	writeJSON(w, http.StatusOK, areas)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	results, err := s.venues.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.VenueListItem{}
	}
	writeJSON(w, http.StatusOK, results)
}

type venueUpdateRequest struct {
	Name               *string  `json:"name"`
	City               *string  `json:"city"`
	State              *string  `json:"state"`
	Address            *string  `json:"address"`
	Phone              *string  `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          *string  `json:"image_link"`
	FacebookLink       *string  `json:"facebook_link"`
	WebsiteLink        *string  `json:"website_link"`
	SeekingTalent      *bool    `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description"`
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req venueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	upd := &models.VenueUpdate{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Address:            req.Address,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		WebsiteLink:        req.WebsiteLink,
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: req.SeekingDescription,
	}

	venue, err := s.venues.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment, writing a 400 response on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
