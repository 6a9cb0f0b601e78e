package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"showbook/internal/models"
	"showbook/internal/store"
	"showbook/internal/validate"
)

// VenueService coordinates venue-related operations
type VenueService interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.VenueWithShows, error)
	Areas(ctx context.Context) ([]models.Area, error)
	Search(ctx context.Context, term string) ([]models.VenueListItem, error)
	Update(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService coordinates artist-related operations
type ArtistService interface {
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Get(ctx context.Context, id int64) (*models.ArtistWithShows, error)
	List(ctx context.Context) ([]models.ArtistListItem, error)
	Search(ctx context.Context, term string) ([]models.ArtistListItem, error)
	Update(ctx context.Context, id int64, upd *models.ArtistUpdate) (*models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// ShowService coordinates show-related operations
type ShowService interface {
	Create(ctx context.Context, artistID, venueID int64, startTime time.Time) (*models.Show, error)
	Get(ctx context.Context, id int64) (*models.ShowWithDetails, error)
	List(ctx context.Context) ([]models.ShowWithDetails, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.ShowWithDetails, error)
	ListPast(ctx context.Context, limit int) ([]models.ShowWithDetails, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*models.ShowStats, error)
	Overview(ctx context.Context) (*models.DirectoryStats, error)
}

// GenreService coordinates genre-related operations
type GenreService interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetOrCreate(ctx context.Context, name string) (*models.Genre, error)
	Popular(ctx context.Context, limit int) ([]models.GenrePopularity, error)
	DeleteUnused(ctx context.Context) (int, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
	genres  GenreService
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService, genres GenreService) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
		genres:  genres,
	}
}

// Routes exposes the HTTP handlers for the booking directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard summary
	mux.HandleFunc("GET /api/v1/stats", s.handleDirectoryStats)

	// Venue routes
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/v1/venues", s.handleListVenueAreas)
	mux.HandleFunc("GET /api/v1/venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("PUT /api/v1/venues/{id}", s.handleUpdateVenue)
	mux.HandleFunc("DELETE /api/v1/venues/{id}", s.handleDeleteVenue)

	// Artist routes
	mux.HandleFunc("POST /api/v1/artists", s.handleCreateArtist)
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/v1/artists/{id}", s.handleDeleteArtist)

	// Show routes
	mux.HandleFunc("POST /api/v1/shows", s.handleCreateShow)
	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("GET /api/v1/shows/upcoming", s.handleUpcomingShows)
	mux.HandleFunc("GET /api/v1/shows/past", s.handlePastShows)
	mux.HandleFunc("GET /api/v1/shows/stats", s.handleShowStats)
	mux.HandleFunc("GET /api/v1/shows/{id}", s.handleGetShow)
	mux.HandleFunc("DELETE /api/v1/shows/{id}", s.handleDeleteShow)

	// Genre routes
	mux.HandleFunc("GET /api/v1/genres", s.handleListGenres)
	mux.HandleFunc("POST /api/v1/genres", s.handleGetOrCreateGenre)
	mux.HandleFunc("GET /api/v1/genres/popular", s.handlePopularGenres)
	mux.HandleFunc("DELETE /api/v1/genres/unused", s.handleDeleteUnusedGenres)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps domain errors onto the 404/409/422/500 split. Genre
// resolution failing during a write counts as a storage failure, not a
// lookup miss, so it falls through to 500.
func errorStatus(err error) int {
	var vErr *validate.Error
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrArtistNotFound),
		errors.Is(err, store.ErrShowNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateVenue),
		errors.Is(err, store.ErrDuplicateArtist),
		errors.Is(err, store.ErrShowConflict),
		errors.Is(err, store.ErrVenueHasShows),
		errors.Is(err, store.ErrArtistHasShows):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
