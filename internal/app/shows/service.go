// Package shows holds booking workflows for shows.
package shows

import (
	"context"
	"time"

	"showbook/internal/models"
	"showbook/internal/validate"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
	GetShow(ctx context.Context, id int64) (*models.ShowWithDetails, error)
	ListShows(ctx context.Context) ([]models.ShowWithDetails, error)
	ListUpcomingShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error)
	ListPastShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error)
	DeleteShow(ctx context.Context, id int64) error
	ShowStatistics(ctx context.Context, now time.Time) (*models.ShowStats, error)
	DirectoryStatistics(ctx context.Context, now time.Time) (*models.DirectoryStats, error)
}

// Service coordinates show-related operations
type Service interface {
	Create(ctx context.Context, artistID, venueID int64, startTime time.Time) (*models.Show, error)
	Get(ctx context.Context, id int64) (*models.ShowWithDetails, error)
	List(ctx context.Context) ([]models.ShowWithDetails, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.ShowWithDetails, error)
	ListPast(ctx context.Context, limit int) ([]models.ShowWithDetails, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*models.ShowStats, error)
	Overview(ctx context.Context) (*models.DirectoryStats, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a shows Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Create books an artist at a venue. The start time must be strictly in
// the future; existence and scheduling-conflict checks happen in the
// store inside one transaction.
func (s *service) Create(ctx context.Context, artistID, venueID int64, startTime time.Time) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !startTime.After(s.now()) {
		return nil, validate.Errorf("show start time must be in the future")
	}
	show := &models.Show{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: startTime,
	}
	return s.store.CreateShow(ctx, show)
}

func (s *service) Get(ctx context.Context, id int64) (*models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	show, err := s.store.GetShow(ctx, id)
	if err != nil {
		return nil, err
	}
	show.Status = models.ClassifyShow(show.StartTime, s.now())
	return show, nil
}

func (s *service) List(ctx context.Context) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shows, err := s.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}
	return s.classify(shows), nil
}

func (s *service) ListUpcoming(ctx context.Context, limit int) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, validate.Errorf("limit must not be negative")
	}
	shows, err := s.store.ListUpcomingShows(ctx, s.now(), limit)
	if err != nil {
		return nil, err
	}
	return s.classify(shows), nil
}

func (s *service) ListPast(ctx context.Context, limit int) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, validate.Errorf("limit must not be negative")
	}
	shows, err := s.store.ListPastShows(ctx, s.now(), limit)
	if err != nil {
		return nil, err
	}
	return s.classify(shows), nil
}

// classify stamps each show with its position relative to the service
// clock at read time.
func (s *service) classify(shows []models.ShowWithDetails) []models.ShowWithDetails {
	now := s.now()
	for i := range shows {
		shows[i].Status = models.ClassifyShow(shows[i].StartTime, now)
	}
	return shows
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteShow(ctx, id)
}

func (s *service) Statistics(ctx context.Context) (*models.ShowStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ShowStatistics(ctx, s.now())
}

func (s *service) Overview(ctx context.Context) (*models.DirectoryStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.DirectoryStatistics(ctx, s.now())
}
