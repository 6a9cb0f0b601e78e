// Package venues holds venue workflows: validation, duplicate handling
// and orchestration in front of the store.
package venues

import (
	"context"
	"strings"
	"time"

	"showbook/internal/models"
	"showbook/internal/validate"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	GetVenueWithShows(ctx context.Context, id int64, now time.Time) (*models.VenueWithShows, error)
	ListAreas(ctx context.Context, now time.Time) ([]models.Area, error)
	SearchVenuesByName(ctx context.Context, term string, now time.Time) ([]models.VenueListItem, error)
	UpdateVenue(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
}

// Service coordinates venue-related operations
type Service interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.VenueWithShows, error)
	Areas(ctx context.Context) ([]models.Area, error)
	Search(ctx context.Context, term string) ([]models.VenueListItem, error)
	Update(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a venues Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateVenue(venue); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) Get(ctx context.Context, id int64) (*models.VenueWithShows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenueWithShows(ctx, id, s.now())
}

func (s *service) Areas(ctx context.Context) ([]models.Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAreas(ctx, s.now())
}

func (s *service) Search(ctx context.Context, term string) ([]models.VenueListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	return s.store.SearchVenuesByName(ctx, term, s.now())
}

func (s *service) Update(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalizeVenueUpdate(upd)
	if err := validateVenueUpdate(upd); err != nil {
		return nil, err
	}
	return s.store.UpdateVenue(ctx, id, upd)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}

func validateVenue(venue *models.Venue) error {
	if err := validate.Name(venue.Name); err != nil {
		return err
	}
	if err := validate.City(venue.City); err != nil {
		return err
	}
	state, err := validate.StateCode(venue.State)
	if err != nil {
		return err
	}
	venue.State = state
	if err := validate.Address(venue.Address); err != nil {
		return err
	}
	if err := validate.Phone(venue.Phone); err != nil {
		return err
	}
	if err := validate.URL("image_link", venue.ImageLink); err != nil {
		return err
	}
	if err := validate.URL("facebook_link", venue.FacebookLink); err != nil {
		return err
	}
	if err := validate.URL("website_link", venue.WebsiteLink); err != nil {
		return err
	}
	if err := validate.SeekingDescription(venue.SeekingDescription); err != nil {
		return err
	}
	genres, err := validate.Genres(venue.Genres)
	if err != nil {
		return err
	}
	venue.Genres = genres
	return nil
}

// normalizeVenueUpdate treats supplied-but-empty strings as not supplied.
func normalizeVenueUpdate(upd *models.VenueUpdate) {
	upd.Name = dropEmpty(upd.Name)
	upd.City = dropEmpty(upd.City)
	upd.State = dropEmpty(upd.State)
	upd.Address = dropEmpty(upd.Address)
	upd.Phone = dropEmpty(upd.Phone)
	upd.ImageLink = dropEmpty(upd.ImageLink)
	upd.FacebookLink = dropEmpty(upd.FacebookLink)
	upd.WebsiteLink = dropEmpty(upd.WebsiteLink)
	upd.SeekingDescription = dropEmpty(upd.SeekingDescription)
}

func validateVenueUpdate(upd *models.VenueUpdate) error {
	if upd.Name != nil {
		if err := validate.Name(*upd.Name); err != nil {
			return err
		}
	}
	if upd.City != nil {
		if err := validate.City(*upd.City); err != nil {
			return err
		}
	}
	if upd.State != nil {
		state, err := validate.StateCode(*upd.State)
		if err != nil {
			return err
		}
		upd.State = &state
	}
	if upd.Address != nil {
		if err := validate.Address(*upd.Address); err != nil {
			return err
		}
	}
	if upd.Phone != nil {
		if err := validate.Phone(*upd.Phone); err != nil {
			return err
		}
	}
	if upd.ImageLink != nil {
		if err := validate.URL("image_link", *upd.ImageLink); err != nil {
			return err
		}
	}
	if upd.FacebookLink != nil {
		if err := validate.URL("facebook_link", *upd.FacebookLink); err != nil {
			return err
		}
	}
	if upd.WebsiteLink != nil {
		if err := validate.URL("website_link", *upd.WebsiteLink); err != nil {
			return err
		}
	}
	if upd.SeekingDescription != nil {
		if err := validate.SeekingDescription(*upd.SeekingDescription); err != nil {
			return err
		}
	}
	if upd.Genres != nil {
		genres, err := validate.Genres(upd.Genres)
		if err != nil {
			return err
		}
		upd.Genres = genres
	}
	return nil
}

func dropEmpty(p *string) *string {
	if p != nil && *p == "" {
		return nil
	}
	return p
}
