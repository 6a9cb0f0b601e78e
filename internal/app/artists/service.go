// Package artists holds artist workflows, mirroring the venues service.
package artists

import (
	"context"
	"strings"
	"time"

	"showbook/internal/models"
	"showbook/internal/validate"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	GetArtistWithShows(ctx context.Context, id int64, now time.Time) (*models.ArtistWithShows, error)
	ListArtists(ctx context.Context) ([]models.ArtistListItem, error)
	SearchArtistsByName(ctx context.Context, term string) ([]models.ArtistListItem, error)
	UpdateArtist(ctx context.Context, id int64, upd *models.ArtistUpdate) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// Service coordinates artist-related operations
type Service interface {
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Get(ctx context.Context, id int64) (*models.ArtistWithShows, error)
	List(ctx context.Context) ([]models.ArtistListItem, error)
	Search(ctx context.Context, term string) ([]models.ArtistListItem, error)
	Update(ctx context.Context, id int64, upd *models.ArtistUpdate) (*models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs an artists Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateArtist(artist); err != nil {
		return nil, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Get(ctx context.Context, id int64) (*models.ArtistWithShows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetArtistWithShows(ctx, id, s.now())
}

func (s *service) List(ctx context.Context) ([]models.ArtistListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]models.ArtistListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	return s.store.SearchArtistsByName(ctx, term)
}

func (s *service) Update(ctx context.Context, id int64, upd *models.ArtistUpdate) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalizeArtistUpdate(upd)
	if err := validateArtistUpdate(upd); err != nil {
		return nil, err
	}
	return s.store.UpdateArtist(ctx, id, upd)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func validateArtist(artist *models.Artist) error {
	if err := validate.Name(artist.Name); err != nil {
		return err
	}
	if err := validate.City(artist.City); err != nil {
		return err
	}
	state, err := validate.StateCode(artist.State)
	if err != nil {
		return err
	}
	artist.State = state
	if err := validate.Phone(artist.Phone); err != nil {
		return err
	}
	if err := validate.URL("image_link", artist.ImageLink); err != nil {
		return err
	}
	if err := validate.URL("facebook_link", artist.FacebookLink); err != nil {
		return err
	}
	if err := validate.URL("website_link", artist.WebsiteLink); err != nil {
		return err
	}
	if err := validate.SeekingDescription(artist.SeekingDescription); err != nil {
		return err
	}
	genres, err := validate.Genres(artist.Genres)
	if err != nil {
		return err
	}
	artist.Genres = genres
	return nil
}

// normalizeArtistUpdate treats supplied-but-empty strings as not supplied.
func normalizeArtistUpdate(upd *models.ArtistUpdate) {
	upd.Name = dropEmpty(upd.Name)
	upd.City = dropEmpty(upd.City)
	upd.State = dropEmpty(upd.State)
	upd.Phone = dropEmpty(upd.Phone)
	upd.ImageLink = dropEmpty(upd.ImageLink)
	upd.FacebookLink = dropEmpty(upd.FacebookLink)
	upd.WebsiteLink = dropEmpty(upd.WebsiteLink)
	upd.SeekingDescription = dropEmpty(upd.SeekingDescription)
}

func validateArtistUpdate(upd *models.ArtistUpdate) error {
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
