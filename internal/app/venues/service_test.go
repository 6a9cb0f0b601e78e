package venues

import (
	"context"
	"errors"
	"testing"
	"time"

	"showbook/internal/models"
	"showbook/internal/validate"
)

type stubStore struct {
	createdVenue *models.Venue
	createErr    error

	updatedID  int64
	updatedUpd *models.VenueUpdate

	searchTerm string
	searchHits []models.VenueListItem
}

func (s *stubStore) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	s.createdVenue = venue
	if s.createErr != nil {
		return nil, s.createErr
	}
	venue.ID = 1
	return venue, nil
}

func (s *stubStore) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	return &models.Venue{ID: id}, nil
}

func (s *stubStore) GetVenueWithShows(ctx context.Context, id int64, now time.Time) (*models.VenueWithShows, error) {
	return &models.VenueWithShows{Venue: models.Venue{ID: id}}, nil
}

func (s *stubStore) ListAreas(ctx context.Context, now time.Time) ([]models.Area, error) {
	return nil, nil
}

func (s *stubStore) SearchVenuesByName(ctx context.Context, term string, now time.Time) ([]models.VenueListItem, error) {
	s.searchTerm = term
	return s.searchHits, nil
}

func (s *stubStore) UpdateVenue(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error) {
	s.updatedID = id
	s.updatedUpd = upd
	return &models.Venue{ID: id}, nil
}

func (s *stubStore) DeleteVenue(ctx context.Context, id int64) error {
	return nil
}

func validVenue() *models.Venue {
	return &models.Venue{
		Name:   "The Musical Hop",
		City:   "San Francisco",
		State:  "CA",
		Phone:  "123-123-1234",
		Genres: []string{"Jazz"},
	}
}

func TestCreateNormalizesState(t *testing.T) {
	store := &stubStore{}
	svc := New(store)

	venue := validVenue()
	venue.State = "ca"

	created, err := svc.Create(context.Background(), venue)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.State != "CA" {
		t.Fatalf("expected normalized state CA, got %q", created.State)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Venue)
	}{
		{name: "missing name", mutate: func(v *models.Venue) { v.Name = "" }},
		{name: "bad state", mutate: func(v *models.Venue) { v.State = "ZZ" }},
		{name: "bad phone", mutate: func(v *models.Venue) { v.Phone = "555-1234" }},
		{name: "no genres", mutate: func(v *models.Venue) { v.Genres = nil }},
		{name: "unknown genre", mutate: func(v *models.Venue) { v.Genres = []string{"Polka"} }},
		{name: "bad website", mutate: func(v *models.Venue) { v.WebsiteLink = "not-a-url" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{}
			svc := New(store)

			venue := validVenue()
			tc.mutate(venue)

			_, err := svc.Create(context.Background(), venue)
			var vErr *validate.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if store.createdVenue != nil {
				t.Fatalf("store should not be reached on invalid input")
			}
		})
	}
}

func TestSearchTrimsAndShortCircuits(t *testing.T) {
	store := &stubStore{searchHits: []models.VenueListItem{{ID: 1, Name: "The Musical Hop"}}}
	svc := New(store)

	hits, err := svc.Search(context.Background(), "  hop  ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if store.searchTerm != "hop" {
		t.Fatalf("expected trimmed term, got %q", store.searchTerm)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}

	store.searchTerm = "unset"
	hits, err = svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if hits != nil {
		t.Fatalf("expected no hits for blank term, got %v", hits)
	}
	if store.searchTerm != "unset" {
		t.Fatalf("store should not be queried for blank term")
	}
}

func TestUpdateDropsEmptyStrings(t *testing.T) {
	store := &stubStore{}
	svc := New(store)

	name := ""
	phone := "415-555-1234"
	if _, err := svc.Update(context.Background(), 1, &models.VenueUpdate{Name: &name, Phone: &phone}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if store.updatedUpd.Name != nil {
		t.Fatalf("expected empty name treated as not supplied")
	}
	if store.updatedUpd.Phone == nil || *store.updatedUpd.Phone != phone {
		t.Fatalf("expected phone passed through")
	}
}

func TestUpdateValidatesSuppliedFields(t *testing.T) {
	store := &stubStore{}
	svc := New(store)

	phone := "not-a-phone"
	_, err := svc.Update(context.Background(), 1, &models.VenueUpdate{Phone: &phone})
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.updatedUpd != nil {
		t.Fatalf("store should not be reached on invalid update")
	}
}
