package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showbook/internal/logging"
	"showbook/internal/models"
	"showbook/internal/store"
	"showbook/internal/validate"
)

// bootstrap prepares the canonical genre list and optionally seeds demo data.
func bootstrap(ctx context.Context, cfg Config, dataStore *store.Store) error {
	if err := dataStore.EnsureGenres(ctx, validate.GenreNames()); err != nil {
		return fmt.Errorf("bootstrap genres: %w", err)
	}

	if !cfg.SeedDemoData {
		return nil
	}
	return seedDemoData(ctx, dataStore)
}

func seedDemoData(ctx context.Context, dataStore *store.Store) error {
	venues := []models.Venue{
		{
			Name:          "The Musical Hop",
			City:          "San Francisco",
			State:         "CA",
			Address:       "1015 Folsom Street",
			Phone:         "123-123-1234",
			Genres:        []string{"Jazz", "Reggae", "Classical", "Folk"},
			SeekingTalent: true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. " +
				"Please call us.",
		},
		{
			Name:    "The Dueling Pianos Bar",
			City:    "New York",
			State:   "NY",
			Address: "335 Delancey Street",
			Phone:   "914-003-1132",
			Genres:  []string{"Classical", "R&B", "Hip-Hop"},
		},
		{
			Name:    "Park Square Live Music & Coffee",
			City:    "San Francisco",
			State:   "CA",
			Address: "34 Whiskey Moore Ave",
			Phone:   "415-000-1234",
			Genres:  []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		},
	}

	artists := []models.Artist{
		{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Genres:             []string{"Rock n Roll"},
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:   "Matt Quevedo",
			City:   "New York",
			State:  "NY",
			Phone:  "300-400-5000",
			Genres: []string{"Jazz"},
		},
		{
			Name:   "The Wild Sax Band",
			City:   "San Francisco",
			State:  "CA",
			Phone:  "432-325-5432",
			Genres: []string{"Jazz", "Classical"},
		},
	}

	venueIDs := make([]int64, 0, len(venues))
	for i := range venues {
		created, err := dataStore.CreateVenue(ctx, &venues[i])
		if err != nil {
			if errors.Is(err, store.ErrDuplicateVenue) {
				// Already seeded on a previous run.
				return nil
			}
			return fmt.Errorf("seed venue %q: %w", venues[i].Name, err)
		}
		venueIDs = append(venueIDs, created.ID)
	}

	artistIDs := make([]int64, 0, len(artists))
	for i := range artists {
		created, err := dataStore.CreateArtist(ctx, &artists[i])
		if err != nil {
			if errors.Is(err, store.ErrDuplicateArtist) {
				return nil
			}
			return fmt.Errorf("seed artist %q: %w", artists[i].Name, err)
		}
		artistIDs = append(artistIDs, created.ID)
	}

	now := time.Now().UTC()
	seedShows := []struct {
		artist int
		venue  int
		start  time.Time
	}{
		{artist: 0, venue: 0, start: now.AddDate(0, -3, 0)},
		{artist: 1, venue: 2, start: now.AddDate(0, -1, 0)},
		{artist: 2, venue: 2, start: now.AddDate(0, 1, 0)},
		{artist: 2, venue: 1, start: now.AddDate(0, 2, 0)},
	}

	for _, s := range seedShows {
		show := &models.Show{
			ArtistID:  artistIDs[s.artist],
			VenueID:   venueIDs[s.venue],
			StartTime: s.start,
		}
		if _, err := dataStore.CreateShow(ctx, show); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	logging.Info("demo data seeded")
	return nil
}
