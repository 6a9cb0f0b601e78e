package shows

import (
	"context"
	"errors"
	"testing"
	"time"

	"showbook/internal/models"
	"showbook/internal/validate"
)

type stubStore struct {
	createdShow *models.Show
	createErr   error

	upcomingNow   time.Time
	upcomingLimit int
	overviewNow   time.Time

	listResponse []models.ShowWithDetails
}

func (s *stubStore) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	s.createdShow = show
	if s.createErr != nil {
		return nil, s.createErr
	}
	show.ID = 1
	return show, nil
}

func (s *stubStore) GetShow(ctx context.Context, id int64) (*models.ShowWithDetails, error) {
	return &models.ShowWithDetails{}, nil
}

func (s *stubStore) ListShows(ctx context.Context) ([]models.ShowWithDetails, error) {
	return s.listResponse, nil
}

func (s *stubStore) ListUpcomingShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error) {
	s.upcomingNow = now
	s.upcomingLimit = limit
	return nil, nil
}

func (s *stubStore) ListPastShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error) {
	return nil, nil
}

func (s *stubStore) DeleteShow(ctx context.Context, id int64) error {
	return nil
}

func (s *stubStore) ShowStatistics(ctx context.Context, now time.Time) (*models.ShowStats, error) {
	return &models.ShowStats{}, nil
}

func (s *stubStore) DirectoryStatistics(ctx context.Context, now time.Time) (*models.DirectoryStats, error) {
	s.overviewNow = now
	return &models.DirectoryStats{VenueCount: 3, ArtistCount: 3}, nil
}

func fixedService(store Store, now time.Time) Service {
	return &service{store: store, now: func() time.Time { return now }}
}

func TestCreateRequiresFutureStartTime(t *testing.T) {
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		wantErr bool
	}{
		{name: "future", start: now.Add(time.Hour)},
		{name: "one nanosecond ahead", start: now.Add(time.Nanosecond)},
		{name: "past", start: now.Add(-time.Hour), wantErr: true},
		{name: "exactly now", start: now, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{}
			svc := fixedService(store, now)

			_, err := svc.Create(context.Background(), 4, 2, tc.start)
			if tc.wantErr {
				var vErr *validate.Error
				if !errors.As(err, &vErr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if store.createdShow != nil {
					t.Fatalf("store should not be reached for non-future start time")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create error: %v", err)
			}
			if store.createdShow.ArtistID != 4 || store.createdShow.VenueID != 2 {
				t.Fatalf("unexpected show passed to store: %+v", store.createdShow)
			}
		})
	}
}

func TestListUpcomingRejectsNegativeLimit(t *testing.T) {
	store := &stubStore{}
	svc := New(store)

	_, err := svc.ListUpcoming(context.Background(), -1)
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListStampsShowStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)
	store := &stubStore{
		listResponse: []models.ShowWithDetails{
			{Show: models.Show{ID: 1, StartTime: now.Add(time.Hour)}},
			{Show: models.Show{ID: 2, StartTime: now.Add(-time.Hour)}},
			{Show: models.Show{ID: 3, StartTime: now}},
		},
	}
	svc := fixedService(store, now)

	shows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []models.ShowClass{models.ShowUpcoming, models.ShowPast, models.ShowCurrent}
	for i, w := range want {
		if shows[i].Status != w {
			t.Fatalf("show %d: expected status %q, got %q", shows[i].ID, w, shows[i].Status)
		}
	}
}

func TestOverviewPassesClock(t *testing.T) {
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)
	store := &stubStore{}
	svc := fixedService(store, now)

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if !store.overviewNow.Equal(now) {
		t.Fatalf("expected injected clock, got %v", store.overviewNow)
	}
	if stats.VenueCount != 3 || stats.ArtistCount != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestListUpcomingPassesClockAndLimit(t *testing.T) {
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)
	store := &stubStore{}
	svc := fixedService(store, now)

	if _, err := svc.ListUpcoming(context.Background(), 5); err != nil {
		t.Fatalf("ListUpcoming error: %v", err)
	}
	if !store.upcomingNow.Equal(now) {
		t.Fatalf("expected injected clock, got %v", store.upcomingNow)
	}
	if store.upcomingLimit != 5 {
		t.Fatalf("expected limit 5, got %d", store.upcomingLimit)
	}
}
