package models

import "time"

// ShowClass is a show's position relative to a reference time.
type ShowClass string

const (
	ShowUpcoming ShowClass = "upcoming"
	ShowPast     ShowClass = "past"
	// ShowCurrent covers a start time exactly equal to the reference
	// time, which counts as neither upcoming nor past.
	ShowCurrent ShowClass = "current"
)

// ClassifyShow classifies a start time against now. Upcoming means
// strictly after now, past strictly before; exact equality is neither.
func ClassifyShow(start, now time.Time) ShowClass {
	switch {
	case start.After(now):
		return ShowUpcoming
	case start.Before(now):
		return ShowPast
	default:
		return ShowCurrent
	}
}

// Venue represents a music venue that can host shows
type Venue struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	ImageLink          string    `json:"image_link,omitempty"`
	FacebookLink       string    `json:"facebook_link,omitempty"`
	WebsiteLink        string    `json:"website_link,omitempty"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description,omitempty"`
	Genres             []string  `json:"genres"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Artist represents a performer that can be booked at venues
type Artist struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone,omitempty"`
	ImageLink          string    `json:"image_link,omitempty"`
	FacebookLink       string    `json:"facebook_link,omitempty"`
	WebsiteLink        string    `json:"website_link,omitempty"`
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description,omitempty"`
	Genres             []string  `json:"genres"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Show links exactly one artist and one venue at a start time
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShowWithDetails includes artist and venue information populated via JOIN
type ShowWithDetails struct {
	Show
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	VenueName       string    `json:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link,omitempty"`
	Status          ShowClass `json:"status,omitempty"`
}

// Genre is a fixed-vocabulary music style tag, many-to-many with
// venues and artists
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VenueUpdate carries a partial venue update. Nil fields are left
// unchanged; a nil Genres slice keeps the existing associations while a
// non-nil slice replaces them entirely.
type VenueUpdate struct {
	Name               *string  `json:"name,omitempty"`
	City               *string  `json:"city,omitempty"`
	State              *string  `json:"state,omitempty"`
	Address            *string  `json:"address,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	ImageLink          *string  `json:"image_link,omitempty"`
	FacebookLink       *string  `json:"facebook_link,omitempty"`
	WebsiteLink        *string  `json:"website_link,omitempty"`
	SeekingTalent      *bool    `json:"seeking_talent,omitempty"`
	SeekingDescription *string  `json:"seeking_description,omitempty"`
	Genres             []string `json:"genres,omitempty"`
}

// ArtistUpdate carries a partial artist update, same semantics as VenueUpdate
type ArtistUpdate struct {
	Name               *string  `json:"name,omitempty"`
	City               *string  `json:"city,omitempty"`
	State              *string  `json:"state,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	ImageLink          *string  `json:"image_link,omitempty"`
	FacebookLink       *string  `json:"facebook_link,omitempty"`
	WebsiteLink        *string  `json:"website_link,omitempty"`
	SeekingVenue       *bool    `json:"seeking_venue,omitempty"`
	SeekingDescription *string  `json:"seeking_description,omitempty"`
	Genres             []string `json:"genres,omitempty"`
}

// ShowSummary is the compact show representation embedded in venue and
// artist detail responses
type ShowSummary struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
}

// VenueWithShows is a venue detail response with its shows split into
// upcoming and past at query time
type VenueWithShows struct {
	Venue
	UpcomingShows    []ShowSummary `json:"upcoming_shows"`
	PastShows        []ShowSummary `json:"past_shows"`
	NumUpcomingShows int           `json:"num_upcoming_shows"`
	NumPastShows     int           `json:"num_past_shows"`
}

// ArtistWithShows is an artist detail response with its shows split into
// upcoming and past at query time
type ArtistWithShows struct {
	Artist
	UpcomingShows    []ShowSummary `json:"upcoming_shows"`
	PastShows        []ShowSummary `json:"past_shows"`
	NumUpcomingShows int           `json:"num_upcoming_shows"`
	NumPastShows     int           `json:"num_past_shows"`
}

// VenueListItem is the index-page representation of a venue
type VenueListItem struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistListItem is the index-page representation of an artist
type ArtistListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Area is a distinct (city, state) pair with the venues it contains
type Area struct {
	City       string          `json:"city"`
	State      string          `json:"state"`
	VenueCount int             `json:"venue_count"`
	Venues     []VenueListItem `json:"venues"`
}

// GenrePopularity counts how many artists and venues carry a genre
type GenrePopularity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ArtistCount int    `json:"artist_count"`
	VenueCount  int    `json:"venue_count"`
	TotalCount  int    `json:"total_count"`
}

// ShowStats aggregates show counts. Upcoming counts start_time > now and
// Past counts start_time < now; a show starting exactly now is in neither.
type ShowStats struct {
	Total    int `json:"total_shows"`
	Upcoming int `json:"upcoming_shows"`
	Past     int `json:"past_shows"`
}

// DirectoryStats is the dashboard summary across all entities
type DirectoryStats struct {
	VenueCount  int       `json:"venue_count"`
	ArtistCount int       `json:"artist_count"`
	Shows       ShowStats `json:"shows"`
}
