package validate

import (
	"strings"
	"testing"
)

func TestStateCode(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		want    string
		wantErr bool
	}{
		{name: "valid uppercase", state: "CA", want: "CA"},
		{name: "lowercase normalized", state: "ny", want: "NY"},
		{name: "district of columbia", state: "DC", want: "DC"},
		{name: "unknown code", state: "ZZ", wantErr: true},
		{name: "empty", state: "", wantErr: true},
		{name: "full name", state: "California", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := StateCode(tc.state)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "valid", phone: "123-456-7890"},
		{name: "empty allowed", phone: ""},
		{name: "no dashes", phone: "1234567890", wantErr: true},
		{name: "too short", phone: "123-456-789", wantErr: true},
		{name: "letters", phone: "abc-def-ghij", wantErr: true},
		{name: "parentheses", phone: "(123) 456-7890", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := Phone(tc.phone)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestGenres(t *testing.T) {
	tests := []struct {
		name    string
		genres  []string
		wantErr bool
	}{
		{name: "single valid", genres: []string{"Jazz"}},
		{name: "multiple valid", genres: []string{"Rock n Roll", "Hip-Hop", "R&B"}},
		{name: "empty list", genres: nil, wantErr: true},
		{name: "unknown genre", genres: []string{"Jazz", "Polka"}, wantErr: true},
		{name: "case sensitive", genres: []string{"jazz"}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Genres(tc.genres)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
			if len(got) != len(tc.genres) {
				t.Fatalf("expected %d genres, got %d", len(tc.genres), len(got))
			}
			for i := range got {
				if got[i] != tc.genres[i] {
					t.Fatalf("expected order preserved, got %v", got)
				}
			}
		})
	}
}

func TestGenreNamesCoversAllValid(t *testing.T) {
	names := GenreNames()
	if len(names) != 19 {
		t.Fatalf("expected 19 genres, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("expected sorted names, got %v", names)
		}
	}
	if _, err := Genres(names); err != nil {
		t.Fatalf("canonical names should validate, got %v", err)
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid https", raw: "https://themusicalhop.com"},
		{name: "valid http", raw: "http://example.com/page"},
		{name: "empty allowed", raw: ""},
		{name: "missing scheme", raw: "themusicalhop.com", wantErr: true},
		{name: "wrong scheme", raw: "ftp://example.com", wantErr: true},
		{name: "no host", raw: "https://", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := URL("website_link", tc.raw)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestName(t *testing.T) {
	if err := Name(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := Name(strings.Repeat("x", 256)); err == nil {
		t.Fatalf("expected error for overlong name")
	}
	if err := Name("The Musical Hop"); err != nil {
		t.Fatalf("expected nil error but got %v", err)
	}
}
