// Package validate rejects malformed input before it reaches persistence.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Error marks a field-level validation failure. The HTTP layer maps it to
// a 422 response.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Errorf builds a validation Error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// validStates holds the 50 US state codes plus DC.
var validStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "DC": {}, "FL": {},
	"GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {},
	"MD": {}, "MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {},
	"NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {},
	"SC": {}, "SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
}

// validGenres is the fixed 19-value genre vocabulary.
var validGenres = map[string]struct{}{
	"Alternative": {}, "Blues": {}, "Classical": {}, "Country": {}, "Electronic": {},
	"Folk": {}, "Funk": {}, "Hip-Hop": {}, "Heavy Metal": {}, "Instrumental": {},
	"Jazz": {}, "Musical Theatre": {}, "Pop": {}, "Punk": {}, "R&B": {},
	"Reggae": {}, "Rock n Roll": {}, "Soul": {}, "Other": {},
}

// GenreNames returns the full genre vocabulary in sorted order.
func GenreNames() []string {
	names := make([]string, 0, len(validGenres))
	for name := range validGenres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StateCode uppercases the input and verifies it is a known US state or
// DC code.
func StateCode(state string) (string, error) {
	state = strings.ToUpper(state)
	if _, ok := validStates[state]; !ok {
		return "", Errorf("invalid state code: %s", state)
	}
	return state, nil
}

// Phone verifies the NNN-NNN-NNNN format. Empty input is valid since the
// field is optional.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return Errorf("phone must be in format XXX-XXX-XXXX")
	}
	return nil
}

// Genres verifies the list is non-empty and every entry is in the fixed
// vocabulary. Order is preserved and duplicates are not collapsed.
func Genres(genres []string) ([]string, error) {
	if len(genres) == 0 {
		return nil, Errorf("at least one genre is required")
	}
	var invalid []string
	for _, g := range genres {
		if _, ok := validGenres[g]; !ok {
			invalid = append(invalid, g)
		}
	}
	if len(invalid) > 0 {
		return nil, Errorf("invalid genres: %s", strings.Join(invalid, ", "))
	}
	return genres, nil
}

// URL verifies the value parses as an absolute http or https URL. Empty
// input is valid since link fields are optional.
func URL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf("%s must be a valid http or https URL", field)
	}
	return nil
}

// Name verifies a required name field and its length bound.
func Name(name string) error {
	if name == "" {
		return Errorf("name is required")
	}
	if len(name) > 255 {
		return Errorf("name must be at most 255 characters")
	}
	return nil
}

// City verifies a required city field and its length bound.
func City(city string) error {
	if city == "" {
		return Errorf("city is required")
	}
	if len(city) > 120 {
		return Errorf("city must be at most 120 characters")
	}
	return nil
}

// Address verifies the optional address length bound.
func Address(address string) error {
	if len(address) > 120 {
		return Errorf("address must be at most 120 characters")
	}
	return nil
}

// SeekingDescription verifies the optional description length bound.
func SeekingDescription(desc string) error {
	if len(desc) > 500 {
		return Errorf("seeking description must be at most 500 characters")
	}
	return nil
}
