package livefeed

import (
	"fmt"
	"strconv"
	"strings"
)

// fallbackTournIDs is used when the schedule lookup cannot find a name.
// Keys are matched by containment in the requested name, in this order, so
// "us open" resolves through "us" before "open".
var fallbackTournIDs = []struct {
	key string
	id  string
}{
	{"masters", "014"},
	{"pga", "003"},
	{"us", "006"},
	{"british", "100"},
	{"open", "100"},
}

// LiveID is a parsed "<name>-<year>" identifier.
type LiveID struct {
	Name string
	Year int
	// TournID is set when the name part is already numeric.
	TournID string
}

// ParseLiveID splits an identifier on its final dash. The trailing segment
// must be a four digit year.
func ParseLiveID(raw string) (LiveID, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	idx := strings.LastIndex(raw, "-")
	if idx <= 0 || idx == len(raw)-1 {
		return LiveID{}, fmt.Errorf("%w: %q", ErrInvalidLiveID, raw)
	}
	name, yearPart := raw[:idx], raw[idx+1:]
	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return LiveID{}, fmt.Errorf("%w: %q", ErrInvalidLiveID, raw)
	}

	id := LiveID{Name: name, Year: year}
	if isDigits(name) {
		id.TournID = name
	}
	return id, nil
}

// SearchName is the name part with dashes read as spaces, as schedule names
// are written ("us-open" → "us open").
func (l LiveID) SearchName() string {
	return strings.ReplaceAll(l.Name, "-", " ")
}

func fallbackTournID(name string) (string, bool) {
	for _, f := range fallbackTournIDs {
		if strings.Contains(name, f.key) {
			return f.id, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
