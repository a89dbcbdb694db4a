package tournamentdomain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var (
	// ErrInvalidTimezone is returned for a zone outside the supported set.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrLockTimeInPast is returned when the parsed lock time is not in the future.
	ErrLockTimeInPast = errors.New("lock time must be in the future")
	// ErrUnrecognizedTime is returned when no parser understands the input.
	ErrUnrecognizedTime = errors.New("could not recognize time")
)

// timezones maps the US abbreviations admins type to IANA zones. Majors are
// scheduled in US time even when played abroad.
var timezones = map[string]string{
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"UTC": "UTC",
	"GMT": "Europe/London",
	"BST": "Europe/London",
}

var compactClock = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// ResolveTimezone accepts an abbreviation or one of the supported IANA names.
func ResolveTimezone(input string) (*time.Location, error) {
	upper := strings.ToUpper(strings.TrimSpace(input))
	name, ok := timezones[upper]
	if !ok {
		for _, full := range timezones {
			if strings.ToUpper(full) == upper {
				name, ok = full, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, input)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, input)
	}
	return loc, nil
}

// ParseLockTime turns admin input such as "2026-04-09 07:45", "tomorrow 5 pm"
// or "7pm" into the instant team submissions close. The result must be after now.
func ParseLockTime(input, timezone string, now time.Time) (time.Time, error) {
	loc, err := ResolveTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}

	text := strings.ToLower(strings.TrimSpace(input))
	text = strings.ReplaceAll(text, "today ", "today at ")
	text = compactClock.ReplaceAllString(text, "$1:$2 $3")

	nowInLoc := now.In(loc)

	parsed, err := time.ParseInLocation("2006-01-02 15:04", text, loc)
	if err != nil {
		w := when.New(nil)
		w.Add(en.All...)

		r, werr := w.Parse(text, nowInLoc)
		if werr != nil || r == nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, input)
		}
		parsed = r.Time.In(loc)
	}

	parsed = parsed.Truncate(time.Minute)
	if !parsed.After(nowInLoc.Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("%w (parsed %s)", ErrLockTimeInPast, parsed.Format(time.RFC3339))
	}
	return parsed.UTC(), nil
}

// Locked reports whether submissions are closed at now.
func Locked(lockAt *time.Time, now time.Time) bool {
	return lockAt != nil && !now.Before(*lockAt)
}
