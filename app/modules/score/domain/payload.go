package scoredomain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt decodes the integer shapes the live feed mixes: JSON numbers,
// numeric strings ("-3", "+2") and the {"$numberInt": "72"} envelope.
// Anything else, including null, decodes as not Valid without an error.
type FlexInt struct {
	Value int
	Valid bool
}

// NewFlexInt returns a valid FlexInt.
func NewFlexInt(v int) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = FlexInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		n.setString(s)
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(data, &env); err != nil {
			return nil
		}
		for _, key := range []string{"$numberInt", "$numberLong", "$numberDouble"} {
			if raw, ok := env[key]; ok {
				return n.UnmarshalJSON(raw)
			}
		}
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		n.setFloat(f)
	}
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// Ptr returns the value as a pointer, nil when not Valid.
func (n FlexInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n *FlexInt) setString(s string) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		*n = NewFlexInt(v)
		return
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n.setFloat(f)
	}
}

func (n *FlexInt) setFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	*n = NewFlexInt(int(math.Trunc(f)))
}

// LeaderboardPayload is the live feed's leaderboard document.
type LeaderboardPayload struct {
	TournamentName   string           `json:"tournamentName"`
	TournamentStatus string           `json:"tournamentStatus"`
	CurrentRound     FlexInt          `json:"currentRound"`
	Rows             []LeaderboardRow `json:"leaderboardRows"`
}

// LeaderboardRow is one player line of the feed.
type LeaderboardRow struct {
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Status            string       `json:"status"`
	Rounds            []RoundEntry `json:"rounds"`
	CurrentHole       FlexInt      `json:"currentHole"`
	CurrentRoundScore FlexInt      `json:"currentRoundScore"`
	RoundComplete     bool         `json:"roundComplete"`
}

// RoundEntry is one round of a feed row. A missing RoundID means round 1.
type RoundEntry struct {
	RoundID FlexInt `json:"roundId"`
	Strokes FlexInt `json:"strokes"`
}

// FullName joins the feed's name parts.
func (r LeaderboardRow) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}
