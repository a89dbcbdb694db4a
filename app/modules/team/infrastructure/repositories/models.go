package teamdb

import (
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Team is a submitted entry: one golfer from each tier.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid"`
	TournamentKey string          `bun:"tournament_key,notnull"`
	Name          string          `bun:"name,notnull"`
	Picks         pooltypes.Picks `bun:"picks,type:jsonb,notnull"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// Value converts the row into the value type used by the domain layer.
func (t *Team) Value() pooltypes.Team {
	return pooltypes.Team{
		ID:    t.ID.String(),
		Name:  t.Name,
		Picks: t.Picks,
	}
}

// Values converts rows into domain teams, preserving order.
func Values(rows []Team) []pooltypes.Team {
	out := make([]pooltypes.Team, len(rows))
	for i := range rows {
		out[i] = rows[i].Value()
	}
	return out
}
