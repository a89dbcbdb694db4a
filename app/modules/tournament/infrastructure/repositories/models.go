package tournamentdb

import (
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/pooltypes"
	"github.com/uptrace/bun"
)

// Tournament is one major with its roster and tier split.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	Key         string             `bun:"key,pk"`
	Name        string             `bun:"name,notnull"`
	LogoURL     *string            `bun:"logo_url"`
	Par         int                `bun:"par,notnull"`
	Golfers     []pooltypes.Golfer `bun:"golfers,type:jsonb,notnull"`
	Tiers       pooltypes.Tiers    `bun:"tiers,type:jsonb,notnull"`
	LiveID      *string            `bun:"live_id"`
	PicksLockAt *time.Time         `bun:"picks_lock_at"`
	CreatedAt   time.Time          `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time          `bun:"updated_at,notnull,default:current_timestamp"`
}
