package leaderboardhandlers

import (
	"errors"
	"fmt"

	scoreevents "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain/events"
	tournamentdb "github.com/Black-And-White-Club/majors-pool/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/majors-pool/pkg/eventbus"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleScoresApplied recomputes standings for the tournament named in the
// event. A malformed payload or a deleted tournament is acknowledged and
// dropped; any other failure is returned so the router retries.
func (h *LeaderboardHandlers) HandleScoresApplied(msg *message.Message) error {
	ctx, span := h.tracer.Start(msg.Context(), "LeaderboardHandlers.HandleScoresApplied")
	defer span.End()

	payload, err := eventbus.Decode[scoreevents.ScoresAppliedPayloadV1](msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Dropping malformed scores applied event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil
	}

	if err := h.service.RecordStandings(ctx, payload.TournamentKey); err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			h.logger.WarnContext(ctx, "Scores applied for unknown tournament",
				attr.TournamentKey(payload.TournamentKey),
			)
			return nil
		}
		return fmt.Errorf("failed to record standings for %s: %w", payload.TournamentKey, err)
	}
	return nil
}
