package server

import (
	"github.com/rs/zerolog"

	"github.com/Tyrowin/moodsync/internal/metrics"
)

// Router fans events out to the members of a room.
type Router struct {
	dir *Directory
	log zerolog.Logger
}

// NewRouter creates a Router over dir.
func NewRouter(dir *Directory, log zerolog.Logger) *Router {
	return &Router{dir: dir, log: log}
}

// Emit delivers event/payload to every member of roomID except exclude (pass
// "" to include everyone) and returns the number of successful deliveries.
// A member that cannot take the frame is skipped; the rest still receive it.
// Emits for the same room run one at a time, so each member sees them in call
// order. Emitting to a missing room is a no-op.
func (rt *Router) Emit(roomID, event string, payload any, exclude string) int {
	frame, err := encodeEnvelope(event, payload)
	if err != nil {
		rt.log.Error().Err(err).Str("event", event).Msg("failed to encode broadcast")
		return 0
	}

	delivered := 0
	found := rt.dir.withRoom(roomID, func(r *room) {
		for id, member := range r.members {
			if id == exclude {
				continue
			}
			if member.enqueue(frame) {
				delivered++
				continue
			}
			metrics.DeliveryFailures.WithLabelValues(rt.dir.name).Inc()
			rt.log.Debug().
				Str("room", roomID).
				Str("conn", id).
				Str("event", event).
				Msg("skipping unreachable member")
		}
	})
	if !found {
		rt.log.Debug().Str("room", roomID).Str("event", event).Msg("emit to missing room ignored")
		return 0
	}

	metrics.MessagesRelayed.WithLabelValues(rt.dir.name, event).Add(float64(delivered))
	return delivered
}

// sendTo delivers one frame to a single client.
func sendTo(c *Client, event string, payload any, log zerolog.Logger) bool {
	frame, err := encodeEnvelope(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to encode event")
		return false
	}
	if !c.enqueue(frame) {
		metrics.DeliveryFailures.WithLabelValues("direct").Inc()
		return false
	}
	return true
}
