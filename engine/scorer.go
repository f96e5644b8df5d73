package engine

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/events"
	"github.com/lixenwraith/slingshot/physics"
)

// Scorer awards points for every box-ground pair in a collision-start batch
// Pairs are not deduplicated across steps: a box that starts touching the ground again scores again
type Scorer struct {
	increment int
	log       zerolog.Logger
}

// NewScorer creates a scorer awarding increment per qualifying pair
func NewScorer(increment int, logger zerolog.Logger) *Scorer {
	return &Scorer{
		increment: increment,
		log:       logger.With().Str("component", "scorer").Logger(),
	}
}

// OnCollisionStart applies the scoring rule to one batch and returns the points awarded
func (sc *Scorer) OnCollisionStart(s *Session, pairs []physics.Pair) int {
	if s.Closed() {
		return 0
	}
	hits := 0
	for _, p := range pairs {
		if p.Is(physics.LabelBox, physics.LabelGround) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	points := hits * sc.increment
	s.addScore(points)
	sc.log.Debug().Int("hits", hits).Int("score", s.score).Msg("box grounded")
	return points
}

// HandleEvent routes collision-start batches to OnCollisionStart
func (sc *Scorer) HandleEvent(s *Session, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.CollisionStartPayload); ok {
		sc.OnCollisionStart(s, p.Pairs)
	}
}

// EventTypes implements events.Handler
func (sc *Scorer) EventTypes() []events.EventType {
	return []events.EventType{events.EventCollisionStart}
}
