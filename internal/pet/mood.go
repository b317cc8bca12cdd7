package pet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/model"
)

// applyMood sets the mood and grants experience: 2 for positive moods, else 1.
func applyMood(s *model.PetState, m model.Mood) {
	s.Mood = m
	if m.Positive() {
		s.Exp += 2
	} else {
		s.Exp++
	}
	s.Level = model.LevelFor(s.Exp)
}

// ApplyMood sets the pet's mood directly, as the mood demo does, and persists.
func (p *Pet) ApplyMood(ctx context.Context, m model.Mood) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidMood, m)
	}
	err := p.mutate(ctx, "apply mood", func(s *model.PetState) bool {
		applyMood(s, m)
		return true
	})
	if err != nil {
		return err
	}
	p.logger.Debug("mood applied", zap.String("mood", string(m)))
	return nil
}
