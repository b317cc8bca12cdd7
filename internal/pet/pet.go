// Package pet owns the pet state and the rules that change it: mood and
// experience, feeding, conversation memory and prompt construction.
//
// A Pet is safe for concurrent use. Every mutation runs as one critical
// section that applies the change to a copy, persists the copy, and only then
// makes it current, so a failed save leaves the previous state in place.
package pet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/store"
)

// Options configures a Pet.
type Options struct {
	Name    string
	Species model.Species
	Logger  *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Pet is an explicitly owned pet state bound to a persistence gateway.
type Pet struct {
	mu     sync.RWMutex
	state  *model.PetState
	store  store.Gateway
	logger *zap.Logger
	now    func() time.Time

	defaultSpecies model.Species
}

// New builds a pet from defaults and overlays whatever the gateway has stored.
// A missing or unreadable record is not an error; the defaults stand.
func New(ctx context.Context, gw store.Gateway, opts Options) (*Pet, error) {
	if gw == nil {
		return nil, errors.New("pet: nil gateway")
	}
	sp := opts.Species
	if sp == "" {
		sp = model.SpeciesCat
	}
	if !sp.Valid() {
		return nil, fmt.Errorf("pet: %w: %q", model.ErrUnknownSpecies, sp)
	}

	p := &Pet{
		state:          model.NewPetState(opts.Name, sp),
		store:          gw,
		logger:         opts.Logger,
		now:            opts.Now,
		defaultSpecies: sp,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.now == nil {
		p.now = time.Now
	}

	err := gw.Load(ctx, p.state)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p.logger.Debug("no stored pet state, using defaults")
	case err != nil:
		p.logger.Warn("could not load pet state, using defaults", zap.Error(err))
	}
	p.normalize()

	return p, nil
}

// normalize repairs derived and out-of-range fields after a load.
func (p *Pet) normalize() {
	s := p.state
	if s.Name == "" {
		s.Name = model.DefaultName
	}
	if !s.Species.Valid() {
		p.logger.Warn("stored species unknown, using default",
			zap.String("stored", string(s.Species)),
			zap.String("default", string(p.defaultSpecies)))
		s.Species = p.defaultSpecies
	}
	s.Personality = s.Species.Personality()
	if !s.Mood.Valid() {
		p.logger.Warn("stored mood invalid, resetting to neutral", zap.String("stored", string(s.Mood)))
		s.Mood = model.MoodNeutral
	}
	if s.Exp < 0 {
		s.Exp = 0
	}
	s.Level = model.LevelFor(s.Exp)
	s.MaxFeed = model.MaxFeed
	if s.FeedCount < 0 {
		s.FeedCount = 0
	}
	if s.ShortTermMemory == nil {
		s.ShortTermMemory = []model.Turn{}
	}
	s.ShortTermMemory = lastTurns(s.ShortTermMemory, model.ShortTermCap)
	if s.LongTermMemory.UserLikes == nil {
		s.LongTermMemory.UserLikes = []string{}
	}
	if s.LongTermMemory.PetHabits == nil {
		s.LongTermMemory.PetHabits = map[string]string{}
	}
}

// Snapshot returns a copy of the current state.
func (p *Pet) Snapshot() *model.PetState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Clone()
}

// SetSpecies changes the species and re-derives the personality. The change
// is persisted with the next mutation.
func (p *Pet) SetSpecies(sp model.Species) error {
	if !sp.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownSpecies, sp)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Species = sp
	p.state.Personality = sp.Personality()
	return nil
}

// Status is the one-line summary shown next to the pet.
func (p *Pet) Status() string {
	s := p.Snapshot()
	return fmt.Sprintf("%s(%s) | 性格:%s | 心情:%s | 等级:%d | 经验:%d | 喂食:%d/%d",
		s.Name, s.Species.Label(), s.Personality, s.Mood.Label(), s.Level, s.Exp,
		s.FeedCount, s.MaxFeed)
}

// mutate runs fn on a copy of the state. When fn reports a change the copy is
// saved and becomes current; a save error leaves the current state untouched.
func (p *Pet) mutate(ctx context.Context, op string, fn func(s *model.PetState) bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.state.Clone()
	if !fn(next) {
		return nil
	}
	if err := p.store.Save(ctx, next); err != nil {
		p.logger.Error("persist pet state", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: save state: %w", op, err)
	}
	p.state = next
	return nil
}
