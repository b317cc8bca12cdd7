package pet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/emotion"
	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/store"
)

// ErrEmptyMessage is returned by Chat for blank input.
var ErrEmptyMessage = errors.New("empty message")

// Generator produces the pet's reply from a system prompt and the user message.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Searcher returns a short snippet of fresh information, or "" on any failure.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// ChatResult describes one completed chat turn.
type ChatResult struct {
	Mood     model.Mood `json:"mood"`
	Reply    string     `json:"reply"`
	Searched bool       `json:"searched"`
	Prompt   string     `json:"-"`
}

// Chat runs one conversation turn: classify the text, ground the prompt in a
// search when the text asks for it, generate a reply, then commit the mood
// change and the exchange in a single save. If generation fails nothing is
// committed. searcher may be nil.
func (p *Pet) Chat(ctx context.Context, text string, gen Generator, searcher Searcher) (*ChatResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if gen == nil {
		return nil, errors.New("chat: nil generator")
	}

	res := p.Preview(ctx, text, searcher)
	mood := res.Mood

	reply, err := gen.Generate(ctx, res.Prompt, text)
	if err != nil {
		p.logger.Warn("generate reply", zap.Error(err))
		return nil, fmt.Errorf("chat: generate reply: %w", err)
	}
	res.Reply = reply

	err = p.mutate(ctx, "chat", func(s *model.PetState) bool {
		applyMood(s, mood)
		remember(s, text, reply)
		return true
	})
	if err != nil {
		return nil, err
	}

	p.journal(ctx, text, reply)
	p.logger.Debug("chat turn",
		zap.String("mood", string(mood)),
		zap.Bool("searched", res.Searched),
		zap.Int("reply_len", len(reply)))
	return res, nil
}

// Preview classifies text, runs the search it asks for and returns the prompt
// a chat turn would send, without generating or committing anything.
func (p *Pet) Preview(ctx context.Context, text string, searcher Searcher) *ChatResult {
	mood := emotion.Classify(text)
	res := &ChatResult{Mood: mood}

	var snippet string
	if searcher != nil && emotion.NeedsSearch(text) {
		snippet = searcher.Search(ctx, text)
	}
	res.Searched = snippet != ""

	// the prompt reflects the mood this turn will leave the pet in
	p.mu.RLock()
	draft := p.state.Clone()
	p.mu.RUnlock()
	applyMood(draft, mood)
	res.Prompt = BuildPrompt(draft, p.now().Format(DateLayout), snippet)
	return res
}

func (p *Pet) journal(ctx context.Context, userText, reply string) {
	j, ok := p.store.(store.Journal)
	if !ok {
		return
	}
	err := j.AppendTurns(ctx, []model.Turn{
		{Role: model.RoleUser, Content: userText},
		{Role: model.RolePet, Content: reply},
	})
	if err != nil {
		p.logger.Warn("journal turns", zap.Error(err))
	}
}
