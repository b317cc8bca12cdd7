package pet

import (
	"context"
	"strings"
	"unicode"

	"github.com/rcliao/agent-pet/internal/model"
)

const (
	// PromptWindow is how many recent turns are rendered into a prompt.
	PromptWindow = 6
	// MaxUserLikes caps long_term_memory.user_likes.
	MaxUserLikes = 20

	maxLikeRunes = 20
)

var likeMarkers = []string{"我喜欢", "我爱"}

// Remember appends an exchange to short-term memory and persists.
func (p *Pet) Remember(ctx context.Context, userText, petText string) error {
	return p.mutate(ctx, "remember", func(s *model.PetState) bool {
		remember(s, userText, petText)
		return true
	})
}

func remember(s *model.PetState, userText, petText string) {
	s.ShortTermMemory = append(s.ShortTermMemory,
		model.Turn{Role: model.RoleUser, Content: userText},
		model.Turn{Role: model.RolePet, Content: petText},
	)
	s.ShortTermMemory = lastTurns(s.ShortTermMemory, model.ShortTermCap)

	for _, like := range extractLikes(userText) {
		s.LongTermMemory.UserLikes = addLike(s.LongTermMemory.UserLikes, like)
	}
}

// lastTurns keeps the most recent n turns in a fresh slice.
func lastTurns(turns []model.Turn, n int) []model.Turn {
	if len(turns) <= n {
		return turns
	}
	out := make([]model.Turn, n)
	copy(out, turns[len(turns)-n:])
	return out
}

// RecentTurns returns up to PromptWindow of the latest turns.
func RecentTurns(s *model.PetState) []model.Turn {
	if len(s.ShortTermMemory) <= PromptWindow {
		return s.ShortTermMemory
	}
	return s.ShortTermMemory[len(s.ShortTermMemory)-PromptWindow:]
}

// extractLikes pulls "我喜欢X" phrases out of text, X ending at punctuation.
func extractLikes(text string) []string {
	var likes []string
	for _, marker := range likeMarkers {
		rest := text
		for {
			i := strings.Index(rest, marker)
			if i < 0 {
				break
			}
			rest = rest[i+len(marker):]
			if like := likePhrase(rest); like != "" {
				likes = append(likes, like)
			}
		}
	}
	return likes
}

func likePhrase(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || n >= maxLikeRunes {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func addLike(likes []string, like string) []string {
	for _, l := range likes {
		if l == like {
			return likes
		}
	}
	likes = append(likes, like)
	if len(likes) > MaxUserLikes {
		likes = likes[len(likes)-MaxUserLikes:]
	}
	return likes
}
