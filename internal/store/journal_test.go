package store

import (
	"context"
	"testing"

	"github.com/rcliao/agent-pet/internal/model"
)

func TestJournalAppendAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.AppendTurns(ctx, []model.Turn{
		{Role: model.RoleUser, Content: "我喜欢小鱼干"},
		{Role: model.RolePet, Content: "喵～我也喜欢"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	s.AppendTurns(ctx, []model.Turn{
		{Role: model.RoleUser, Content: "今天下雨了"},
		{Role: model.RolePet, Content: "那就在家睡觉吧"},
	})

	all, err := s.SearchTurns(ctx, "", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(all))
	}
	for _, e := range all {
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Errorf("expected id and timestamp, got %+v", e)
		}
	}

	hits, _ := s.SearchTurns(ctx, "喜欢", 10)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits for 喜欢, got %d", len(hits))
	}
	// newest first within an exchange
	if hits[0].Role != model.RolePet || hits[1].Role != model.RoleUser {
		t.Errorf("expected pet turn before user turn, got %s then %s", hits[0].Role, hits[1].Role)
	}

	limited, _ := s.SearchTurns(ctx, "", 1)
	if len(limited) != 1 {
		t.Errorf("expected limit 1, got %d", len(limited))
	}
}

func TestJournalAppendEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendTurns(context.Background(), nil); err != nil {
		t.Errorf("expected no error for empty append, got %v", err)
	}
	st, _ := s.Stats(context.Background())
	if st.JournalTurns != 0 {
		t.Errorf("expected empty journal, got %d", st.JournalTurns)
	}
}

func TestSQLiteImplementsJournal(t *testing.T) {
	var gw Gateway = newTestStore(t)
	if _, ok := gw.(Journal); !ok {
		t.Error("SQLiteStore should implement Journal")
	}
}
