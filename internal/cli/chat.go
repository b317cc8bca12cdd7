package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/llm"
	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/pet"
	"github.com/rcliao/agent-pet/internal/search"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the pet",
		Long: `Send one message and print the pet's reply. Without arguments, read messages
from stdin one per line until EOF.

Replies need DEEPSEEK_API_KEY. Messages about dates or news are searched first
when SERPAPI_API_KEY is set.`,
		Run: runChat,
	}

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	s := openSession(ctx)
	defer s.Close()

	gen, err := llm.New(llm.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		MaxRetries: cfg.LLMRetries,
		Timeout:    cfg.LLMTimeout,
		Logger:     logger,
	})
	if err != nil {
		exitErr("chat", fmt.Errorf("%w (set DEEPSEEK_API_KEY)", err))
	}
	searcher := newSearcher()

	if len(args) > 0 {
		chatOnce(ctx, s, strings.Join(args, " "), gen, searcher)
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		if !jsonOutput() {
			fmt.Fprint(os.Stderr, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		chatOnce(ctx, s, line, gen, searcher)
	}
	if err := sc.Err(); err != nil {
		exitErr("read stdin", err)
	}
}

func newSearcher() *search.SerpAPI {
	return &search.SerpAPI{
		APIKey:   cfg.SerpAPIKey,
		Endpoint: cfg.SerpAPIEndpoint,
		Logger:   logger,
	}
}

// chatOnce runs one turn. A failed turn prints a line in the pet's voice and
// leaves the pet and the transcript unchanged.
func chatOnce(ctx context.Context, s *session, text string, gen pet.Generator, searcher pet.Searcher) {
	res, err := s.pet.Chat(ctx, text, gen, searcher)
	if errors.Is(err, pet.ErrEmptyMessage) {
		return
	}
	if err != nil {
		logger.Error("chat turn failed", zap.Error(err))
		name := s.pet.Snapshot().Name
		if jsonOutput() {
			printJSON(map[string]string{"error": err.Error()})
			return
		}
		fmt.Printf("%s: %s有点累了，等一下再聊好不好～\n", name, name)
		return
	}

	s.record(
		model.Turn{Role: model.RoleUser, Content: text},
		model.Turn{Role: model.RolePet, Content: res.Reply},
	)

	if jsonOutput() {
		printJSON(res)
		return
	}
	fmt.Printf("%s: %s\n", s.pet.Snapshot().Name, res.Reply)
}
