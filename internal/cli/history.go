package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Search past conversation turns",
		Long:  "Search every archived chat turn, newest first. Without a query, list the latest turns. Requires the sqlite driver.",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s := openSession(cmd.Context())
	defer s.Close()

	j, ok := s.store.(store.Journal)
	if !ok {
		exitErr("history", errors.New("the "+s.cfg.StoreDriver+" driver keeps no history; use --driver sqlite"))
	}

	entries, err := j.SearchTurns(cmd.Context(), query, limit)
	if err != nil {
		exitErr("history", err)
	}

	if jsonOutput() {
		if len(entries) == 0 {
			fmt.Println("[]")
			return
		}
		printJSON(entries)
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %-4s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Role, e.Content)
	}
}
