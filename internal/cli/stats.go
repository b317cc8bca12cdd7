package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	gw, err := store.Open(cfg.StoreDriver, cfg.ResolvedStorePath(), logger)
	if err != nil {
		exitErr("open store", err)
	}
	defer gw.Close()

	s, ok := gw.(*store.SQLiteStore)
	if !ok {
		exitErr("stats", errors.New("stats are only kept by the sqlite driver"))
	}

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	if jsonOutput() {
		printJSON(stats)
		return
	}
	fmt.Printf("db: %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
	if stats.Saved {
		fmt.Printf("state: version %d, rev %s, saved %s\n", stats.Version, stats.Rev, stats.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("state: not saved yet")
	}
	fmt.Printf("journal: %d turns\n", stats.JournalTurns)
}
