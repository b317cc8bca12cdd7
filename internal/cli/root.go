// Package cli implements the agent-pet CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/agent-pet/internal/config"
	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/pet"
	"github.com/rcliao/agent-pet/internal/store"
	"github.com/rcliao/agent-pet/internal/transcript"
)

var (
	storePath      string
	driverFlag     string
	speciesFlag    string
	transcriptPath string
	formatFlag     string
	verbose        bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "agent-pet",
	Short: "A virtual pet that chats, eats and remembers",
	Long: `agent-pet keeps a small virtual pet (a cat or a dog) with a mood, experience,
a feeding allowance and a conversation memory. Chat replies come from an
OpenAI-compatible model; questions about dates and news are grounded with a web search.

State is saved after every change. SQLite-backed by default, single binary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		level, _ := zapcore.ParseLevel(cfg.LogLevel)
		if verbose {
			level = zapcore.DebugLevel
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "Store path (default: $PET_STORE_PATH or ~/.agent-pet/pet.db)")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Store driver: sqlite, file or badger (default: $PET_STORE_DRIVER or sqlite)")
	RootCmd.PersistentFlags().StringVar(&speciesFlag, "species", "", "Pet species: cat or dog (default: $PET_SPECIES or cat)")
	RootCmd.PersistentFlags().StringVar(&transcriptPath, "transcript", "", "Chat transcript file (default: $PET_TRANSCRIPT or chat_history.json)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		c.StorePath = storePath
	}
	if driverFlag != "" {
		c.StoreDriver = driverFlag
	}
	if speciesFlag != "" {
		c.Species = speciesFlag
	}
	if transcriptPath != "" {
		c.Transcript = transcriptPath
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// session is an opened store with the pet loaded from it.
type session struct {
	cfg   *config.Config
	store store.Gateway
	pet   *pet.Pet
}

func openSession(ctx context.Context) *session {
	gw, err := store.Open(cfg.StoreDriver, cfg.ResolvedStorePath(), logger)
	if err != nil {
		exitErr("open store", err)
	}

	sp, _ := model.ParseSpecies(cfg.Species)
	p, err := pet.New(ctx, gw, pet.Options{
		Name:    cfg.Name,
		Species: sp,
		Logger:  logger,
	})
	if err != nil {
		gw.Close()
		exitErr("load pet", err)
	}
	// an explicit --species switches the pet, as picking it in a UI would
	if speciesFlag != "" {
		if err := p.SetSpecies(sp); err != nil {
			gw.Close()
			exitErr("set species", err)
		}
	}
	return &session{cfg: cfg, store: gw, pet: p}
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Warn("close store", zap.Error(err))
	}
}

func openTranscript() *transcript.File {
	return transcript.Open(cfg.Transcript)
}

// record appends turns to the transcript. Failures are logged, not fatal.
func (s *session) record(turns ...model.Turn) {
	if err := openTranscript().Append(turns...); err != nil {
		logger.Warn("append transcript", zap.Error(err))
	}
}

func jsonOutput() bool {
	return formatFlag == "json"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	logger.Debug(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
