package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/agent-pet/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PET_NAME", "PET_SPECIES", "PET_STORE_DRIVER", "PET_STORE_PATH", "PET_TRANSCRIPT",
		"DEEPSEEK_API_KEY", "DEEPSEEK_BASE_URL", "PET_MODEL", "PET_LLM_RETRIES", "PET_LLM_TIMEOUT",
		"SERPAPI_API_KEY", "SERPAPI_ENDPOINT", "PET_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// keep a stray .env in the package dir out of the picture
	testChdir(t, t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != model.DefaultName || cfg.Species != "cat" || cfg.StoreDriver != "sqlite" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Model != "deepseek-chat" || cfg.BaseURL != "https://api.deepseek.com" || cfg.LLMRetries != 2 {
		t.Errorf("unexpected llm defaults: %+v", cfg)
	}
	if cfg.Transcript != "chat_history.json" || cfg.LogLevel != "warn" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if !strings.HasSuffix(cfg.ResolvedStorePath(), filepath.Join(".agent-pet", "pet.db")) {
		t.Errorf("unexpected default store path %q", cfg.ResolvedStorePath())
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PET_SPECIES", "狗")
	t.Setenv("PET_STORE_DRIVER", "badger")
	t.Setenv("PET_STORE_PATH", "/tmp/pet")
	t.Setenv("PET_LLM_RETRIES", "0")
	t.Setenv("PET_LLM_TIMEOUT", "30s")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Species != "狗" || cfg.StoreDriver != "badger" || cfg.APIKey != "sk-test" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LLMRetries != 0 || cfg.LLMTimeout != 30*time.Second {
		t.Errorf("unexpected llm settings: %d %v", cfg.LLMRetries, cfg.LLMTimeout)
	}
	if cfg.ResolvedStorePath() != "/tmp/pet" {
		t.Errorf("explicit path should win, got %q", cfg.ResolvedStorePath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadBadValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("PET_LLM_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected parse error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	base := Config{Species: "cat", StoreDriver: "sqlite", LogLevel: "info"}

	bad := base
	bad.StoreDriver = "redis"
	if err := bad.Validate(); err == nil {
		t.Error("expected unknown driver error")
	}

	bad = base
	bad.Species = "dragon"
	if err := bad.Validate(); !errors.Is(err, model.ErrUnknownSpecies) {
		t.Errorf("expected ErrUnknownSpecies, got %v", err)
	}

	bad = base
	bad.LogLevel = "loud"
	if err := bad.Validate(); err == nil {
		t.Error("expected log level error")
	}
}

func TestDefaultStorePathPerDriver(t *testing.T) {
	for driver, want := range map[string]string{
		"sqlite": "pet.db",
		"file":   "pet.json",
		"badger": "pet.badger",
	} {
		if got := filepath.Base(DefaultStorePath(driver)); got != want {
			t.Errorf("DefaultStorePath(%q) = %q, want %q", driver, got, want)
		}
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
