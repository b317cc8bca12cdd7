package cli

import (
	"encoding/json"
	"os"
	"testing"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	for _, k := range []string{"PET_STORE_DRIVER", "PET_STORE_PATH", "PET_SPECIES", "PET_TRANSCRIPT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	testChdir(t, t.TempDir())
	t.Setenv("PET_SPECIES", "cat")

	storePath, driverFlag, speciesFlag, transcriptPath = "/tmp/pet.json", "file", "dog", "h.json"
	t.Cleanup(func() { storePath, driverFlag, speciesFlag, transcriptPath = "", "", "", "" })

	c, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if c.StoreDriver != "file" || c.ResolvedStorePath() != "/tmp/pet.json" || c.Species != "dog" || c.Transcript != "h.json" {
		t.Errorf("flags did not override env: %+v", c)
	}

	driverFlag = "redis"
	if _, err := loadConfig(); err == nil {
		t.Error("expected unknown driver to fail validation")
	}
}

func TestStateSchema(t *testing.T) {
	b, err := stateSchema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc struct {
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if doc.Type != "object" {
		t.Errorf("expected object schema, got %q", doc.Type)
	}
	for _, field := range []string{"name", "species", "mood", "exp", "level", "feed_count", "short_term_memory", "long_term_memory"} {
		if _, ok := doc.Properties[field]; !ok {
			t.Errorf("schema missing %q", field)
		}
	}
}

func TestHistoryTakesQueryArgument(t *testing.T) {
	cmd, _, err := RootCmd.Find([]string{"history"})
	if err != nil {
		t.Fatalf("find history: %v", err)
	}
	if cmd.Use != "history [query]" {
		t.Errorf("unexpected usage %q", cmd.Use)
	}
	if cmd.Flags().Lookup("limit") == nil {
		t.Error("expected --limit flag")
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
