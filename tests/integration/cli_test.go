package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the ledger binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	ledgerBin = filepath.Join(tmpDir, "ledger")

	cmd := exec.Command("go", "build", "-o", ledgerBin, "./cmd/ledger")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// seedClub creates England, London, two kit colors and Arsenal, and returns
// their keys.
func seedClub(env *TestEnv) (country, town, red, white, team string) {
	country = env.Create("countries", `{"name":"England"}`)
	town = env.Create("towns", `{"name":"London","country_id":`+country+`}`)
	red = env.Create("colors", `{"name":"Red"}`)
	white = env.Create("colors", `{"name":"White"}`)
	team = env.Create("teams", `{"name":"Arsenal","logo_url":"https://example.com/ars.png","initials":"ARS",`+
		`"town_id":`+town+`,"primary_kit_color_id":`+red+`,"secondary_kit_color_id":`+white+`}`)
	return country, town, red, white, team
}

func TestInitCreatesDatabase(t *testing.T) {
	env := NewTestEnv(t, "cascade")

	result := env.MustRunLedger("init")
	if !strings.Contains(result.Stdout, "Ledger initialized") {
		t.Errorf("unexpected init output %q", result.Stdout)
	}
	if _, err := os.Stat(filepath.Join(env.DataDir, "ledger.db")); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestCascadeDeleteClearsDependents(t *testing.T) {
	env := NewTestEnv(t, "cascade")
	country, _, _, _, _ := seedClub(env)

	env.MustRunLedger("delete", "countries", country)

	for _, table := range []string{"countries", "towns", "teams"} {
		rows := ParseJSON[[]map[string]any](t, env.MustRunLedger("--json", "list", table).Stdout)
		if len(rows) != 0 {
			t.Errorf("%s: got %d rows after cascade, want 0", table, len(rows))
		}
	}
	colors := ParseJSON[[]map[string]any](t, env.MustRunLedger("--json", "list", "colors").Stdout)
	if len(colors) != 2 {
		t.Errorf("colors: got %d rows, want 2", len(colors))
	}
}

func TestRestrictDeleteExitsWithUserError(t *testing.T) {
	env := NewTestEnv(t, "restrict")
	country, _, red, _, _ := seedClub(env)

	for _, args := range [][]string{
		{"delete", "countries", country},
		{"delete", "colors", red},
	} {
		result := env.RunLedger(args...)
		if result.ExitCode != 1 {
			t.Errorf("ledger %v: exit code %d, want 1", args, result.ExitCode)
		}
		if !strings.Contains(result.Stderr, "cannot delete") {
			t.Errorf("ledger %v: stderr %q does not explain the block", args, result.Stderr)
		}
	}
}

func TestUserErrors(t *testing.T) {
	env := NewTestEnv(t, "cascade")

	tests := []struct {
		name string
		args []string
	}{
		{"missing entity", []string{"get", "teams", "7"}},
		{"unknown table", []string{"list", "leagues"}},
		{"validation", []string{"create", "colors", `{"name":""}`}},
		{"unresolved reference", []string{"create", "towns", `{"name":"Leeds","country_id":99}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.RunLedger(tt.args...)
			if result.ExitCode != 1 {
				t.Errorf("exit code %d, want 1 (stderr: %s)", result.ExitCode, result.Stderr)
			}
		})
	}
}

func TestExportWritesJSONL(t *testing.T) {
	env := NewTestEnv(t, "cascade")
	_, _, _, _, team := seedClub(env)
	dir := filepath.Join(env.TempDir, "backup")

	env.MustRunLedger("export", dir)

	teams := ReadJSONLFile[map[string]any](t, filepath.Join(dir, "teams.jsonl"))
	if len(teams) != 1 {
		t.Fatalf("got %d teams, want 1", len(teams))
	}
	if got := teams[0]["initials"]; got != "ARS" {
		t.Errorf("initials = %v, want ARS", got)
	}

	restored := NewTestEnv(t, "cascade")
	restored.MustRunLedger("import", dir)
	got := ParseJSON[map[string]any](t, restored.MustRunLedger("get", "teams", team).Stdout)
	if got["name"] != "Arsenal" {
		t.Errorf("restored team name = %v, want Arsenal", got["name"])
	}
}
