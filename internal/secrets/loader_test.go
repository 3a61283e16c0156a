package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  secret-value\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api token", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "secret-value" {
		t.Fatalf("expected trimmed secret, got %q", got)
	}
}

func TestLoadFilePrecedesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api token", File: path, Value: "from-value"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("file must take precedence, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COACH_TEST_SECRET", " from-env ")

	got, err := Load(Source{Name: "api token", Env: "COACH_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("expected trimmed env secret, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Source{Name: "api token", File: "/nonexistent/token"}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load(Source{Name: "api token"}); err == nil {
		t.Fatalf("expected an error for an unconfigured secret")
	}

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(Source{Name: "api token", File: path}); err == nil {
		t.Fatalf("expected an error for an empty secret file")
	}
}
