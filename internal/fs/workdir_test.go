package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLogicalWorkingDirPrefersPWD(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	mustMkdir(t, real)
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	got, err := LogicalWorkingDir(
		func(string) string { return link },
		func() (string, error) { return real, nil },
	)
	if err != nil {
		t.Fatalf("LogicalWorkingDir: %v", err)
	}
	if got != link {
		t.Fatalf("got %q, want %q", got, link)
	}
}

func TestLogicalWorkingDirFallsBack(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	tests := []struct {
		name string
		pwd  string
	}{
		{"unset", ""},
		{"relative", "some/where"},
		{"different directory", other},
		{"missing", filepath.Join(dir, "missing")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogicalWorkingDir(
				func(string) string { return tt.pwd },
				func() (string, error) { return dir, nil },
			)
			if err != nil {
				t.Fatalf("LogicalWorkingDir: %v", err)
			}
			if got != dir {
				t.Fatalf("got %q, want %q", got, dir)
			}
		})
	}
}

func TestLogicalWorkingDirGetwdError(t *testing.T) {
	want := errors.New("boom")
	_, err := LogicalWorkingDir(
		func(string) string { return "" },
		func() (string, error) { return "", want },
	)
	if !errors.Is(err, want) {
		t.Fatalf("expected getwd error, got %v", err)
	}
}
