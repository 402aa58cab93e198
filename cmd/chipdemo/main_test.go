package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if err := run(options{backend: "noop", frames: 3}, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "chipdemo: frame"); got != 3 {
		t.Errorf("logged %d frames, want 3\n%s", got, out)
	}
	if !strings.Contains(out, "main_clears=1") {
		t.Errorf("main canvas should clear once per frame\n%s", out)
	}
}

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `
[painter]
batch_quads = 16

[canvas]
width = 128
height = 64
color = "#000020"

[[font]]
name = "text"
ttf = "gomono"
size = 8
count = 128
`
	path := filepath.Join(dir, "assets.toml")
	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if err := run(options{backend: "noop", frames: 1, manifest: path}, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "assets: loaded") {
		t.Errorf("manifest assets not loaded\n%s", buf.String())
	}
}

func TestRunErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if err := run(options{backend: "vulkan", frames: 1}, logger); err == nil {
		t.Error("unknown backend accepted")
	}
	if err := run(options{backend: "noop", frames: 1, manifest: filepath.Join(t.TempDir(), "none.toml")}, logger); err == nil {
		t.Error("missing manifest accepted")
	}
}
