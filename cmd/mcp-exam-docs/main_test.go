package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a3tai/mcp-exam-docs/internal/config"
)

const testVersion = "1.2.3"

// captureStdout returns what fn writes to os.Stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	return buf.String()
}

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	version = testVersion
	buildTime = "2026-01-15_10:30:00"
	gitCommit = "abc123"

	output := captureStdout(t, printVersion)

	expectedStrings := []string{
		"MCP Exam Docs",
		"Version: " + testVersion,
		"Build Time: 2026-01-15_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_StdioMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	setupLogging(&config.Config{Mode: "stdio", LogLevel: "debug"})
	if log.Writer() != os.Stderr {
		t.Errorf("setupLogging() for stdio debug mode should set output to stderr")
	}

	setupLogging(&config.Config{Mode: "stdio", LogLevel: "info"})
	if log.Writer() != io.Discard {
		t.Errorf("setupLogging() for stdio non-debug mode should discard logs")
	}
}

func TestSetupLogging_ServerMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	setupLogging(&config.Config{Mode: "server", LogLevel: "info"})

	expectedFlags := log.LstdFlags | log.Lshortfile
	if log.Flags() != expectedFlags {
		t.Errorf("setupLogging() for server mode: flags = %v, want %v", log.Flags(), expectedFlags)
	}
}

func TestBuildServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocumentDirectory = t.TempDir()

	server, err := buildServer(cfg)
	if err != nil {
		t.Fatalf("buildServer() unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("buildServer() returned nil server")
	}
}

func TestBuildServer_CatalogOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "catalog.yaml")
	data := []byte("document_types:\n  - id: income_certificate\n    keywords: [income]\n")
	if err := os.WriteFile(overlay, data, 0o600); err != nil {
		t.Fatalf("Failed to write overlay: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.DocumentDirectory = dir
	cfg.CatalogPath = overlay

	if _, err := buildServer(cfg); err != nil {
		t.Fatalf("buildServer() unexpected error: %v", err)
	}

	cfg.CatalogPath = filepath.Join(dir, "missing.yaml")
	if _, err := buildServer(cfg); err == nil || !strings.Contains(err.Error(), "failed to load catalogs") {
		t.Errorf("buildServer() error = %v, want catalog load failure", err)
	}
}
