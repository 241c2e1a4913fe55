// Package testutil provides test utilities and helpers for shipnote tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// shipnoteBinaryPath caches the built shipnote binary path.
	shipnoteBinaryPath string
	shipnoteBuildOnce  sync.Once
	shipnoteBuildErr   error
)

// E2EEnv provides an isolated project directory for running the shipnote
// binary. HOME and XDG_CONFIG_HOME point inside the temp dir so the real
// user config is never read, and SHIPNOTE_* variables are dropped.
type E2EEnv struct {
	t          *testing.T
	tempDir    string
	projectDir string
	binDir     string
	extraEnv   []string
}

// CommandResult captures the result of running a shipnote command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment with an empty project dir.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{t: t}
	env.setup()
	return env
}

func (e *E2EEnv) setup() {
	e.t.Helper()

	e.tempDir = e.t.TempDir()
	e.projectDir = filepath.Join(e.tempDir, "project")
	e.binDir = filepath.Join(e.tempDir, "bin")
	for _, dir := range []string{e.projectDir, e.binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.t.Fatalf("creating %s: %v", dir, err)
		}
	}

	e.buildShipnote()
}

func (e *E2EEnv) buildShipnote() {
	e.t.Helper()

	// Build shipnote binary once per test session
	shipnoteBuildOnce.Do(func() {
		shipnoteBinaryPath, shipnoteBuildErr = doBuildShipnote()
	})

	if shipnoteBuildErr != nil {
		e.t.Fatalf("building shipnote: %v", shipnoteBuildErr)
	}

	content, err := os.ReadFile(shipnoteBinaryPath)
	if err != nil {
		e.t.Fatalf("reading shipnote binary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.binDir, "shipnote"), content, 0o755); err != nil {
		e.t.Fatalf("writing shipnote binary: %v", err)
	}
}

func doBuildShipnote() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "shipnote-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "shipnote")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/shipnote")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("building shipnote: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Run executes a shipnote command in the project directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(filepath.Join(e.binDir, "shipnote"), args...)
	cmd.Dir = e.projectDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}

	return result
}

// SetEnv adds KEY=value to the environment of later Run calls.
func (e *E2EEnv) SetEnv(key, value string) {
	e.extraEnv = append(e.extraEnv, key+"="+value)
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.tempDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.tempDir, ".config"),
		"NO_COLOR=1",
	}

	// Add safe environment variables from original environment
	safeVars := []string{
		"TERM",
		"LANG",
		"LC_ALL",
		"TMPDIR",
		"TMP",
		"TEMP",
	}

	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	return append(env, e.extraEnv...)
}

// WriteFile writes content to a path relative to the project directory.
func (e *E2EEnv) WriteFile(rel, content string) {
	e.t.Helper()

	path := filepath.Join(e.projectDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
}

// ReadFile returns the content of a path relative to the project directory.
func (e *E2EEnv) ReadFile(rel string) string {
	e.t.Helper()

	data, err := os.ReadFile(filepath.Join(e.projectDir, rel))
	if err != nil {
		e.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// FileExists reports whether rel exists in the project directory.
func (e *E2EEnv) FileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.projectDir, rel))
	return err == nil
}

// SetupProject writes the default layout: internal/build/version.go holding
// version and an empty CHANGELOG.md.
func (e *E2EEnv) SetupProject(version string) {
	e.t.Helper()

	e.WriteFile("internal/build/version.go", fmt.Sprintf("package build\n\nvar (\n\tVersion = %q\n)\n", version))
	e.WriteFile("CHANGELOG.md", "")
}

// SetupRelease writes RELEASE.md with the given kind and notes.
func (e *E2EEnv) SetupRelease(kind, notes string) {
	e.t.Helper()
	e.WriteFile("RELEASE.md", "RELEASE_TYPE: "+kind+"\n\n"+notes+"\n")
}
