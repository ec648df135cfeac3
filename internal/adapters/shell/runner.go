// Package shell provides the lifecycle-script runner adapter.
package shell

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.ScriptRunner using os/exec. The script command
// line is read from the extracted package's manifest and run through the
// system shell with the package folder as working directory.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

type manifest struct {
	Scripts map[string]string `json:"scripts"`
}

// RunScript runs the named lifecycle script declared in dir's manifest. A
// script the manifest does not declare is a no-op, not an error.
func (r *Runner) RunScript(ctx context.Context, nv domain.PackageVersion, dir, script string) error {
	raw, err := os.ReadFile(filepath.Join(dir, "package.json")) //nolint:gosec // path is cache-internal
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read package manifest"), "package", nv.String())
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse package manifest"), "package", nv.String())
	}

	command, ok := m.Scripts[script]
	if !ok || strings.TrimSpace(command) == "" {
		return nil
	}

	r.logger.Info("running " + script + " script for " + nv.String())

	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec // script comes from the package manifest
	cmd.Dir = dir
	cmd.Env = scriptEnvironment(os.Environ(), dir)
	cmd.Stdout = &logWriter{logger: r.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: r.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok { //nolint:errorlint // direct exec error
			exitCode = exitErr.ExitCode()
		}
		scriptErr := zerr.With(zerr.Wrap(err, "lifecycle script failed"), "package", nv.String())
		scriptErr = zerr.With(scriptErr, "script", script)
		return zerr.With(scriptErr, "exit_code", exitCode)
	}
	return nil
}

// scriptEnvironment prepends the package folder's .bin directory to PATH so
// scripts can invoke their dependencies' executables.
func scriptEnvironment(sysEnv []string, dir string) []string {
	bin := filepath.Join(dir, "node_modules", ".bin")
	env := make([]string, 0, len(sysEnv))
	seenPath := false
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok && k == "PATH" {
			seenPath = true
			env = append(env, "PATH="+bin+string(os.PathListSeparator)+v)
			continue
		}
		env = append(env, entry)
	}
	if !seenPath {
		env = append(env, "PATH="+bin)
	}
	return env
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write splits output into lines before handing it to the logger. Partial
// lines are not buffered; script output is line-oriented in practice.
func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
