package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/shell"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func relaxedLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(body), 0o600))
}

func TestRunScript_Success(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"scripts":{"postinstall":"echo ok > marker.txt"}}`)

	runner := shell.NewRunner(relaxedLogger(t))
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	require.NoError(t, runner.RunScript(t.Context(), nv, dir, "postinstall"))

	got, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(got))
}

func TestRunScript_UndeclaredScriptIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"scripts":{"test":"exit 1"}}`)

	runner := shell.NewRunner(relaxedLogger(t))
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	assert.NoError(t, runner.RunScript(t.Context(), nv, dir, "postinstall"))
}

func TestRunScript_FailureCarriesExitCode(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"scripts":{"postinstall":"exit 3"}}`)

	runner := shell.NewRunner(relaxedLogger(t))
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	err := runner.RunScript(t.Context(), nv, dir, "postinstall")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lifecycle script failed")
}

func TestRunScript_MissingManifest(t *testing.T) {
	runner := shell.NewRunner(relaxedLogger(t))
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	require.Error(t, runner.RunScript(t.Context(), nv, t.TempDir(), "postinstall"))
}
