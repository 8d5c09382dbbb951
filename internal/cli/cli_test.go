package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/devservice/devservicetest"
	"github.com/rickgorman/devservices/internal/logging"
	"github.com/rickgorman/devservices/internal/ui"
)

func newTestOptions(t *testing.T) (*options, *devservicetest.Engine) {
	t.Helper()

	out := ui.Out
	ui.Out = io.Discard
	t.Cleanup(func() { ui.Out = out })
	logging.SetOutput(io.Discard)

	engine := devservicetest.NewEngine()
	return &options{
		newEngine: func() (Engine, error) { return engine, nil },
		registry:  defaultRegistry(),
	}, engine
}

func execute(t *testing.T, ctx context.Context, opts *options, args ...string) (string, error) {
	t.Helper()

	rootCmd := newRootCmd(opts)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestKindsCommand(t *testing.T) {
	opts, _ := newTestOptions(t)

	out, err := execute(t, context.Background(), opts, "kinds")
	require.NoError(t, err)
	assert.Equal(t, "oracle\n", out)
}

func TestVersionCommand(t *testing.T) {
	opts, _ := newTestOptions(t)

	out, err := execute(t, context.Background(), opts, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "devservices "))
}

func TestStartDetached(t *testing.T) {
	opts, engine := newTestOptions(t)

	out, err := execute(t, context.Background(), opts, "start", "--detach", "--dir", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "jdbc:oracle:thin:@localhost:49152/quarkusdb\n", out)
	assert.Len(t, engine.Runs, 1)
	assert.Empty(t, engine.Stopped)
	assert.True(t, engine.Closed)
}

func TestStartStopsOnInterrupt(t *testing.T) {
	opts, engine := newTestOptions(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(t, ctx, opts, "start", "--dir", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"ctr0001"}, engine.Stopped)
	assert.Equal(t, []string{"ctr0001"}, engine.Removed)
}

func TestStartDisabled(t *testing.T) {
	opts, engine := newTestOptions(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devservices.yaml"), []byte("devservices:\n  enabled: false\n"), 0644))

	out, err := execute(t, context.Background(), opts, "start", "--dir", dir)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Empty(t, engine.Runs)
}

func TestStartUnknownKind(t *testing.T) {
	opts, engine := newTestOptions(t)

	_, err := execute(t, context.Background(), opts, "start", "--kind", "postgresql", "--dir", t.TempDir())
	assert.ErrorIs(t, err, devservice.ErrUnknownKind)
	assert.Empty(t, engine.Runs)
}

func TestPsAndStopAll(t *testing.T) {
	opts, engine := newTestOptions(t)
	dir := t.TempDir()

	_, err := execute(t, context.Background(), opts, "start", "--detach", "--dir", dir)
	require.NoError(t, err)
	name := engine.LastRun().Name

	out, err := execute(t, context.Background(), opts, "ps")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, name)
	assert.Contains(t, out, "oracle")
	assert.Contains(t, out, "up 5m")

	_, err = execute(t, context.Background(), opts, "stop", "--all", "--yes")
	require.NoError(t, err)
	assert.Equal(t, []string{name}, engine.Removed)

	out, err = execute(t, context.Background(), opts, "ps")
	require.NoError(t, err)
	assert.NotContains(t, out, name)
}

func TestStopRequiresTarget(t *testing.T) {
	opts, _ := newTestOptions(t)

	_, err := execute(t, context.Background(), opts, "stop")
	assert.Error(t, err)
}
