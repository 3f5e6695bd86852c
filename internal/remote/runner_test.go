package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/godisk/internal/remote"
	tu "github.com/GriffinCanCode/godisk/internal/testutil"
)

func TestCommands(t *testing.T) {
	script := "# setup\n\nmkdisk -size=5\n   fdisk -name=p1  \n#mkdir -p /x\r\nmounted\r\n"

	steps := remote.Commands(script)
	assert.Equal(t, []remote.Step{
		{Line: 3, Command: "mkdisk -size=5"},
		{Line: 4, Command: "fdisk -name=p1"},
		{Line: 6, Command: "mounted"},
	}, steps)
}

func TestRunnerConcatenatesOutputs(t *testing.T) {
	exec := new(tu.MockExecutor)
	exec.On("Execute", mock.Anything, "mkdisk").Return("MKDISK ok", nil)
	exec.On("Execute", mock.Anything, "login").Return("", nil)
	exec.On("Execute", mock.Anything, "mkdir").Return("MKDIR ok", nil)

	var seen []remote.Step
	out, err := remote.NewRunner(exec, 0).Run(context.Background(), "mkdisk\n# comment\nlogin\nmkdir", func(s remote.Step) {
		seen = append(seen, s)
	})
	require.NoError(t, err)

	assert.Equal(t, "MKDISK ok\nMKDIR ok\n", out)
	assert.Equal(t, []remote.Step{
		{Line: 1, Command: "mkdisk", Output: "MKDISK ok"},
		{Line: 3, Command: "login", Output: ""},
		{Line: 4, Command: "mkdir", Output: "MKDIR ok"},
	}, seen)
	exec.AssertExpectations(t)
}

func TestRunnerAbortsOnFirstFailure(t *testing.T) {
	failure := errors.New("boom")
	exec := new(tu.MockExecutor)
	exec.On("Execute", mock.Anything, "mkdisk").Return("MKDISK ok", nil)
	exec.On("Execute", mock.Anything, "fdisk").Return("", failure)

	out, err := remote.NewRunner(exec, 0).Run(context.Background(), "mkdisk\nfdisk\nmkdir", nil)
	require.Error(t, err)
	assert.Empty(t, out)

	var cmdErr *remote.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 2, cmdErr.Line)
	assert.Equal(t, "fdisk", cmdErr.Command)
	assert.ErrorIs(t, err, failure)
	exec.AssertNotCalled(t, "Execute", mock.Anything, "mkdir")
}

func TestRunnerRejectsEmptyScript(t *testing.T) {
	exec := new(tu.MockExecutor)

	_, err := remote.NewRunner(exec, 0).Run(context.Background(), "\n  \n# only comments\n", nil)
	assert.ErrorIs(t, err, remote.ErrEmptyScript)
	exec.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunnerLineLimit(t *testing.T) {
	exec := new(tu.MockExecutor)

	_, err := remote.NewRunner(exec, 2).Run(context.Background(), "a\nb\nc", nil)
	assert.ErrorIs(t, err, remote.ErrScriptTooLong)
	exec.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunnerStopsOnCanceledContext(t *testing.T) {
	exec := new(tu.MockExecutor)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := remote.NewRunner(exec, 0).Run(ctx, "mkdisk", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerAgainstBackend(t *testing.T) {
	backend := tu.NewBackend(t)
	backend.On("mkdisk -path=/d/A.mia", tu.NewOutput().Mkdisk("/d/A.mia", "10 KB").String())

	out, err := remote.NewRunner(newClient(backend.URL, 5), 0).Run(context.Background(), "mkdisk -path=/d/A.mia", nil)
	require.NoError(t, err)
	assert.Equal(t, tu.NewOutput().Mkdisk("/d/A.mia", "10 KB").String()+"\n", out)
}
