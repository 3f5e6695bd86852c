package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/godisk/internal/remote"
)

// MockRunner is a mock script runner.
type MockRunner struct {
	mock.Mock
}

// Run mocks the Run method. Steps passed as the third Return argument are
// replayed through onStep before returning.
func (m *MockRunner) Run(ctx context.Context, script string, onStep func(remote.Step)) (string, error) {
	args := m.Called(ctx, script)
	if len(args) > 2 && onStep != nil {
		steps, _ := args.Get(2).([]remote.Step)
		for _, s := range steps {
			onStep(s)
		}
	}
	return args.String(0), args.Error(1)
}

// MockExecutor is a mock single-command executor.
type MockExecutor struct {
	mock.Mock
}

// Execute mocks the Execute method.
func (m *MockExecutor) Execute(ctx context.Context, command string) (string, error) {
	args := m.Called(ctx, command)
	return args.String(0), args.Error(1)
}
