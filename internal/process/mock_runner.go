package process

import (
	"context"
	"fmt"
	"sync"
)

// MockResponse is the canned outcome for one command.
type MockResponse struct {
	Result Result
	Err    error
	// Before runs prior to returning, e.g. to create files the real tool would write.
	Before func(cmd Command)
}

// MockRunner is an in-memory Runner for testing. Responses are keyed by
// Command.String(); unknown commands succeed with empty output.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]MockResponse
	calls     []Command
}

// NewMockRunner creates a runner with no canned responses.
func NewMockRunner() *MockRunner {
	return &MockRunner{responses: make(map[string]MockResponse)}
}

// On registers the response for the command line cmd.
func (m *MockRunner) On(cmd string, resp MockResponse) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = resp
	return m
}

// Fail registers a non-zero exit for cmd.
func (m *MockRunner) Fail(cmd string, exitCode int, output string) *MockRunner {
	return m.On(cmd, MockResponse{
		Result: Result{Output: output, ExitCode: exitCode},
		Err:    fmt.Errorf("%w: %s exited with status %d", ErrCommandFailed, cmd, exitCode),
	})
}

func (m *MockRunner) Run(_ context.Context, cmd Command) (Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	resp, ok := m.responses[cmd.String()]
	m.mu.Unlock()

	if !ok {
		return Result{}, nil
	}
	if resp.Before != nil {
		resp.Before(cmd)
	}
	return resp.Result, resp.Err
}

// Calls returns the commands run so far, in order.
func (m *MockRunner) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Command, len(m.calls))
	copy(out, m.calls)
	return out
}
