package cmd

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/llm"
)

// MockDrafter is a testify mock of llm.Drafter.
type MockDrafter struct {
	mock.Mock
}

func (m *MockDrafter) Draft(ctx context.Context, request, systemPrompt, contextContent string) (llm.Draft, error) {
	args := m.Called(ctx, request, systemPrompt, contextContent)
	draft, _ := args.Get(0).(llm.Draft)
	return draft, args.Error(1)
}

// MockToolDispatcher is a testify mock of ToolDispatcher. Dispatch arguments are passed
// to Called as a string so expectations can match the JSON text.
type MockToolDispatcher struct {
	mock.Mock
}

func (m *MockToolDispatcher) List() []dispatch.Descriptor {
	args := m.Called()
	descriptors, _ := args.Get(0).([]dispatch.Descriptor)
	return descriptors
}

func (m *MockToolDispatcher) Dispatch(ctx context.Context, name string, raw json.RawMessage) *dispatch.Result {
	args := m.Called(ctx, name, string(raw))
	res, _ := args.Get(0).(*dispatch.Result)
	return res
}
