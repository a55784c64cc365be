package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"stubber.dev/pkg/stubber/internal/domain"
)

// mockWorkflow is a testify mock for domain.Workflow used by the command tests.
type mockWorkflow struct {
	mock.Mock
}

func newMockWorkflow(t *testing.T) *mockWorkflow {
	mw := &mockWorkflow{}
	mw.Mock.Test(t)
	t.Cleanup(func() { mw.AssertExpectations(t) })

	return mw
}

func (mw *mockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) error {
	return mw.Called(ctx, args).Error(0)
}

func (mw *mockWorkflow) ImportFixtures(ctx context.Context, args domain.ImportArgs) error {
	return mw.Called(ctx, args).Error(0)
}

func (mw *mockWorkflow) CleanStubs(ctx context.Context, args domain.CleanArgs) error {
	return mw.Called(ctx, args).Error(0)
}

func (mw *mockWorkflow) RunTool(ctx context.Context, args domain.ToolArgs) error {
	return mw.Called(ctx, args).Error(0)
}

func (mw *mockWorkflow) PreStage(ctx context.Context, args domain.PreStageArgs) error {
	return mw.Called(ctx, args).Error(0)
}
