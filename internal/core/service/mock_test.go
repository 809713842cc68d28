package service

import (
	"context"
	"os"
	"sizemic/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockConverter struct{ mock.Mock }

func (m *MockConverter) Identify(ctx context.Context, path string) (domain.Dimensions, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(domain.Dimensions), args.Error(1)
}

func (m *MockConverter) Resize(ctx context.Context, opts domain.ResizeOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

// writeOutput makes a mocked Resize produce its destination file.
func writeOutput(args mock.Arguments) {
	opts := args.Get(1).(domain.ResizeOptions)
	_ = os.WriteFile(opts.DstPath, []byte(opts.Format), 0o644)
}
