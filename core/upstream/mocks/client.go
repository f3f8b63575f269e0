package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of upstream.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchProfile(ctx context.Context, uid int32) ([]byte, error) {
	args := m.Called(ctx, uid)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchReference(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
