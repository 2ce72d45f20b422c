// Package mocks provides test doubles for the cloudflare client.
package mocks

import (
	"context"

	cloudflare "github.com/sells-group/browser-render-cli/pkg/cloudflare"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Content provides a mock function with given fields: ctx, req
func (_m *MockClient) Content(ctx context.Context, req cloudflare.PageRequest) (string, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Content")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) (string, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) string); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.PageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Screenshot provides a mock function with given fields: ctx, req
func (_m *MockClient) Screenshot(ctx context.Context, req cloudflare.ScreenshotRequest) ([]byte, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Screenshot")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.ScreenshotRequest) ([]byte, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.ScreenshotRequest) []byte); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.ScreenshotRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// PDF provides a mock function with given fields: ctx, req
func (_m *MockClient) PDF(ctx context.Context, req cloudflare.PageRequest) ([]byte, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for PDF")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) ([]byte, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) []byte); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.PageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Snapshot provides a mock function with given fields: ctx, req
func (_m *MockClient) Snapshot(ctx context.Context, req cloudflare.PageRequest) (any, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Snapshot")
	}

	var r0 any
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) (any, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) any); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.PageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Scrape provides a mock function with given fields: ctx, req
func (_m *MockClient) Scrape(ctx context.Context, req cloudflare.ScrapeRequest) (any, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Scrape")
	}

	var r0 any
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.ScrapeRequest) (any, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.ScrapeRequest) any); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.ScrapeRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// JSON provides a mock function with given fields: ctx, req
func (_m *MockClient) JSON(ctx context.Context, req cloudflare.JSONRequest) (any, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for JSON")
	}

	var r0 any
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.JSONRequest) (any, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.JSONRequest) any); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.JSONRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Links provides a mock function with given fields: ctx, req
func (_m *MockClient) Links(ctx context.Context, req cloudflare.PageRequest) (any, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Links")
	}

	var r0 any
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) (any, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) any); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.PageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Markdown provides a mock function with given fields: ctx, req
func (_m *MockClient) Markdown(ctx context.Context, req cloudflare.PageRequest) (string, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Markdown")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) (string, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, cloudflare.PageRequest) string); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, cloudflare.PageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
