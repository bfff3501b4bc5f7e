package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var down = &ErrProviderUnavailable{Err: errors.New("down")}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	bad := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, false, 1},
		{"transient then success", []MockResponse{{Err: down}, ok}, false, 2},
		{"all attempts fail", []MockResponse{{Err: down}, {Err: down}, {Err: down}, ok}, true, 3},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, false, 2},
		{"truncation not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"permanent failure not retried", []MockResponse{{Err: &ErrProviderUnavailable{Status: 401, Permanent: true}}, ok}, true, 1},
		{"invalid output retried once", []MockResponse{bad, bad, ok}, true, 2},
		{"invalid then transient", []MockResponse{bad, {Err: down}, ok}, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig(), zap.NewNop())

			_, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, RetryConfig{}, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Content: json.RawMessage(`{}`)})
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	p := WithRetry(mock, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{
		config: RetryConfig{InitialWait: time.Second, MaxWait: 5 * time.Second, Multiplier: 2},
		jitter: func() float64 { return 1 },
	}
	tests := []struct {
		attempt int
		err     error
		want    time.Duration
	}{
		{0, down, time.Second},
		{1, down, 2 * time.Second},
		{2, down, 4 * time.Second},
		{3, down, 5 * time.Second},
		{0, &ErrRateLimit{RetryAfter: 7 * time.Second}, 7 * time.Second},
		{1, &ErrRateLimit{}, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := r.wait(tt.attempt, tt.err); got != tt.want {
			t.Errorf("wait(%d, %v) = %s, want %s", tt.attempt, tt.err, got, tt.want)
		}
	}
}

func TestRetry_Delegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig(), zap.NewNop())
	if p.ModelID() != "mock" || p.Name() != "mock" {
		t.Fatalf("model/name = %q/%q", p.ModelID(), p.Name())
	}
}
