package utils

import (
	"errors"
	"testing"
	"time"
)

func testRetry(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Logger:      NewLogger(false),
	}
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := testRetry(3).Do("op", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	calls := 0
	err := testRetry(3).Do("op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned %v, want nil after recovery", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("permanent")
	calls := 0
	err := testRetry(3).Do("op", func() error {
		calls++
		return wantErr
	})
	if err == nil {
		t.Fatal("Do returned nil, want error after exhausting attempts")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Do error %v does not wrap the last failure", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}
