package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_ledger/internal/platform/logging"
	"github.com/SscSPs/finance_ledger/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	metrics *metrics.Recorder
	clock   func() time.Time
}

// ServiceOption is a functional option applied to every service's BaseService.
type ServiceOption func(*BaseService)

// WithMetrics records ledger mutations and committed operations on rec.
func WithMetrics(rec *metrics.Recorder) ServiceOption {
	return func(s *BaseService) {
		s.metrics = rec
	}
}

// WithClock overrides the time source used for audit timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

// now returns the current time in UTC at the precision every backend stores.
func (s *BaseService) now() time.Time {
	t := time.Now()
	if s.clock != nil {
		t = s.clock()
	}
	return t.UTC().Truncate(time.Microsecond)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.ErrorContext(ctx, msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, keyvals...)
}

func (s *BaseService) observeOperation(entity, op string) {
	s.metrics.ObserveOperation(entity, op)
}
