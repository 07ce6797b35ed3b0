package ksoap2utility

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LogTag is attached to every log line written by a ServiceClient.
const LogTag = "KSOAP2Utility"

// LoggingLevel selects how much diagnostic output a ServiceClient writes.
type LoggingLevel int

const (
	// LoggingSilent writes nothing.
	LoggingSilent LoggingLevel = iota
	// LoggingMinimal writes failures only.
	LoggingMinimal
	// LoggingMedium writes operation entry and exit in addition to failures.
	LoggingMedium
	// LoggingVerbose writes every step, including arguments, results and the error log contents.
	LoggingVerbose
)

func (l LoggingLevel) String() string {
	switch l {
	case LoggingSilent:
		return "silent"
	case LoggingMinimal:
		return "minimal"
	case LoggingMedium:
		return "medium"
	case LoggingVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("LoggingLevel(%d)", int(l))
	}
}

// ParseLoggingLevel converts a level name (silent, minimal, medium, verbose) into a LoggingLevel.
// The empty string yields LoggingSilent.
func ParseLoggingLevel(s string) (LoggingLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "silent", "none":
		return LoggingSilent, nil
	case "minimal":
		return LoggingMinimal, nil
	case "medium":
		return LoggingMedium, nil
	case "verbose":
		return LoggingVerbose, nil
	}
	return LoggingSilent, fmt.Errorf("unknown logging level %q", s)
}

// logPolicy receives the diagnostic events of a ServiceClient. One policy per LoggingLevel
// decides which events reach the logger, so call sites never branch on the level.
type logPolicy interface {
	enter(ctx context.Context, op string, args ...any)
	step(ctx context.Context, msg string, args ...any)
	exit(ctx context.Context, op string, result any)
	failure(ctx context.Context, op string, err error)
	errorLog(ctx context.Context, records []ErrorRecord)
	cleared(ctx context.Context)
}

func newLogPolicy(level LoggingLevel, logger *slog.Logger) logPolicy {
	logger = logger.With("tag", LogTag)

	minimal := minimalPolicy{logger: logger}
	switch level {
	case LoggingMinimal:
		return minimal
	case LoggingMedium:
		return mediumPolicy{minimal}
	case LoggingVerbose:
		return verbosePolicy{mediumPolicy{minimal}}
	default:
		return silentPolicy{}
	}
}

type silentPolicy struct{}

func (silentPolicy) enter(context.Context, string, ...any) {}
func (silentPolicy) step(context.Context, string, ...any) {}
func (silentPolicy) exit(context.Context, string, any) {}
func (silentPolicy) failure(context.Context, string, error) {}
func (silentPolicy) errorLog(context.Context, []ErrorRecord) {}
func (silentPolicy) cleared(context.Context) {}

type minimalPolicy struct {
	silentPolicy
	logger *slog.Logger
}

func (p minimalPolicy) failure(ctx context.Context, op string, err error) {
	p.logger.ErrorContext(ctx, "call failed", "operation", op, "error", err)
}

type mediumPolicy struct {
	minimalPolicy
}

func (p mediumPolicy) enter(ctx context.Context, op string, _ ...any) {
	p.logger.InfoContext(ctx, "entering", "operation", op)
}

func (p mediumPolicy) exit(ctx context.Context, op string, _ any) {
	p.logger.InfoContext(ctx, "exiting", "operation", op)
}

func (p mediumPolicy) errorLog(ctx context.Context, _ []ErrorRecord) {
	p.logger.InfoContext(ctx, "entering", "operation", "ListErrors")
}

func (p mediumPolicy) cleared(ctx context.Context) {
	p.logger.InfoContext(ctx, "entering", "operation", "ClearErrors")
}

type verbosePolicy struct {
	mediumPolicy
}

func (p verbosePolicy) enter(ctx context.Context, op string, args ...any) {
	p.logger.InfoContext(ctx, "entering", append([]any{"operation", op}, args...)...)
}

// Verbose lines are written at info so that the LoggingLevel alone decides what reaches
// a default handler.
func (p verbosePolicy) step(ctx context.Context, msg string, args ...any) {
	p.logger.InfoContext(ctx, msg, args...)
}

func (p verbosePolicy) exit(ctx context.Context, op string, result any) {
	p.logger.InfoContext(ctx, "exiting", "operation", op, "result", result)
}

func (p verbosePolicy) failure(ctx context.Context, op string, err error) {
	p.logger.ErrorContext(ctx, "call failed", "operation", op, "error", err, "error_type", fmt.Sprintf("%T", err))
}

func (p verbosePolicy) errorLog(ctx context.Context, records []ErrorRecord) {
	p.mediumPolicy.errorLog(ctx, records)
	p.logger.InfoContext(ctx, "error log", "count", len(records))
	for i, rec := range records {
		p.logger.InfoContext(ctx, "recorded error", "index", i+1, "message", rec.Message)
	}
}

func (p verbosePolicy) cleared(ctx context.Context) {
	p.mediumPolicy.cleared(ctx)
	p.logger.InfoContext(ctx, "errors cleared")
}
