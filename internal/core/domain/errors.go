package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrUpstream      = errors.New("upstream communication error")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// StageError records which model interaction failed. Kind is always one of
// ErrQuotaExceeded or ErrUpstream.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return "stage error"
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, e.Err}
}

// NewStageError keeps quota exhaustion distinct and folds every other failure
// into ErrUpstream.
func NewStageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	kind := ErrUpstream
	if IsKind(err, ErrQuotaExceeded) {
		kind = ErrQuotaExceeded
	}
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// StageOf returns the failing stage, or an empty Stage when err did not come
// from a model interaction.
func StageOf(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// KindOf names the error kind for logs and metric labels.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case IsKind(err, ErrInvalidInput):
		return "invalid_input"
	case IsKind(err, ErrQuotaExceeded):
		return "quota_exceeded"
	default:
		return "upstream"
	}
}
