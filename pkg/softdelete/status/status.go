// Package status holds the result every soft-delete operation hands back to
// its caller. Callers must check IsValid before trusting Result.
package status

import (
	"errors"
	"strings"

	"cascade-softdelete/internal/pkg/apperror"
)

var errMissingProblem = errors.New("failure reported without a problem")

// Status is immutable once built.
type Status struct {
	problems []*apperror.AppError
	result   int
}

// Success reports a valid operation that changed result entities.
func Success(result int) *Status {
	return &Status{result: result}
}

// Failure reports an invalid operation. Result is always 0. A failure built
// without any problem still reads as invalid.
func Failure(problems ...*apperror.AppError) *Status {
	cp := make([]*apperror.AppError, 0, len(problems))
	for _, p := range problems {
		if p != nil {
			cp = append(cp, p)
		}
	}
	if len(cp) == 0 {
		cp = append(cp, apperror.NewInternal(errMissingProblem))
	}
	return &Status{problems: cp}
}

func (s *Status) IsValid() bool {
	return len(s.problems) == 0
}

func (s *Status) Result() int {
	if !s.IsValid() {
		return 0
	}
	return s.result
}

// Errors returns the error messages in the order they were raised.
func (s *Status) Errors() []string {
	msgs := make([]string, len(s.problems))
	for i, p := range s.problems {
		msgs[i] = p.Message
	}
	return msgs
}

// Problems returns the structured errors behind Errors.
func (s *Status) Problems() []*apperror.AppError {
	return append([]*apperror.AppError(nil), s.problems...)
}

// GetAllErrors joins every message with a newline.
func (s *Status) GetAllErrors() string {
	return strings.Join(s.Errors(), "\n")
}

// Err is nil for a valid status.
func (s *Status) Err() error {
	if s.IsValid() {
		return nil
	}
	errs := make([]error, len(s.problems))
	for i, p := range s.problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}
