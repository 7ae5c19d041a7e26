package service

import (
	"errors"
	"strings"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrActionNotAllowed   = errors.New("action not allowed")
	ErrReleaseNotFound    = errors.New("release not found")
	ErrStoreBookNotFound  = errors.New("store book not found")
	ErrPublisherNotFound  = errors.New("publisher not found")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrAlreadyPublished   = errors.New("release is already published")
	ErrParentNotPublished = errors.New("store book is not published")
	ErrValidationFailed   = errors.New("release validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationFailure is one failed publication check.
type ValidationFailure struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ValidationError 汇总一次发布中所有未通过的检查，调用方一次即可看到全部问题。
type ValidationError struct {
	Failures []ValidationFailure
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Messages(), "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Messages returns the failure messages in check order.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		messages = append(messages, failure.Message)
	}
	return messages
}
