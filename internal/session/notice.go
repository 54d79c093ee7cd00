package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lyndonlyu/tact/internal/apperr"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is the user-visible outcome of an action.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Do runs fn as the user action named action and always returns a Notice.
// Expected failures (validation, lookup, io, user input) show their own
// message; anything else, panics included, is logged and reported as
// unexpected. fn must not mutate state before it can no longer fail.
func (s *Session) Do(action string, fn func() (Notice, error)) (n Notice) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("action panicked",
				zap.String("action", action),
				zap.Any("panic", r),
				zap.Stack("stack"))
			n = Notice{
				Level:   LevelError,
				Title:   "Error",
				Message: fmt.Sprintf("Unexpected error during %s: %v", action, r),
			}
		}
	}()

	notice, err := fn()
	if err != nil {
		return s.failure(action, err)
	}
	return notice
}

func (s *Session) failure(action string, err error) Notice {
	kind := apperr.KindOf(err)
	if !apperr.Recoverable(err) {
		s.logger.Error("action failed", zap.String("action", action), zap.Error(err))
		return Notice{
			Level:   LevelError,
			Title:   "Error",
			Message: fmt.Sprintf("Unexpected error during %s: %v", action, err),
		}
	}

	s.logger.Warn("action rejected",
		zap.String("action", action),
		zap.String("kind", kind.String()),
		zap.Error(err))
	if kind == apperr.KindUserInput {
		return Notice{Level: LevelWarning, Title: "Warning", Message: capitalize(apperr.Message(err)) + "."}
	}
	return Notice{Level: LevelError, Title: "Error", Message: fmt.Sprintf("%s failed: %s", capitalize(action), apperr.Message(err))}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
