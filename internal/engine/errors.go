package engine

import (
	"errors"
	"fmt"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrNoActiveMission = errors.New("no active mission")
	ErrTapNotFound     = errors.New("tap target not found")
)

// ValidationError reports a rejected field at creation or edit time.
// It is meant to be shown to the user as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
