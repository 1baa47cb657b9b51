package portal

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrElementNotFound   = errors.New("element not found")
	ErrLoginFailed       = errors.New("login failed")
	ErrFilterNotFound    = errors.New("event-type filter not found")
	ErrYearInputNotFound = errors.New("event year input not found")
	ErrPortalUnreachable = errors.New("portal unreachable")
)

// NavError wraps a failure at a named step of the portal flow.
type NavError struct {
	Step string
	Err  error
}

func (e *NavError) Error() string {
	return fmt.Sprintf("navigation error at %q: %v", e.Step, e.Err)
}

func (e *NavError) Unwrap() error { return e.Err }
