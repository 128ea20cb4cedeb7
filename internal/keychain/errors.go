package keychain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for keychain access
var (
	ErrItemNotFound        = errors.New("keychain item not found")
	ErrAccessDenied        = errors.New("keychain access denied")
	ErrUnsupportedPlatform = errors.New("keychain not supported on this platform")
)

// StoreError wraps OS keychain errors with context
type StoreError struct {
	Op      string // Operation: "query", "validate"
	Service string
	Account string
	Err     error
}

func (e *StoreError) Error() string {
	switch {
	case e.Account != "":
		return fmt.Sprintf("keychain %s error for %s/%s: %v", e.Op, e.Service, e.Account, e.Err)
	case e.Service != "":
		return fmt.Sprintf("keychain %s error for %s: %v", e.Op, e.Service, e.Err)
	default:
		return fmt.Sprintf("keychain %s error: %v", e.Op, e.Err)
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates a missing keychain item
func IsNotFound(err error) bool {
	if errors.Is(err, ErrItemNotFound) {
		return true
	}
	// Check for common "not found" patterns in error messages
	errStr := err.Error()
	return strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "itemNotFound")
}

// IsAccessDenied reports whether err indicates the OS refused access
func IsAccessDenied(err error) bool {
	if errors.Is(err, ErrAccessDenied) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "user denied") ||
		strings.Contains(errStr, "canceled")
}
