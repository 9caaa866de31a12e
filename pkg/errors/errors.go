// Package errors provides structured error handling for stackskit.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI surface.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNotFound = 3 // Resource not found
	ExitNetwork  = 4 // Network communication failed
	ExitWallet   = 5 // Wallet provider unavailable or rejected the request
)

// KitError is the structured error type for stackskit.
type KitError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KitError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KitError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KitError.
func (e *KitError) Is(target error) bool {
	var t *KitError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &KitError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &KitError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Address and amount errors.
	ErrInvalidAddress = &KitError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid Stacks address",
		ExitCode: ExitInput,
	}

	ErrInvalidChecksum = &KitError{
		Code:     "INVALID_CHECKSUM",
		Message:  "invalid address checksum",
		ExitCode: ExitInput,
	}

	ErrInvalidAmount = &KitError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrInvalidContractID = &KitError{
		Code:     "INVALID_CONTRACT_ID",
		Message:  "invalid contract identifier",
		ExitCode: ExitInput,
	}

	// Network and API errors.
	ErrNetworkError = &KitError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitNetwork,
	}

	ErrTimeout = &KitError{
		Code:     "TIMEOUT",
		Message:  "request timed out",
		ExitCode: ExitNetwork,
	}

	ErrInvalidResponse = &KitError{
		Code:     "INVALID_RESPONSE",
		Message:  "response did not match the expected shape",
		ExitCode: ExitNetwork,
	}

	ErrNotFound = &KitError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Wallet bridge errors.
	ErrWalletUnavailable = &KitError{
		Code:     "WALLET_UNAVAILABLE",
		Message:  "Wallet not found. Please install a Stacks wallet extension.",
		ExitCode: ExitWallet,
	}

	ErrNoStacksAddress = &KitError{
		Code:     "NO_STX_ADDRESS",
		Message:  "No STX address found",
		ExitCode: ExitWallet,
	}

	ErrBridgeRejected = &KitError{
		Code:     "BRIDGE_REJECTED",
		Message:  "wallet provider rejected the request",
		ExitCode: ExitWallet,
	}

	ErrMissingTxID = &KitError{
		Code:     "MISSING_TXID",
		Message:  "response is missing a transaction ID",
		ExitCode: ExitWallet,
	}

	// Contract errors.
	ErrContractCallFailed = &KitError{
		Code:     "CONTRACT_CALL_FAILED",
		Message:  "contract call failed",
		ExitCode: ExitGeneral,
	}

	ErrInvalidClarityValue = &KitError{
		Code:     "INVALID_CLARITY_VALUE",
		Message:  "invalid Clarity value encoding",
		ExitCode: ExitInput,
	}

	// Config errors.
	ErrConfigNotFound = &KitError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &KitError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownNetwork = &KitError{
		Code:     "UNKNOWN_NETWORK",
		Message:  "unknown network",
		ExitCode: ExitInput,
	}
)

// New creates a new KitError with the given code and message.
func New(code, message string) *KitError {
	return &KitError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return &KitError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KitError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KitError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KitError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
