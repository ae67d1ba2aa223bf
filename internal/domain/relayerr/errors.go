// Package relayerr defines the error kinds produced while relaying a payment webhook.
package relayerr

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeUnauthorized     = "RELAY_UNAUTHORIZED"
	TextCodeMethodNotAllowed = "RELAY_METHOD_NOT_ALLOWED"
	TextCodeMalformedEvent   = "RELAY_MALFORMED_EVENT"
	TextCodeNotifierFailed   = "RELAY_NOTIFIER_FAILED"
	TextCodeInternal         = "RELAY_INTERNAL"
)

func relayError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func relayWrapError(source error, category goerrors.Category, message string, code int, textCode string, metadata map[string]any) error {
	if source == nil {
		return relayError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// Unauthorized reports a missing or mismatched access key.
func Unauthorized() error {
	return relayError("access key mismatch", goerrors.CategoryAuth, http.StatusUnauthorized, TextCodeUnauthorized, nil)
}

// MethodNotAllowed reports a request method other than POST.
func MethodNotAllowed(method string) error {
	return relayError(
		"method not allowed",
		goerrors.CategoryBadInput,
		http.StatusMethodNotAllowed,
		TextCodeMethodNotAllowed,
		map[string]any{"method": method},
	)
}

// MalformedEvent reports an inbound document that cannot be parsed or lacks a
// required field. The status stays 500 so payment providers redeliver.
func MalformedEvent(source error, message string, metadata map[string]any) error {
	return relayWrapError(
		source,
		goerrors.CategoryBadInput,
		message,
		http.StatusInternalServerError,
		TextCodeMalformedEvent,
		metadata,
	)
}

// NotifierFailed reports a failed or rejected outbound notification.
func NotifierFailed(source error) error {
	return relayWrapError(
		source,
		goerrors.CategoryExternal,
		"notification delivery failed",
		http.StatusInternalServerError,
		TextCodeNotifierFailed,
		nil,
	)
}

// Internal reports any other processing failure.
func Internal(source error, message string) error {
	return relayWrapError(
		source,
		goerrors.CategoryInternal,
		message,
		http.StatusInternalServerError,
		TextCodeInternal,
		nil,
	)
}

// TextCode returns the relay text code carried by err, or TextCodeInternal.
func TextCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode != "" {
		return richErr.TextCode
	}
	return TextCodeInternal
}

// Is reports whether err carries the given relay text code.
func Is(err error, textCode string) bool {
	if err == nil {
		return false
	}
	return TextCode(err) == textCode
}
