package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent failures of the graph, cursor and format layers.
// Transport and service failures are typed below so callers can tell them apart.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedDocument indicates a raw document is missing a discriminator
	// or a structurally required field. It is never retryable.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrVariantMismatch indicates a node did not match the variants a caller asserted.
	ErrVariantMismatch = errors.New("variant mismatch")

	// ErrEndOfSequence indicates a cursor was advanced past its last page.
	ErrEndOfSequence = errors.New("end of sequence")

	// ErrAdvanceInProgress indicates a cursor advance was issued before the previous one resolved.
	ErrAdvanceInProgress = errors.New("advance already in progress")

	// ErrNoMatchingFormat indicates no media variant satisfied the selection options.
	ErrNoMatchingFormat = errors.New("no matching format")

	// ErrCipherRequired indicates a format carries only a signature cipher.
	// Recovering the URL needs a resolver that understands the player script.
	ErrCipherRequired = errors.New("format url requires signature deciphering")

	// ErrNoStreamingData indicates a player response did not carry streaming data.
	ErrNoStreamingData = errors.New("streaming data not available")

	// ErrTransportUnavailable indicates no transport is configured.
	ErrTransportUnavailable = errors.New("transport unavailable")
)

// MalformedDocumentError describes where a raw document failed to build.
type MalformedDocumentError struct {
	// Path is the chain of field names from the build root to the failure.
	Path []string
	// Reason is a short description of what was wrong.
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed document at %s: %s", strings.Join(e.Path, "."), e.Reason)
}

// Unwrap allows errors.Is(err, ErrMalformedDocument).
func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// Malformed creates a MalformedDocumentError with no path.
func Malformed(format string, args ...any) error {
	return &MalformedDocumentError{Reason: fmt.Sprintf(format, args...)}
}

// WithPathPrefix returns err with segment prepended to its path when err is a
// MalformedDocumentError. Other errors are returned unchanged.
func WithPathPrefix(err error, segment string) error {
	var me *MalformedDocumentError
	if !errors.As(err, &me) {
		return err
	}
	path := make([]string, 0, len(me.Path)+1)
	path = append(path, segment)
	path = append(path, me.Path...)
	return &MalformedDocumentError{Path: path, Reason: me.Reason}
}

// VariantMismatchError reports a node whose variant is outside an asserted set.
type VariantMismatchError struct {
	// Index is the position of the offending element, or -1 for a single node.
	Index int
	// Got is the variant that was found.
	Got string
	// Expected lists the variants that were allowed.
	Expected []string
}

func (e *VariantMismatchError) Error() string {
	where := "node"
	if e.Index >= 0 {
		where = fmt.Sprintf("element %d", e.Index)
	}
	return fmt.Sprintf("variant mismatch: %s is %s, expected one of [%s]",
		where, e.Got, strings.Join(e.Expected, ", "))
}

// Unwrap allows errors.Is(err, ErrVariantMismatch).
func (e *VariantMismatchError) Unwrap() error {
	return ErrVariantMismatch
}

// Rejection records why one candidate format was filtered out.
type Rejection struct {
	Format Format
	Reason error
}

// NoMatchingFormatError is returned when selection filtered out every candidate.
type NoMatchingFormatError struct {
	Options  FormatOptions
	Rejected []Rejection
}

func (e *NoMatchingFormatError) Error() string {
	return fmt.Sprintf("no matching format: %d candidates rejected for %s",
		len(e.Rejected), e.Options.String())
}

// Unwrap allows errors.Is(err, ErrNoMatchingFormat).
func (e *NoMatchingFormatError) Unwrap() error {
	return ErrNoMatchingFormat
}

// Candidates returns every rejected format in input order.
func (e *NoMatchingFormatError) Candidates() []Format {
	out := make([]Format, len(e.Rejected))
	for i := range e.Rejected {
		out[i] = e.Rejected[i].Format
	}
	return out
}

// TransportError is a failure to complete a remote call: network errors,
// throttling and server-side faults. Callers may retry it.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is an error status encoded by the service in the document itself,
// such as an unavailable video. It is never retryable.
type ServiceError struct {
	Code   int
	Status string
	Reason string
}

func (e *ServiceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("service: %s (%d): %s", e.Status, e.Code, e.Reason)
	}
	return fmt.Sprintf("service: %s: %s", e.Status, e.Reason)
}

// IsRetryable reports whether err is a transport failure a caller may retry.
// Service errors, malformed documents and context cancellation are not retryable.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsServiceError reports whether err is a service-encoded error status.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsEndOfSequence reports whether err marks an exhausted cursor.
func IsEndOfSequence(err error) bool {
	return errors.Is(err, ErrEndOfSequence)
}
