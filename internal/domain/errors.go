package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// NetworkError represents a network-related error that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "price", "time_series", "latest")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// NewFatalNetworkError creates a non-retriable network error
func NewFatalNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: false}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FetchError tags any upstream failure with the source that produced it.
type FetchError struct {
	Source Source
	Err    error
}

func (e *FetchError) Error() string {
	return "fetch " + e.Source.String() + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err for the given source.
func NewFetchError(src Source, err error) *FetchError {
	return &FetchError{Source: src, Err: err}
}

var (
	// ErrMalformedResponse is returned when a payload lacks a field or carries an invalid price.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRateLimited is returned when the keyed API rejects the request (quota or invalid key).
	ErrRateLimited = errors.New("rate limited or invalid key")

	// ErrMissingHistory is returned when a historical series has no usable entry.
	ErrMissingHistory = errors.New("missing history")

	// ErrInvalidManualInput is returned when neither manual field holds a usable rate.
	ErrInvalidManualInput = errors.New("invalid manual input")

	// ErrNoCredential is returned when a keyed call is attempted without an API key.
	ErrNoCredential = errors.New("no credential")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
