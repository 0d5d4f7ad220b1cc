package artifact

import (
	"errors"
	"fmt"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// Sentinel failure kinds. Callers classify with errors.Is.
var (
	ErrVersionNotFound     = errors.New(messages.ArtifactErrVersionNotFound)
	ErrUnsupportedPlatform = errors.New(messages.ArtifactErrUnsupportedPlatform)
	ErrExtract             = errors.New(messages.ArtifactErrExtract)
	// ErrIncompatible is reserved for stricter runtime/application enforcement.
	ErrIncompatible = errors.New(messages.ArtifactErrIncompatible)
)

// HTTPStatusError reports a non-success HTTP response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf(messages.ArtifactHTTPStatusFmt, e.URL, e.Status)
}

// TransportError reports a request that never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf(messages.ArtifactTransportFmt, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFound wraps ErrVersionNotFound with the kind and version that was missing.
func NotFound(kind Kind, version string) error {
	return fmt.Errorf(messages.ArtifactNotFoundFmt, ErrVersionNotFound, kind, version)
}
