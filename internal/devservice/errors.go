package devservice

import (
	"errors"
	"fmt"
)

var (
	// ErrImageResolution means the image reference is invalid or cannot be pulled.
	ErrImageResolution = errors.New("image resolution failed")

	// ErrStartupTimeout means the service did not become ready in time.
	ErrStartupTimeout = errors.New("startup timed out")

	// ErrResourceLimit means the container was killed for exceeding its limits.
	ErrResourceLimit = errors.New("resource limit prevented startup")

	// ErrStartupFailed means the container exited before becoming ready.
	ErrStartupFailed = errors.New("container exited before becoming ready")

	// ErrInvalidConfig means the request itself cannot be honoured.
	ErrInvalidConfig = errors.New("invalid dev service configuration")

	// ErrUnknownKind means no provider is registered for a database kind.
	ErrUnknownKind = errors.New("unknown database kind")
)

// StartupError reports a failed dev service start.
type StartupError struct {
	Service string
	Err     error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("Dev Services for %s failed to start: %v", e.Service, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
