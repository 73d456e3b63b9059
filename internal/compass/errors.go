package compass

import (
	"github.com/rotisserie/eris"
)

// ErrMajorRequired is returned when the profile has no major. It is raised
// before any network call.
var ErrMajorRequired = eris.New("compass: major is required")

// GenerationError wraps a failed report generation call.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return "compass: generation via " + e.Provider + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
