package enhance

import (
	"errors"
	"fmt"
)

var errEmptyImage = errors.New("image has no pixels")

// LoadError indicates the source file is missing, corrupt, or unreadable.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// EmptyContentError indicates an image with no foreground pixels, so geometry
// estimation has nothing to work with.
type EmptyContentError struct {
	Path string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no content found in image %s", e.Path)
}

// TransformError indicates a binarization or morphology step failed.
type TransformError struct {
	Stage string
	Err   error
}

func (e *TransformError) Error() string { return fmt.Sprintf("transform %s: %v", e.Stage, e.Err) }
func (e *TransformError) Unwrap() error { return e.Err }

// IOError indicates a temp-artifact write or delete failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("artifact io %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
