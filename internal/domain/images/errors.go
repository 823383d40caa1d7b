package images

import "fmt"

// ValidationError indicates an image path outside the allowed prefix. It is
// produced without any store I/O.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid image path %q: %s", e.Path, e.Reason)
}

// FetchError wraps a blob-store failure for one image. Always local to that
// image, never fatal to the page.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
