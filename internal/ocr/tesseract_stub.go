//go:build !cgo

package ocr

// Available reports whether the Tesseract engine is compiled in.
func Available() bool { return false }

// Recognize always fails without cgo; the pipeline's artifacts are still
// produced and can be fed to an external recognizer.
func Recognize(path, language string) (Result, error) {
	return Result{}, ErrUnavailable
}
