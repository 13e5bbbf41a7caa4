package leads

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks export requests rejected before any storage call.
var ErrInvalidRequest = errors.New("invalid export request")

func newErrBadExtension(path string) error {
	return fmt.Errorf("%w: output file must use the %s extension, got %q", ErrInvalidRequest, fileExtension, path)
}

func newErrPartialPeriod() error {
	return fmt.Errorf("%w: provide both year and month, or neither", ErrInvalidRequest)
}

func newErrMonthOutOfRange(month int) error {
	return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidRequest, month)
}

func newErrNoBucket() error {
	return fmt.Errorf("%w: bucket name is required, set AWS_S3_BUCKET or pass it explicitly", ErrInvalidRequest)
}
