package geogo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geogo/index"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a search radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrNotFound is returned when a query yields no result.
	ErrNotFound = errors.New("not found")
)

// ErrInvalidBox indicates a box whose minimum exceeds its maximum on some
// axis, or one containing NaN coordinates.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidBox struct {
	Box   index.Box
	cause error
}

func (e *ErrInvalidBox) Error() string {
	return fmt.Sprintf("invalid box: [%v %v %v %v]", e.Box.MinX, e.Box.MinY, e.Box.MaxX, e.Box.MaxY)
}

func (e *ErrInvalidBox) Unwrap() error { return e.cause }

// validateBox rejects boxes with min > max or NaN coordinates. NaN fails
// every comparison, so the single expression covers both cases.
func validateBox(b index.Box) error {
	if b.MinX <= b.MaxX && b.MinY <= b.MaxY {
		return nil
	}
	return &ErrInvalidBox{Box: b}
}
