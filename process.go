package pixfilter

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrAborted is returned when a pass observed a cancellation request.
// No partial result accompanies it.
var ErrAborted = errors.New("pixfilter: processing aborted")

// Transform computes the output color of one pixel. Implementations must not
// mutate src and must depend only on src, the coordinate and their own
// immutable parameters.
type Transform interface {
	ComputeColor(src Image, x, y int) Color
}

// TransformFunc adapts a function to [Transform].
type TransformFunc func(src Image, x, y int) Color

// ComputeColor implements [Transform].
func (fn TransformFunc) ComputeColor(src Image, x, y int) Color { return fn(src, x, y) }

// ProgressFunc receives completion percentages in [0,100].
type ProgressFunc func(percent int)

// CancelledFunc is polled to learn whether the caller requested cancellation.
type CancelledFunc func() bool

// CancelledByContext returns a [CancelledFunc] reporting whether ctx is done.
func CancelledByContext(ctx context.Context) CancelledFunc {
	return func() bool { return ctx.Err() != nil }
}

// Filter is a complete image operation: one or more passes over src
// producing a new image of identical dimensions.
type Filter interface {
	// Apply runs the filter over src. It returns [ErrAborted] if
	// cancelled reported true at any poll point.
	Apply(src Image, progress ProgressFunc, cancelled CancelledFunc) (*RGBA, error)
	// Controls returns the editable parameters of the filter.
	// Controls should remain valid even after calling [Control.ChangeValue]
	// and their [Control.ActualValue] return the updated value.
	Controls() []Control
}

// ForEachColumn calls fn once per column of an image with the given
// dimensions, left to right. Before each column it reports progress as
// floor(x*100/width) and polls cancelled; a cancellation stops iteration
// before fn runs for that column and returns [ErrAborted].
func ForEachColumn(d Dims, progress ProgressFunc, cancelled CancelledFunc, fn func(x int)) error {
	for x := 0; x < d.Width; x++ {
		if progress != nil {
			progress(x * 100 / d.Width)
		}
		if cancelled != nil && cancelled() {
			Logger().WithFields(logrus.Fields{
				"column": x,
				"width":  d.Width,
			}).Info("pass aborted")
			return ErrAborted
		}
		fn(x)
	}
	return nil
}

// Process is the generic per-pixel processing loop. It allocates a result
// of the same size as src and fills it column by column with t's output.
// Cancellation is polled once per column, so at most one in-flight column
// completes after a request.
func Process(src Image, t Transform, progress ProgressFunc, cancelled CancelledFunc) (*RGBA, error) {
	d := src.Dims()
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	log := Logger().WithFields(logrus.Fields{
		"width":  d.Width,
		"height": d.Height,
	})
	log.Debug("processing image")
	dst := NewRGBA(d.Width, d.Height)
	err := ForEachColumn(d, progress, cancelled, func(x int) {
		for y := 0; y < d.Height; y++ {
			dst.SetColor(x, y, t.ComputeColor(src, x, y))
		}
	})
	if err != nil {
		return nil, err
	}
	log.Debug("processing done")
	return dst, nil
}
