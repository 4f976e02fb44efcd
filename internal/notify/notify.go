// Package notify classifies batch results into the presentation shapes an
// external dispatcher understands. The engine never renders anything itself:
// it picks a shape, fills the payload and hands it over.
package notify

import (
	"context"
	"fmt"

	"github.com/mbelyaev/ferry/internal/logging"
	"github.com/mbelyaev/ferry/internal/models"
)

// Shape selects the presentation contract for one notification.
type Shape string

const (
	// Single-outcome shapes, used for zero-or-one file batches and for
	// batch-fatal failures.
	ShapeSingleSuccess Shape = "single_success"
	ShapeSingleFailure Shape = "single_failure"

	// Aggregate shapes for multi-file batches.
	ShapeAllSucceeded Shape = "all_succeeded"
	ShapeAllFailed    Shape = "all_failed"
	ShapeMixed        Shape = "mixed"
)

// Notification is the payload handed to a Dispatcher.
type Notification struct {
	Shape   Shape
	Message string
	// Link is the formatted link of the single successful file; empty for
	// other shapes.
	Link      string
	Succeeded int
	Failed    int
}

// Dispatcher consumes classified notifications. Implementations render OS
// notifications, copy links to a clipboard, or just log.
type Dispatcher interface {
	Present(ctx context.Context, n Notification)
}

// Classify shapes one batch result. Zero-or-one file batches use the single
// outcome shapes; multi-file batches use the three aggregate presentations.
func Classify(r models.BatchResult, f LinkFormat) Notification {
	switch r.Total() {
	case 0:
		return Notification{Shape: ShapeSingleFailure, Message: "nothing to upload"}
	case 1:
		if len(r.Succeeded) == 1 {
			o := r.Succeeded[0]
			return Notification{
				Shape:     ShapeSingleSuccess,
				Message:   o.Name,
				Link:      FormatLink(f, o.Name, o.URL),
				Succeeded: 1,
			}
		}
		o := r.Failed[0]
		return Notification{Shape: ShapeSingleFailure, Message: o.ErrMessage, Failed: 1}
	}

	n := Notification{Succeeded: len(r.Succeeded), Failed: len(r.Failed)}
	switch {
	case n.Failed == 0:
		n.Shape = ShapeAllSucceeded
		n.Message = fmt.Sprintf("%d files uploaded", n.Succeeded)
	case n.Succeeded == 0:
		n.Shape = ShapeAllFailed
		n.Message = fmt.Sprintf("all %d uploads failed", n.Failed)
	default:
		n.Shape = ShapeMixed
		n.Message = fmt.Sprintf("%d uploaded, %d failed", n.Succeeded, n.Failed)
	}
	return n
}

// Failure builds the single notification used for batch-fatal errors, where
// no tasks ran at all.
func Failure(err error) Notification {
	return Notification{Shape: ShapeSingleFailure, Message: err.Error()}
}

// LogDispatcher presents notifications through the structured logger. It is
// the default dispatcher for headless runs.
type LogDispatcher struct {
	log logging.Logger
}

func NewLogDispatcher(log logging.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Present(ctx context.Context, n Notification) {
	switch n.Shape {
	case ShapeSingleSuccess:
		d.log.Info(ctx, "upload finished", "name", n.Message, "link", n.Link)
	case ShapeSingleFailure:
		d.log.Error(ctx, "upload failed", "reason", n.Message)
	case ShapeAllFailed:
		d.log.Error(ctx, "batch failed", "failed", n.Failed)
	default:
		d.log.Info(ctx, "batch finished", "succeeded", n.Succeeded, "failed", n.Failed)
	}
}
