package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mbelyaev/ferry/internal/notify"
)

// consoleDispatcher renders batch notifications as console lines.
type consoleDispatcher struct {
	out io.Writer
}

func (d *consoleDispatcher) Present(ctx context.Context, n notify.Notification) {
	switch n.Shape {
	case notify.ShapeSingleSuccess:
		fmt.Fprintf(d.out, "uploaded %s\n", n.Message)
	case notify.ShapeSingleFailure:
		fmt.Fprintf(d.out, "upload failed: %s\n", n.Message)
	case notify.ShapeAllSucceeded:
		fmt.Fprintln(d.out, n.Message)
	case notify.ShapeAllFailed:
		fmt.Fprintln(d.out, n.Message)
	default:
		fmt.Fprintln(d.out, n.Message)
	}
}
