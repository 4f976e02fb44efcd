package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/mbelyaev/ferry/internal/models"
)

// printSink renders download progress as console lines. Percentages are only
// printed when the remote declared a total size.
type printSink struct {
	out io.Writer
}

func (s *printSink) Progress(p models.DownloadProgress) {
	fmt.Fprintf(s.out, "\r%s %3.0f%%", p.Name, p.Ratio*100)
	if p.Ratio >= 1.0 {
		fmt.Fprintln(s.out)
	}
}

func (s *printSink) Done(name string) {
	fmt.Fprintf(s.out, "%s done\n", name)
}

func (s *printSink) Error(name, message string) {
	fmt.Fprintf(s.out, "\n%s failed: %s\n", name, message)
}

// Download fetches a url into the configured download directory. The local
// name defaults to the last path segment of the url.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("download: a source url is required")
	}
	src := args[0]

	name := ""
	if len(args) > 1 {
		name = args[1]
	} else {
		u, err := url.Parse(src)
		if err != nil {
			return fmt.Errorf("download: parse %q: %w", src, err)
		}
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("download: cannot derive a file name from %q, pass one explicitly", src)
	}

	return a.streamer.Fetch(ctx, name, src, &printSink{out: a.out})
}
