package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultHistoryLimit = 20

// History lists recent uploads, newest first. "history clear" drops the
// failure records; successful ones are kept as the link archive.
func (a *App) History(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "clear" {
		n, err := a.recorder.ClearFailed(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "removed %d failed records\n", n)
		return nil
	}

	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("history: %q is not a positive number", args[0])
		}
		limit = n
	}

	recs, err := a.recorder.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "history is empty")
		return nil
	}

	for _, r := range recs {
		if r.OK {
			fmt.Fprintf(a.out, "%s  ok      %-30s %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Name, r.URL)
		} else {
			fmt.Fprintf(a.out, "%s  failed  %-30s %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Name, r.ErrMessage)
		}
	}
	return nil
}
