package cli

import (
	"context"
	"fmt"

	"github.com/mbelyaev/ferry/internal/engine"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/notify"
)

// Upload submits one batch of local files through the active profile and
// prints a line per outcome. A partially failed batch is not an error at the
// process level; batch-fatal conditions are.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("upload: at least one file is required")
	}

	inputs := make([]models.FileInput, 0, len(paths))
	for _, p := range paths {
		inputs = append(inputs, models.PathInput{Path: p})
	}

	res, err := a.orch.SubmitBatch(ctx, engine.BatchRequest{Inputs: inputs})
	if err != nil {
		return err
	}

	format := notify.ParseLinkFormat(a.cfg.LinkFormat)
	for _, o := range res.Succeeded {
		fmt.Fprintln(a.out, notify.FormatLink(format, o.Name, o.URL))
	}
	for _, o := range res.Failed {
		fmt.Fprintf(a.out, "failed: %s: %s\n", o.Name, o.ErrMessage)
	}
	return nil
}
