package cli

import (
	"context"
	"fmt"
)

// The remote verbs forward the optional backend capabilities. Backends that
// lack one return common.ErrUnsupported, surfaced here as a plain error.

func (a *App) ListRemote(ctx context.Context, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := a.orch.ListFiles(ctx, "", dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "no remote files")
		return nil
	}

	for _, f := range files {
		fmt.Fprintf(a.out, "%10d  %s  %s\n", f.Size, f.ModTime.Format("2006-01-02 15:04"), f.Key)
	}
	return nil
}

func (a *App) DeleteRemote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("rm: at least one key is required")
	}

	if err := a.orch.DeleteFiles(ctx, "", args); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d files\n", len(args))
	return nil
}

func (a *App) MakeRemoteDir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("mkdir: a directory name is required")
	}

	if err := a.orch.CreateDirectory(ctx, "", args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s\n", args[0])
	return nil
}
