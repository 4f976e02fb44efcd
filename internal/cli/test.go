package cli

import (
	"context"
	"fmt"
)

// Test pushes a small synthetic file through the named profile and reports
// whether the backend accepted it. Nothing is recorded in history.
func (a *App) Test(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("test: a profile id is required")
	}
	id := args[0]

	p, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("test: unknown profile %q", id)
	}

	if a.orch.TestProfile(ctx, p) {
		fmt.Fprintf(a.out, "profile %q is working\n", id)
		return nil
	}
	return fmt.Errorf("profile %q failed the upload check", id)
}

// Profiles lists the configured profiles and marks the default.
func (a *App) Profiles() error {
	all := a.store.All()
	if len(all) == 0 {
		fmt.Fprintln(a.out, "no profiles configured")
		return nil
	}

	for _, p := range all {
		marker := " "
		if p.ID == a.cfg.DefaultProfileID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %-20s %s\n", marker, p.ID, p.Backend)
	}
	return nil
}
