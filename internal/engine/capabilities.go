package engine

import (
	"context"
	"fmt"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/common"
)

// The engine forwards the optional backend capabilities transparently; a
// backend that lacks one yields common.ErrUnsupported.

func (o *Orchestrator) ListFiles(ctx context.Context, profileID, dir string) ([]adapter.RemoteFile, error) {
	var files []adapter.RemoteFile
	err := o.withConfiguredAdapter(profileID, func(ad adapter.Adapter) error {
		lister, ok := ad.(adapter.Lister)
		if !ok {
			return fmt.Errorf("list files on %q: %w", ad.Name(), common.ErrUnsupported)
		}
		var err error
		files, err = lister.ListFiles(ctx, dir)
		return err
	})
	return files, err
}

func (o *Orchestrator) DeleteFiles(ctx context.Context, profileID string, keys []string) error {
	return o.withConfiguredAdapter(profileID, func(ad adapter.Adapter) error {
		remover, ok := ad.(adapter.Remover)
		if !ok {
			return fmt.Errorf("delete files on %q: %w", ad.Name(), common.ErrUnsupported)
		}
		return remover.DeleteFiles(ctx, keys)
	})
}

func (o *Orchestrator) CreateDirectory(ctx context.Context, profileID, dir string) error {
	return o.withConfiguredAdapter(profileID, func(ad adapter.Adapter) error {
		maker, ok := ad.(adapter.DirMaker)
		if !ok {
			return fmt.Errorf("create directory on %q: %w", ad.Name(), common.ErrUnsupported)
		}
		return maker.CreateDirectory(ctx, dir)
	})
}

func (o *Orchestrator) withConfiguredAdapter(profileID string, fn func(ad adapter.Adapter) error) error {
	prof, err := o.resolver.Resolve(profileID, nil)
	if err != nil {
		return err
	}
	ad, err := o.registry.Lookup(prof.Backend)
	if err != nil {
		return err
	}

	unlock := o.acquire(ad.Name())
	defer unlock()

	proxy := o.cfg.Proxy
	if prof.Proxy != "" {
		proxy = prof.Proxy
	}
	if err := ad.Configure(prof.Options, proxy); err != nil {
		return fmt.Errorf("configure backend %q: %w", prof.Backend, err)
	}

	return fn(ad)
}
