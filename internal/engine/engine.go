// Package engine coordinates upload batches: it resolves the profile and
// backend adapter, builds tasks eagerly in submission order, dispatches them
// under the adapter's concurrency discipline, and reports the settled batch
// to history and notification exactly once.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/config"
	"github.com/mbelyaev/ferry/internal/filex"
	"github.com/mbelyaev/ferry/internal/history"
	"github.com/mbelyaev/ferry/internal/logging"
	"github.com/mbelyaev/ferry/internal/mimex"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/notify"
	"github.com/mbelyaev/ferry/internal/profile"
	"github.com/mbelyaev/ferry/internal/rename"
)

// BatchRequest is one submitted group of files.
type BatchRequest struct {
	Inputs []models.FileInput

	// ProfileID explicitly selects a profile; empty means the configured
	// default. TestProfile, when set, wins over both.
	ProfileID   string
	TestProfile *models.Profile

	// DestDir is the destination folder/prefix on the backend.
	DestDir string

	// Silent suppresses the notification for this batch; history is still
	// written.
	Silent bool
}

// Orchestrator is the engine's central component. One long-lived instance per
// process; all dependencies are injected at construction.
type Orchestrator struct {
	resolver *profile.Resolver
	registry *adapter.Registry
	cfg      *config.Config
	recorder history.Recorder
	notifier notify.Dispatcher
	log      logging.Logger

	// now is a seam for tests.
	now func() time.Time

	// Adapters are mutably reconfigured per batch, so one batch owns its
	// adapter exclusively until every task has settled.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(resolver *profile.Resolver, registry *adapter.Registry, cfg *config.Config,
	recorder history.Recorder, notifier notify.Dispatcher, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		registry: registry,
		cfg:      cfg,
		recorder: recorder,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// SubmitBatch runs one batch end to end and returns the settled result.
//
// Profile or adapter resolution failures are batch-fatal: no tasks are
// created, no history is written, and exactly one failure notification is
// presented. Past adapter configuration every failure is task-local: a
// task's structured failure (or even an adapter panic) is converted into a
// failure outcome and never prevents sibling tasks from settling.
//
// Tasks are built synchronously for the whole batch, in submission order,
// before any transfer starts; under Sequence mode only the transfer calls
// are serialized.
func (o *Orchestrator) SubmitBatch(ctx context.Context, req BatchRequest) (*models.BatchResult, error) {
	prof, ad, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	unlock := o.acquire(ad.Name())
	defer unlock()

	proxy := o.cfg.Proxy
	if prof.Proxy != "" {
		proxy = prof.Proxy
	}
	if err := ad.Configure(prof.Options, proxy); err != nil {
		err = fmt.Errorf("configure backend %q: %w", prof.Backend, err)
		o.presentFatal(ctx, req, err)
		return nil, err
	}

	tasks := o.buildTasks(req.Inputs)

	outcomes := o.dispatch(ctx, ad, prof, tasks, req.DestDir)

	result := Aggregate(outcomes)
	o.settle(ctx, req, result)
	return &result, nil
}

// TestProfile probes a profile's viability by pushing one synthetic file
// through the regular pipeline. The outcome is reduced to a boolean; the
// probe is never recorded in history and never notified.
func (o *Orchestrator) TestProfile(ctx context.Context, p models.Profile) bool {
	probe := models.BufferInput{
		Name:     "ferry-healthcheck.txt",
		MimeType: "text/plain",
		Bytes:    []byte("ferry connectivity probe"),
	}

	prof, ad, err := o.prepare(ctx, BatchRequest{TestProfile: &p, Silent: true})
	if err != nil {
		return false
	}

	unlock := o.acquire(ad.Name())
	defer unlock()

	proxy := o.cfg.Proxy
	if prof.Proxy != "" {
		proxy = prof.Proxy
	}
	if err := ad.Configure(prof.Options, proxy); err != nil {
		o.log.Warn(ctx, "profile test failed during configuration", "profile", p.ID, "err", err)
		return false
	}

	tasks := o.buildTasks([]models.FileInput{probe})
	outcomes := o.dispatch(ctx, ad, prof, tasks, "")

	return len(outcomes) == 1 && outcomes[0].OK
}

// prepare resolves the profile and its adapter. Both misses are batch-fatal
// and produce a single failure notification.
func (o *Orchestrator) prepare(ctx context.Context, req BatchRequest) (models.Profile, adapter.Adapter, error) {
	prof, err := o.resolver.Resolve(req.ProfileID, req.TestProfile)
	if err != nil {
		o.presentFatal(ctx, req, err)
		return models.Profile{}, nil, err
	}

	ad, err := o.registry.Lookup(prof.Backend)
	if err != nil {
		o.presentFatal(ctx, req, err)
		return models.Profile{}, nil, err
	}

	return prof, ad, nil
}

// buildTasks derives the full ordered task list. It is deliberately
// synchronous: the submission index and every resolved name must be fixed
// before the first transfer may start, so ordering never depends on
// scheduling.
func (o *Orchestrator) buildTasks(inputs []models.FileInput) []models.UploadTask {
	policy := rename.Policy{Enabled: o.cfg.RenameEnabled, Format: o.cfg.RenameFormat}

	tasks := make([]models.UploadTask, 0, len(inputs))
	for i, in := range inputs {
		now := o.now()
		task := models.UploadTask{
			ID:        uuid.NewString(),
			Name:      policy.Apply(in.OriginalName(), now),
			MimeType:  mimex.ForInput(in),
			Source:    in,
			Index:     i,
			CreatedAt: now,
		}
		switch src := in.(type) {
		case models.PathInput:
			if size, err := filex.FileSize(src.Path); err == nil {
				task.Size = size
			}
		case models.BufferInput:
			task.Size = src.Size()
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// dispatch runs every task to settlement and returns one outcome per task.
// Sequence mode serializes the transfer calls in index order; Parallel mode
// starts them all at once. Either way the join is complete: a failing task
// never aborts its siblings.
func (o *Orchestrator) dispatch(ctx context.Context, ad adapter.Adapter, prof models.Profile,
	tasks []models.UploadTask, destDir string) []models.Outcome {

	outcomes := make([]models.Outcome, len(tasks))

	if ad.BatchMode() == adapter.Sequence {
		for i, task := range tasks {
			outcomes[i] = o.runTask(ctx, ad, prof, task, destDir)
		}
		return outcomes
	}

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task models.UploadTask) {
			defer wg.Done()
			outcomes[i] = o.runTask(ctx, ad, prof, task, destDir)
		}(i, task)
	}
	wg.Wait()

	return outcomes
}

// runTask invokes one transfer inside a local error boundary. A structured
// adapter error becomes a failure outcome; an adapter panic is recovered and
// converted the same way, so batch settlement is always a full join.
func (o *Orchestrator) runTask(ctx context.Context, ad adapter.Adapter, prof models.Profile,
	task models.UploadTask, destDir string) (out models.Outcome) {

	out = models.Outcome{
		TaskID:     task.ID,
		Name:       task.Name,
		MimeType:   task.MimeType,
		ProfileID:  prof.ID,
		SourcePath: task.SourcePath(),
		Size:       task.Size,
		Date:       o.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			out.OK = false
			out.URL = ""
			out.ErrMessage = fmt.Sprintf("backend fault: %v", r)
			o.log.Error(ctx, "adapter panicked during transfer",
				"backend", ad.Name(), "task", task.ID, "fault", r)
		}
	}()

	res, err := ad.Upload(ctx, task, destDir)
	if err != nil {
		out.ErrMessage = err.Error()
		o.log.Warn(ctx, "transfer failed", "backend", ad.Name(), "task", task.ID, "name", task.Name, "err", err)
		return out
	}

	out.OK = true
	out.URL = res.URL
	return out
}

// settle performs the batch-level side effects, strictly after every task
// has settled and exactly once per submitted batch.
func (o *Orchestrator) settle(ctx context.Context, req BatchRequest, result models.BatchResult) {
	if err := o.recorder.Add(ctx, result); err != nil {
		// History loss is not worth failing a settled batch over.
		o.log.Error(ctx, "failed to record batch history", "err", err)
	}

	if req.Silent || !o.cfg.ShowNotification {
		return
	}
	o.notifier.Present(ctx, notify.Classify(result, notify.ParseLinkFormat(o.cfg.LinkFormat)))
}

func (o *Orchestrator) presentFatal(ctx context.Context, req BatchRequest, err error) {
	if req.Silent || !o.cfg.ShowNotification {
		return
	}
	o.notifier.Present(ctx, notify.Failure(err))
}

// acquire grants exclusive use of the named adapter for one batch, so a
// concurrent batch cannot interleave its configuration with our transfers.
func (o *Orchestrator) acquire(name string) func() {
	o.locksMu.Lock()
	mu, ok := o.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		o.locks[name] = mu
	}
	o.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
