// Package upload sends a user's selected files to the object store one after
// another, tracking per-file progress.
package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/events"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/storage"
	"github.com/google/uuid"
)

// Orchestrator holds the pending batch and runs it. Only one Submit may run
// at a time; a second one fails with common.ErrUploadInProgress.
type Orchestrator struct {
	store  storage.ObjectStore
	pub    events.Publisher
	max    int
	logger logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	tasks   []Task
	gen     uint64 // bumped whenever the batch is replaced
	running bool
}

// New returns an orchestrator accepting at most maxBatch files per
// selection.
func New(store storage.ObjectStore, pub events.Publisher, maxBatch int, logger logging.Logger) *Orchestrator {
	if maxBatch <= 0 {
		maxBatch = common.MaxBatchSize
	}
	return &Orchestrator{
		store:  store,
		pub:    pub,
		max:    maxBatch,
		logger: logger.With("module", "upload"),
		now:    time.Now,
	}
}

// Enqueue replaces the pending batch with files. More than the configured
// maximum fails with common.ErrTooManyFiles and an empty selection with
// common.ErrEmptyBatch; in both cases the previous batch is kept.
func (o *Orchestrator) Enqueue(files []File) error {
	if len(files) > o.max {
		return fmt.Errorf("%w: selected %d, limit is %d", common.ErrTooManyFiles, len(files), o.max)
	}
	if len(files) == 0 {
		return common.ErrEmptyBatch
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return common.ErrUploadInProgress
	}

	tasks := make([]Task, len(files))
	for i, f := range files {
		tasks[i] = Task{File: f, Status: Pending}
	}
	o.tasks = tasks
	o.gen++
	return nil
}

// Tasks returns a copy of the current batch.
func (o *Orchestrator) Tasks() []Task {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Task(nil), o.tasks...)
}

// Reset drops the pending batch. A running Submit finishes its current file
// but stops reporting into the dropped batch.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tasks = nil
	o.gen++
}

// Submit uploads the batch sequentially under the session's namespace.
// Keys are stamped when each file starts. The first failure aborts the
// batch with a *common.UploadError; files already stored stay stored and
// keep their Done status, so a later Submit only retries the rest. On full
// success the batch is cleared and a mutation event published.
func (o *Orchestrator) Submit(ctx context.Context, sess *session.Session, onProgress ProgressFunc) error {
	if err := session.Require(sess); err != nil {
		return err
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return common.ErrUploadInProgress
	}
	if len(o.tasks) == 0 {
		o.mu.Unlock()
		return common.ErrEmptyBatch
	}
	o.running = true
	gen := o.gen
	for i := range o.tasks {
		if o.tasks[i].Status != Done {
			o.tasks[i] = Task{File: o.tasks[i].File, Status: Pending}
		}
	}
	tasks := append([]Task(nil), o.tasks...)
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	logger := o.logger.With("batch", uuid.NewString(), "namespace", sess.Namespace)
	logger.Info(ctx, "upload batch started", "files", len(tasks))

	report := func(i int) {
		o.mu.Lock()
		if o.gen == gen && i < len(o.tasks) {
			o.tasks[i] = tasks[i]
		}
		o.mu.Unlock()
		if onProgress != nil {
			onProgress(i, tasks[i])
		}
	}

	completed := 0
	for i := range tasks {
		if tasks[i].Status == Done {
			continue
		}

		tasks[i].Key = inventory.ObjectKey(sess.Namespace, o.now(), tasks[i].File.Name)
		tasks[i].Status = Uploading
		tasks[i].Progress = 0
		report(i)

		err := o.put(ctx, &tasks[i], func() { report(i) })

		if !sess.Active() {
			logger.Warn(ctx, "session ended during upload, abandoning batch", "file", tasks[i].File.Name)
			return common.ErrNoSession
		}

		if err != nil {
			tasks[i].Status = Failed
			tasks[i].Err = err
			report(i)

			logger.Error(ctx, "upload failed", "file", tasks[i].File.Name, "key", tasks[i].Key, "error", err)
			if completed > 0 {
				o.pub.Publish()
			}
			return &common.UploadError{FileName: tasks[i].File.Name, Err: err}
		}

		tasks[i].Status = Done
		tasks[i].Progress = 100
		report(i)
		completed++
	}

	logger.Info(ctx, "upload batch finished", "uploaded", completed)
	o.pub.Publish()

	o.mu.Lock()
	if o.gen == gen {
		o.tasks = nil
		o.gen++
	}
	o.mu.Unlock()
	return nil
}

// put streams one file to the store, raising t.Progress monotonically and
// holding it below 100 until the store confirms.
func (o *Orchestrator) put(ctx context.Context, t *Task, changed func()) error {
	body, closer, size, ctype, err := t.File.content()
	if err != nil {
		return fmt.Errorf("open %s: %w", t.File.Name, err)
	}
	defer closer.Close()

	onSent := func(sent int64) {
		if size <= 0 {
			return
		}
		pct := int(sent * 100 / size)
		if pct > 99 {
			pct = 99
		}
		if pct > t.Progress {
			t.Progress = pct
			changed()
		}
	}

	_, err = o.store.Put(ctx, t.Key, body, size, ctype, onSent)
	return err
}
