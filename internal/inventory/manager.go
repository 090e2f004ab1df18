package inventory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Bus is the mutation signal the manager listens to and, after deletes,
// publishes on.
type Bus interface {
	Publish()
	Subscribe() (<-chan struct{}, func())
}

// Options tunes a Manager. Zero values select the defaults.
type Options struct {
	// BrowseTTL is the lifetime of record access URLs.
	BrowseTTL time.Duration
	// Concurrency bounds simultaneous presign calls during a refresh.
	Concurrency int
}

// Manager owns the inventory of the bound session. Refresh, Delete and
// Watch take the session explicitly; results produced for a session that
// ended or is no longer bound are dropped.
type Manager struct {
	store  storage.ObjectStore
	bus    Bus
	opts   Options
	logger logging.Logger
	now    func() time.Time

	mu    sync.Mutex // serialises bind/publish
	bound *session.Session
	state atomic.Pointer[Inventory]
}

// NewManager returns a manager with an empty inventory and no bound session.
func NewManager(store storage.ObjectStore, bus Bus, opts Options, logger logging.Logger) *Manager {
	if opts.BrowseTTL <= 0 {
		opts.BrowseTTL = common.BrowseURLTTL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}

	m := &Manager{
		store:  store,
		bus:    bus,
		opts:   opts,
		logger: logger.With("module", "inventory"),
		now:    time.Now,
	}
	m.state.Store(&Inventory{})
	return m
}

// Bind makes sess the current session and clears any inventory left from a
// previous one.
func (m *Manager) Bind(sess *session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bound == sess {
		return
	}
	m.bound = sess
	m.state.Store(&Inventory{Namespace: sess.Namespace})
}

// Reset unbinds the session and clears the inventory.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bound = nil
	m.state.Store(&Inventory{})
}

// Snapshot returns the last published inventory.
func (m *Manager) Snapshot() Inventory {
	return *m.state.Load()
}

func (m *Manager) isCurrent(sess *session.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sess.Active() && m.bound == sess
}

// publish stores inv unless sess stopped being current meanwhile.
func (m *Manager) publish(sess *session.Session, inv Inventory) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !sess.Active() || m.bound != sess {
		return false
	}
	m.state.Store(&inv)
	return true
}

// Refresh lists the session's prefix and signs a fresh access URL for every
// object. A listing failure keeps the previous snapshot, marks it stale and
// returns it together with an error matching common.ErrInventoryUnavailable.
// A failed signature only flags its own record. Results for a session that
// ended or was replaced while the refresh ran are discarded with
// common.ErrNoSession.
func (m *Manager) Refresh(ctx context.Context, sess *session.Session) (Inventory, error) {
	if !m.isCurrent(sess) {
		return Inventory{}, common.ErrNoSession
	}

	prefix := Prefix(sess.Namespace)
	objects, err := m.store.List(ctx, prefix)
	if err != nil {
		m.logger.Warn(ctx, "listing failed, keeping previous inventory", "prefix", prefix, "error", err)

		stale := m.Snapshot().markedStale()
		if !m.publish(sess, stale) {
			return Inventory{}, common.ErrNoSession
		}
		return stale, common.Wrap(common.ErrInventoryUnavailable, err)
	}

	records := m.resolve(ctx, objects)

	if err := ctx.Err(); err != nil {
		return m.Snapshot(), common.Wrap(common.ErrInventoryUnavailable, err)
	}

	inv := Inventory{
		Namespace:   sess.Namespace,
		Records:     records,
		RefreshedAt: m.now().UTC(),
	}
	if !m.publish(sess, inv) {
		m.logger.Debug(ctx, "discarding refresh for inactive session", "session", sess.ID)
		return Inventory{}, common.ErrNoSession
	}

	m.logger.Debug(ctx, "inventory refreshed", "files", len(records))
	return inv, nil
}

// resolve turns listed objects into records, presigning URLs concurrently.
// Output order matches objects.
func (m *Manager) resolve(ctx context.Context, objects []storage.ObjectInfo) []ObjectRecord {
	records := make([]ObjectRecord, len(objects))

	var g errgroup.Group
	g.SetLimit(m.opts.Concurrency)

	for i, obj := range objects {
		g.Go(func() error {
			rec := ObjectRecord{
				Key:          obj.Key,
				DisplayName:  DisplayName(obj.Key),
				SizeBytes:    obj.Size,
				LastModified: obj.LastModified,
			}

			url, err := m.store.PresignGet(ctx, obj.Key, m.opts.BrowseTTL)
			if err != nil {
				m.logger.Warn(ctx, "access url unavailable", "key", obj.Key, "error", err)
				rec.URLUnavailable = true
			} else {
				rec.AccessURL = url
			}

			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	return records
}

// Delete removes key from the store and signals a mutation. The key must
// belong to the session's namespace. On failure the inventory is untouched
// and the error matches common.ErrDeleteFailed.
func (m *Manager) Delete(ctx context.Context, sess *session.Session, key string) error {
	if err := session.Require(sess); err != nil {
		return err
	}
	if !BelongsTo(key, sess.Namespace) {
		return fmt.Errorf("%w: %w: %s", common.ErrDeleteFailed, common.ErrForeignKey, key)
	}

	if err := m.store.Delete(ctx, key); err != nil {
		m.logger.Error(ctx, "delete failed", "key", key, "error", err)
		return common.Wrap(common.ErrDeleteFailed, err)
	}

	m.logger.Info(ctx, "file deleted", "key", key)
	m.bus.Publish()
	return nil
}

// Watch refreshes the inventory after mutation events until ctx is done or
// sess ends. Events arriving during a refresh collapse into one follow-up
// refresh. onRefresh, if non-nil, observes every refresh outcome.
func (m *Manager) Watch(ctx context.Context, sess *session.Session, onRefresh func(Inventory, error)) {
	ch, cancel := m.bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if !sess.Active() {
				return
			}

			inv, err := m.Refresh(ctx, sess)
			if err != nil {
				m.logger.Warn(ctx, "refresh after mutation failed", "error", err)
			}
			if onRefresh != nil {
				onRefresh(inv, err)
			}
		}
	}
}
