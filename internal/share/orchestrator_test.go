package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/events"
	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/notify"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "users/u1/files/1700000000000-report.pdf"

type fakeSender struct {
	notify.Sender
	err   error
	calls int
	to    string
	got   notify.TemplateFields
}

func (f *fakeSender) Send(ctx context.Context, to string, fields notify.TemplateFields) (notify.Receipt, error) {
	f.calls++
	f.to = to
	f.got = fields
	if f.err != nil {
		return notify.Receipt{}, f.err
	}
	return notify.Receipt{Status: 200, Text: "OK"}, nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(identity.UserIdentity{ID: "u1", Name: "Ada"})
	require.NoError(t, err)
	return s
}

func setup(t *testing.T) (*Orchestrator, *storagetest.Memory, *fakeSender, *fakeClipboard) {
	t.Helper()
	store := storagetest.NewMemory()
	store.Seed(key, []byte("%PDF"), time.Now())
	sender := &fakeSender{}
	clip := &fakeClipboard{}
	o := New(store, sender, clip, 0, logging.NewNopLogger())
	o.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return o, store, sender, clip
}

func TestCreateLink_ThreeDayExpiry(t *testing.T) {
	o, store, _, _ := setup(t)

	link, err := o.CreateLink(context.Background(), newSession(t), key)
	require.NoError(t, err)

	assert.Equal(t, key, link.ObjectKey)
	assert.NotEmpty(t, link.URL)
	assert.Equal(t, 259200.0, link.TTL().Seconds())
	assert.Equal(t, link.IssuedAt.Add(72*time.Hour), link.ExpiresAt)

	calls := store.Presigns()
	require.Len(t, calls, 1)
	assert.Equal(t, 259200.0, calls[0].TTL.Seconds())
}

func TestBrowseAndShareURLsAreIndependent(t *testing.T) {
	o, store, _, _ := setup(t)
	sess := newSession(t)

	m := inventory.NewManager(store, events.NewBus(), inventory.Options{}, logging.NewNopLogger())
	m.Bind(sess)
	inv, err := m.Refresh(context.Background(), sess)
	require.NoError(t, err)
	rec, ok := inv.Find(key)
	require.True(t, ok)

	link, err := o.CreateLink(context.Background(), sess, key)
	require.NoError(t, err)

	assert.NotEqual(t, rec.AccessURL, link.URL)

	calls := store.Presigns()
	require.Len(t, calls, 2)
	assert.Equal(t, 3600.0, calls[0].TTL.Seconds())
	assert.Equal(t, 259200.0, calls[1].TTL.Seconds())
}

func TestCreateLink_Failures(t *testing.T) {
	o, store, _, _ := setup(t)
	sess := newSession(t)

	_, err := o.CreateLink(context.Background(), sess, "users/u2/files/1-x")
	require.ErrorIs(t, err, common.ErrLinkGenerationFailed)
	require.ErrorIs(t, err, common.ErrForeignKey)

	store.PresignErr = func(string) error { return errors.New("expired credentials") }
	_, err = o.CreateLink(context.Background(), sess, key)
	require.ErrorIs(t, err, common.ErrLinkGenerationFailed)
	assert.Len(t, store.Presigns(), 1, "no automatic retry")

	_, err = o.CreateLink(context.Background(), nil, key)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestSendByEmail_FailureLeavesLinkValid(t *testing.T) {
	o, store, sender, _ := setup(t)
	sess := newSession(t)

	link, err := o.CreateLink(context.Background(), sess, key)
	require.NoError(t, err)

	sender.err = errors.New("smtp relay down")
	_, err = o.SendByEmail(context.Background(), "bob@example.com", link, "report.pdf", "Ada")
	require.ErrorIs(t, err, common.ErrNotificationFailed)
	assert.NotErrorIs(t, err, common.ErrLinkGenerationFailed)

	// the link is untouched and still valid
	assert.False(t, link.Expired(o.now()))
	assert.Equal(t, link.URL, mustPresign(t, store, key, 72*time.Hour))

	// and copying it still works
	require.NoError(t, o.CopyToClipboard(link))
}

func mustPresign(t *testing.T, store *storagetest.Memory, key string, ttl time.Duration) string {
	t.Helper()
	u, err := store.PresignGet(context.Background(), key, ttl)
	require.NoError(t, err)
	return u
}

func TestSendByEmail_PassesTemplateFields(t *testing.T) {
	o, _, sender, _ := setup(t)
	link := Link{ObjectKey: key, URL: "https://signed/x"}

	rcpt, err := o.SendByEmail(context.Background(), "  bob@example.com ", link, "report.pdf", "Ada")
	require.NoError(t, err)

	assert.Equal(t, 200, rcpt.Status)
	assert.Equal(t, "bob@example.com", sender.to)
	assert.Equal(t, notify.TemplateFields{FileLink: "https://signed/x", FileName: "report.pdf", FromName: "Ada"}, sender.got)
}

func TestSendByEmail_RequiresRecipient(t *testing.T) {
	o, _, sender, _ := setup(t)

	_, err := o.SendByEmail(context.Background(), "   ", Link{URL: "u"}, "f", "s")
	require.ErrorIs(t, err, common.ErrNotificationFailed)
	require.ErrorIs(t, err, common.ErrRecipientRequired)
	assert.Zero(t, sender.calls)

	// no format validation beyond emptiness
	_, err = o.SendByEmail(context.Background(), "not-an-address", Link{URL: "u"}, "f", "s")
	require.NoError(t, err)
}

func TestCopyToClipboard(t *testing.T) {
	o, _, _, clip := setup(t)

	require.NoError(t, o.CopyToClipboard(Link{URL: "https://signed/x"}))
	assert.Equal(t, "https://signed/x", clip.text)

	clip.err = errors.New("no display")
	require.ErrorIs(t, o.CopyToClipboard(Link{URL: "u"}), common.ErrClipboardUnavailable)

	clip.err = common.ErrClipboardUnavailable
	err := o.CopyToClipboard(Link{URL: "u"})
	assert.Equal(t, common.ErrClipboardUnavailable, err)

	o.clipboard = nil
	require.ErrorIs(t, o.CopyToClipboard(Link{URL: "u"}), common.ErrClipboardUnavailable)
}

func TestLinkExpired(t *testing.T) {
	issued := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l := Link{IssuedAt: issued, ExpiresAt: issued.Add(72 * time.Hour)}

	assert.False(t, l.Expired(issued))
	assert.False(t, l.Expired(issued.Add(71*time.Hour)))
	assert.True(t, l.Expired(issued.Add(72*time.Hour)))
}
