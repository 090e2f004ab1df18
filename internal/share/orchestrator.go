// Package share issues share links for stored files and hands them to the
// user's clipboard or to a recipient by email. Creating a link and
// delivering it are independent: a failed delivery never invalidates the
// link.
package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/notify"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/storage"
)

// Clipboard receives copied links.
type Clipboard interface {
	WriteAll(text string) error
}

// Orchestrator creates and delivers share links.
type Orchestrator struct {
	store     storage.ObjectStore
	sender    notify.Sender
	clipboard Clipboard
	ttl       time.Duration
	logger    logging.Logger
	now       func() time.Time
}

// New returns an orchestrator issuing links valid for ttl (72h when zero).
func New(store storage.ObjectStore, sender notify.Sender, clipboard Clipboard, ttl time.Duration, logger logging.Logger) *Orchestrator {
	if ttl <= 0 {
		ttl = common.ShareURLTTL
	}
	return &Orchestrator{
		store:     store,
		sender:    sender,
		clipboard: clipboard,
		ttl:       ttl,
		logger:    logger.With("module", "share"),
		now:       time.Now,
	}
}

// CreateLink presigns key for the share TTL. key must belong to the
// session's namespace. Failures match common.ErrLinkGenerationFailed and
// are not retried.
func (o *Orchestrator) CreateLink(ctx context.Context, sess *session.Session, key string) (Link, error) {
	if err := session.Require(sess); err != nil {
		return Link{}, err
	}
	if !inventory.BelongsTo(key, sess.Namespace) {
		return Link{}, fmt.Errorf("%w: %w: %s", common.ErrLinkGenerationFailed, common.ErrForeignKey, key)
	}

	issued := o.now().UTC()
	url, err := o.store.PresignGet(ctx, key, o.ttl)
	if err != nil {
		o.logger.Error(ctx, "presign failed", "key", key, "error", err)
		return Link{}, common.Wrap(common.ErrLinkGenerationFailed, err)
	}

	o.logger.Info(ctx, "share link created", "key", key, "ttl", o.ttl)
	return Link{
		ObjectKey: key,
		URL:       url,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(o.ttl),
	}, nil
}

// SendByEmail mails link to recipient. Only emptiness of the address is
// checked. Failures match common.ErrNotificationFailed.
func (o *Orchestrator) SendByEmail(ctx context.Context, recipient string, link Link, fileDisplayName, senderDisplayName string) (notify.Receipt, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return notify.Receipt{}, fmt.Errorf("%w: %w", common.ErrNotificationFailed, common.ErrRecipientRequired)
	}

	rcpt, err := o.sender.Send(ctx, recipient, notify.TemplateFields{
		FileLink: link.URL,
		FileName: fileDisplayName,
		FromName: senderDisplayName,
	})
	if err != nil {
		o.logger.Error(ctx, "share email failed", "to", recipient, "key", link.ObjectKey, "error", err)
		return rcpt, common.Wrap(common.ErrNotificationFailed, err)
	}
	return rcpt, nil
}

// CopyToClipboard places the link URL on the clipboard. Failure matches
// common.ErrClipboardUnavailable and does not affect the link.
func (o *Orchestrator) CopyToClipboard(link Link) error {
	if o.clipboard == nil {
		return common.ErrClipboardUnavailable
	}
	if err := o.clipboard.WriteAll(link.URL); err != nil {
		if errors.Is(err, common.ErrClipboardUnavailable) {
			return err
		}
		return common.Wrap(common.ErrClipboardUnavailable, err)
	}
	return nil
}
