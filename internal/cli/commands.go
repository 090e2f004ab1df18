package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/upload"
)

var errNoLink = errors.New("no share link yet, use 'share <n>' first")

func (a *App) Login(ctx context.Context) error {
	u, err := a.identity.SignIn(ctx)
	if err != nil {
		return a.report(err, "")
	}

	sess, err := session.New(u)
	if err != nil {
		return a.report(err, "")
	}

	if err := a.sessions.Save(ctx, sess); err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}

	a.begin(ctx, sess)
	_ = a.report(nil, "Signed in as "+u.DisplayName())
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	a.sess.End()
	a.stopWatching()
	a.inventory.Reset()
	a.uploads.Reset()
	a.sess = nil
	a.link, a.linkName = nil, ""

	return a.report(a.sessions.Clear(ctx), "Signed out")
}

func (a *App) List(ctx context.Context) error {
	inv, err := a.inventory.Refresh(ctx, a.sess)
	if err != nil && !inv.Stale {
		return a.report(err, "")
	}

	renderInventory(a.out, inv)
	if err != nil {
		return a.report(err, "")
	}
	return nil
}

func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		line, err := GetSimpleText(a.scanner, "Enter file paths separated by spaces", a.out)
		if err != nil {
			return err
		}
		paths = strings.Fields(line)
	}

	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		f, err := upload.FromPath(p)
		if err != nil {
			return a.report(fmt.Errorf("%s: %w", p, err), "")
		}
		files = append(files, f)
	}

	if err := a.uploads.Enqueue(files); err != nil {
		return a.report(err, "")
	}

	err := a.uploads.Submit(ctx, a.sess, a.printProgress)
	return a.report(err, fmt.Sprintf("Uploaded %d file(s)", len(files)))
}

// printProgress redraws the current task in place on a terminal; elsewhere
// only finished tasks are printed.
func (a *App) printProgress(_ int, t upload.Task) {
	finished := t.Status == upload.Done || t.Status == upload.Failed
	switch {
	case a.tty && finished:
		fmt.Fprint(a.out, "\r"+progressLine(t, a.width)+"\n")
	case a.tty:
		fmt.Fprint(a.out, "\r"+progressLine(t, a.width))
	case finished:
		fmt.Fprintln(a.out, progressLine(t, a.width))
	}
}

func (a *App) Delete(ctx context.Context, args []string) error {
	rec, err := a.pick(args)
	if err != nil {
		return a.report(err, "")
	}

	if !Confirm(a.scanner, fmt.Sprintf("Delete %s?", rec.DisplayName), a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	err = a.inventory.Delete(ctx, a.sess, rec.Key)
	return a.report(err, "Deleted "+rec.DisplayName)
}

func (a *App) Open(_ context.Context, args []string) error {
	rec, err := a.pick(args)
	if err != nil {
		return a.report(err, "")
	}

	if rec.URLUnavailable {
		fmt.Fprintln(a.out, "Download link unavailable, run 'list' to retry")
		return nil
	}

	fmt.Fprintf(a.out, "%s (valid for 1 hour):\n%s\n", rec.DisplayName, rec.AccessURL)
	return nil
}

func (a *App) Share(ctx context.Context, args []string) error {
	rec, err := a.pick(args)
	if err != nil {
		return a.report(err, "")
	}

	link, err := a.shares.CreateLink(ctx, a.sess, rec.Key)
	if err != nil {
		return a.report(err, "")
	}
	a.link, a.linkName = &link, rec.DisplayName

	fmt.Fprintf(a.out, "Share link for %s (expires %s):\n%s\n",
		rec.DisplayName, link.ExpiresAt.Local().Format(time.DateTime), link.URL)
	fmt.Fprintln(a.out, "Use 'copy' or 'email <address>' to pass it on")
	return nil
}

func (a *App) Copy(_ context.Context) error {
	if a.link == nil {
		return a.report(errNoLink, "")
	}
	return a.report(a.shares.CopyToClipboard(*a.link), "Link copied to clipboard")
}

func (a *App) Email(ctx context.Context, args []string) error {
	if a.link == nil {
		return a.report(errNoLink, "")
	}

	var recipient string
	if len(args) > 0 {
		recipient = args[0]
	} else {
		var err error
		recipient, err = GetSimpleText(a.scanner, "Recipient email", a.out)
		if err != nil {
			return err
		}
	}

	_, err := a.shares.SendByEmail(ctx, recipient, *a.link, a.linkName, a.sess.Identity.DisplayName())
	return a.report(err, "Link sent to "+strings.TrimSpace(recipient))
}

// pick resolves a 1-based listing number against the last snapshot.
func (a *App) pick(args []string) (inventory.ObjectRecord, error) {
	if len(args) == 0 {
		return inventory.ObjectRecord{}, errors.New("file number required")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return inventory.ObjectRecord{}, fmt.Errorf("invalid file number %q", args[0])
	}

	rec, ok := a.inventory.Snapshot().At(n)
	if !ok {
		return inventory.ObjectRecord{}, fmt.Errorf("no file #%d, run 'list' to see your files", n)
	}
	return rec, nil
}
