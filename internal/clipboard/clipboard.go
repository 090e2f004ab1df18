// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// seams for tests
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System is the OS clipboard. On headless machines without xclip, xsel or
// wl-copy every write fails with common.ErrClipboardUnavailable.
type System struct{}

// WriteAll places text on the clipboard.
func (System) WriteAll(text string) error {
	if unsupported() {
		return fmt.Errorf("%w: no clipboard utility found", common.ErrClipboardUnavailable)
	}
	if err := writeAll(text); err != nil {
		return common.Wrap(common.ErrClipboardUnavailable, err)
	}
	return nil
}
