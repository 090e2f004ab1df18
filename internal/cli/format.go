package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/upload"
)

const emptyInventoryMessage = "No files uploaded yet"

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// formatSize renders n with 1024-based units and at most two decimals:
// 0 -> "0 Bytes", 1536 -> "1.5 KB".
func formatSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := float64(n) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// renderInventory prints inv as a numbered table. Numbers are what
// delete/open/share take.
func renderInventory(w io.Writer, inv inventory.Inventory) {
	if inv.Stale {
		fmt.Fprintln(w, "(showing last known files, the store could not be reached)")
	}
	if inv.Len() == 0 {
		fmt.Fprintln(w, emptyInventoryMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSIZE\tMODIFIED\tLINK")
	for i, r := range inv.Records {
		link := "ready"
		if r.URLUnavailable {
			link = "unavailable"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, r.DisplayName, formatSize(r.SizeBytes), r.LastModified.Local().Format("2006-01-02 15:04"), link)
	}
	_ = tw.Flush()
}

// renderOutcome prints the result of a command.
func renderOutcome(w io.Writer, o common.Outcome) {
	if o.Status == common.StatusSuccess {
		if o.Message != "" {
			fmt.Fprintln(w, "OK:", o.Message)
		}
		return
	}
	fmt.Fprintln(w, "ERROR:", o.Message)
}

// progressLine renders one task as a fixed-width bar fitting width columns.
func progressLine(t upload.Task, width int) string {
	label := fmt.Sprintf(" %3d%% %s", t.Progress, t.File.Name)
	if t.Status == upload.Failed {
		label = " failed " + t.File.Name
	}

	bar := width - len([]rune(label)) - 2
	if bar > 30 {
		bar = 30
	}
	if bar < 10 {
		bar = 10
	}
	filled := bar * t.Progress / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", bar-filled) + "]" + label
}
