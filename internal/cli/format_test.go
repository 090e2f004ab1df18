package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/upload"
	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{1, "1 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1000000, "976.56 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
		{2048 * 1024 * 1024 * 1024, "2048 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.in), "formatSize(%d)", tt.in)
	}
}

func TestRenderInventory_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderInventory(&buf, inventory.Inventory{})
	assert.Equal(t, emptyInventoryMessage+"\n", buf.String())
}

func TestRenderInventory_Rows(t *testing.T) {
	var buf bytes.Buffer
	renderInventory(&buf, inventory.Inventory{
		Records: []inventory.ObjectRecord{
			{Key: "k1", DisplayName: "report.pdf", SizeBytes: 1536, LastModified: time.Now(), AccessURL: "https://x"},
			{Key: "k2", DisplayName: "notes.txt", SizeBytes: 10, LastModified: time.Now(), URLUnavailable: true},
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "report.pdf")
	assert.Contains(t, lines[1], "1.5 KB")
	assert.Contains(t, lines[1], "ready")
	assert.True(t, strings.HasPrefix(lines[2], "2"))
	assert.Contains(t, lines[2], "unavailable")
}

func TestRenderInventory_Stale(t *testing.T) {
	var buf bytes.Buffer
	renderInventory(&buf, inventory.Inventory{Stale: true})
	assert.Contains(t, buf.String(), "could not be reached")
	assert.Contains(t, buf.String(), emptyInventoryMessage)
}

func TestRenderOutcome(t *testing.T) {
	var buf bytes.Buffer
	renderOutcome(&buf, common.Succeeded("Deleted a.txt"))
	renderOutcome(&buf, common.Succeeded(""))
	renderOutcome(&buf, common.Failed(errors.New("boom")))
	assert.Equal(t, "OK: Deleted a.txt\nERROR: boom\n", buf.String())
}

func TestProgressLine(t *testing.T) {
	task := upload.Task{File: upload.FromBytes("a.txt", nil), Progress: 50, Status: upload.Uploading}
	assert.Equal(t, "["+strings.Repeat("#", 15)+strings.Repeat(".", 15)+"]  50% a.txt", progressLine(task, 80))

	task.Progress = 100
	assert.Equal(t, "["+strings.Repeat("#", 10)+"] 100% a.txt", progressLine(task, 5))

	task.Status = upload.Failed
	assert.Contains(t, progressLine(task, 80), "failed a.txt")
}
