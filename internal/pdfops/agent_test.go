package pdfops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	a, err := NewAgent(filepath.Join(t.TempDir(), "workspace"))
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return a
}

func TestNewAgent_CreatesWorkspace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "workspace")
	a, err := NewAgent(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, a.Workspace())

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMerge_RequiresTwoInputs(t *testing.T) {
	a := newTestAgent(t)
	res := a.Merge([]string{"one.pdf"}, "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "at least 2")
}

func TestMerge_MissingInput(t *testing.T) {
	a := newTestAgent(t)
	res := a.Merge([]string{"/no/such/a.pdf", "/no/such/b.pdf"}, "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "file not found")
}

func TestSplit_RejectsBadSpan(t *testing.T) {
	a := newTestAgent(t)
	// Input existence is checked before the span, so use a real file.
	in := filepath.Join(t.TempDir(), "doc.pdf")
	assert.NoError(t, os.WriteFile(in, []byte("%PDF-1.4"), 0o644))

	res := a.Split(in, 0)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "at least 1")
}

func TestExtractPages_RequiresSelection(t *testing.T) {
	a := newTestAgent(t)
	in := filepath.Join(t.TempDir(), "doc.pdf")
	assert.NoError(t, os.WriteFile(in, []byte("%PDF-1.4"), 0o644))

	res := a.ExtractPages(in, nil, "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "no pages selected")
}

func TestRotate_RejectsBadAngle(t *testing.T) {
	a := newTestAgent(t)
	in := filepath.Join(t.TempDir(), "doc.pdf")
	assert.NoError(t, os.WriteFile(in, []byte("%PDF-1.4"), 0o644))

	for _, angle := range []int{0, 45, 360, -90} {
		res := a.Rotate(in, angle, nil, "")
		assert.False(t, res.Success, "angle %d should be rejected", angle)
		assert.Contains(t, res.Message, "rotation must be 90, 180, or 270")
	}
}

func TestInfo_MissingFile(t *testing.T) {
	a := newTestAgent(t)
	res := a.Info("/no/such/doc.pdf")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "file not found")
}

func TestOutPath_AbsolutePassthrough(t *testing.T) {
	a := newTestAgent(t)
	assert.Equal(t, "/tmp/out.pdf", a.outPath("/tmp/out.pdf"))
	assert.Equal(t, filepath.Join(a.Workspace(), "out.pdf"), a.outPath("out.pdf"))
}
