// Package pdfops implements the document operations the assistant can run
// against local PDF files: merge, split, text extraction, page extraction,
// rotation, and inspection. Outputs land in a workspace directory so
// operations never clobber the input files.
package pdfops

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Result is the uniform outcome of a PDF operation. Operational failures
// (missing file, bad page range, corrupt PDF) are reported here rather than
// as Go errors so callers can relay the message verbatim.
type Result struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	OutputFiles []string       `json:"output_files,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func failure(format string, args ...any) *Result {
	return &Result{Message: fmt.Sprintf(format, args...)}
}

// Agent runs PDF operations with outputs rooted at a workspace directory.
type Agent struct {
	workspace string
}

func NewAgent(workspace string) (*Agent, error) {
	if workspace == "" {
		workspace = "pdf_workspace"
	}
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("pdfops: create workspace %s: %w", workspace, err)
	}
	return &Agent{workspace: workspace}, nil
}

func (a *Agent) Workspace() string { return a.workspace }

// outPath places a relative output name inside the workspace. Absolute
// paths are honored as given.
func (a *Agent) outPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.workspace, name)
}

func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("not a file: %s", path)
	}
	return nil
}

// validatePages checks 1-indexed page numbers against the document's page
// count and returns them as pdfcpu selection strings.
func validatePages(input string, pages []int) ([]string, error) {
	count, err := api.PageCountFile(input)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %v", input, err)
	}
	selected := make([]string, len(pages))
	for i, p := range pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", p, count)
		}
		selected[i] = strconv.Itoa(p)
	}
	return selected, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Merge combines the inputs, in order, into a single document.
func (a *Agent) Merge(inputs []string, output string) *Result {
	if len(inputs) < 2 {
		return failure("merge needs at least 2 input files, got %d", len(inputs))
	}
	for _, in := range inputs {
		if err := checkInput(in); err != nil {
			return failure("%v", err)
		}
	}
	if output == "" {
		output = "merged.pdf"
	}
	out := a.outPath(output)

	if err := api.MergeCreateFile(inputs, out, false, nil); err != nil {
		return failure("merge failed: %v", err)
	}
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Merged %d files into %s", len(inputs), out),
		OutputFiles: []string{out},
		Metadata:    map[string]any{"input_count": len(inputs)},
	}
}

// Split writes the input out in chunks of pagesPerFile pages each.
func (a *Agent) Split(input string, pagesPerFile int) *Result {
	if err := checkInput(input); err != nil {
		return failure("%v", err)
	}
	if pagesPerFile < 1 {
		return failure("pages per file must be at least 1, got %d", pagesPerFile)
	}
	count, err := api.PageCountFile(input)
	if err != nil {
		return failure("could not read %s: %v", input, err)
	}

	outDir := filepath.Join(a.workspace, stem(input)+"_split")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return failure("create output dir: %v", err)
	}
	if err := api.SplitFile(input, outDir, pagesPerFile, nil); err != nil {
		return failure("split failed: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return failure("read output dir: %v", err)
	}
	outputs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".pdf") {
			outputs = append(outputs, filepath.Join(outDir, e.Name()))
		}
	}
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Split %d pages into %d files under %s", count, len(outputs), outDir),
		OutputFiles: outputs,
		Metadata:    map[string]any{"page_count": count, "pages_per_file": pagesPerFile},
	}
}

// ExtractPages copies the selected pages into a new document.
func (a *Agent) ExtractPages(input string, pages []int, output string) *Result {
	if err := checkInput(input); err != nil {
		return failure("%v", err)
	}
	if len(pages) == 0 {
		return failure("no pages selected")
	}
	selected, err := validatePages(input, pages)
	if err != nil {
		return failure("%v", err)
	}
	if output == "" {
		output = stem(input) + "_pages.pdf"
	}
	out := a.outPath(output)

	if err := api.TrimFile(input, out, selected, nil); err != nil {
		return failure("page extraction failed: %v", err)
	}
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Extracted %d pages into %s", len(pages), out),
		OutputFiles: []string{out},
		Metadata:    map[string]any{"pages": pages},
	}
}

// Rotate turns the selected pages (all pages when none given) clockwise by
// the given angle.
func (a *Agent) Rotate(input string, rotation int, pages []int, output string) *Result {
	if err := checkInput(input); err != nil {
		return failure("%v", err)
	}
	if rotation != 90 && rotation != 180 && rotation != 270 {
		return failure("rotation must be 90, 180, or 270, got %d", rotation)
	}
	var selected []string
	if len(pages) > 0 {
		var err error
		selected, err = validatePages(input, pages)
		if err != nil {
			return failure("%v", err)
		}
	}
	if output == "" {
		output = fmt.Sprintf("%s_rotated%d.pdf", stem(input), rotation)
	}
	out := a.outPath(output)

	if err := api.RotateFile(input, out, rotation, selected, nil); err != nil {
		return failure("rotation failed: %v", err)
	}
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Rotated by %d degrees into %s", rotation, out),
		OutputFiles: []string{out},
		Metadata:    map[string]any{"rotation": rotation},
	}
}
