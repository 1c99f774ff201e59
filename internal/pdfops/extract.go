package pdfops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractText pulls the plain text of the selected pages (all pages when
// none given) and writes it to <stem>_extracted.txt in the workspace.
func (a *Agent) ExtractText(input string, pages []int) *Result {
	if err := checkInput(input); err != nil {
		return failure("%v", err)
	}

	f, r, err := pdf.Open(input)
	if err != nil {
		return failure("could not read %s: %v", input, err)
	}
	defer f.Close()

	total := r.NumPage()
	if len(pages) == 0 {
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
	} else {
		for _, p := range pages {
			if p < 1 || p > total {
				return failure("page %d out of range (document has %d pages)", p, total)
			}
		}
	}

	var sb strings.Builder
	pageTexts := make(map[string]string, len(pages))
	for _, n := range pages {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			fmt.Fprintf(&sb, "[could not read page %d: %v]\n", n, err)
			continue
		}
		pageTexts[fmt.Sprintf("page_%d", n)] = text
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := filepath.Join(a.workspace, stem(input)+"_extracted.txt")
	if err := os.WriteFile(out, []byte(sb.String()), 0o644); err != nil {
		return failure("write %s: %v", out, err)
	}
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("Extracted text from %d pages into %s", len(pages), out),
		OutputFiles: []string{out},
		Metadata: map[string]any{
			"char_count": sb.Len(),
			"pages":      pageTexts,
		},
	}
}

// Info reports page count, document metadata, and file size.
func (a *Agent) Info(input string) *Result {
	if err := checkInput(input); err != nil {
		return failure("%v", err)
	}
	count, err := api.PageCountFile(input)
	if err != nil {
		return failure("could not read %s: %v", input, err)
	}
	fi, err := os.Stat(input)
	if err != nil {
		return failure("%v", err)
	}

	meta := map[string]any{
		"page_count": count,
		"size_bytes": fi.Size(),
	}
	// Title/author come from the document info dictionary when present.
	if f, r, err := pdf.Open(input); err == nil {
		info := r.Trailer().Key("Info")
		if !info.IsNull() {
			if title := info.Key("Title").Text(); title != "" {
				meta["title"] = title
			}
			if author := info.Key("Author").Text(); author != "" {
				meta["author"] = author
			}
		}
		meta["encrypted"] = !r.Trailer().Key("Encrypt").IsNull()
		f.Close()
	}

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("%s: %d pages, %d bytes", filepath.Base(input), count, fi.Size()),
		Metadata: meta,
	}
}
