package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jfellows/tend/internal/pdfops"
)

type PdfCmd struct {
	Merge  PdfMergeCmd  `cmd:"" help:"Merge PDFs into one document."`
	Split  PdfSplitCmd  `cmd:"" help:"Split a PDF into chunks."`
	Text   PdfTextCmd   `cmd:"" help:"Extract plain text."`
	Pages  PdfPagesCmd  `cmd:"" help:"Extract selected pages into a new PDF."`
	Rotate PdfRotateCmd `cmd:"" help:"Rotate pages."`
	Info   PdfInfoCmd   `cmd:"" help:"Show document info."`
}

// parsePages reads a selection like "1,3,5-7" into 1-indexed page numbers.
func parsePages(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			for p := start; p <= end; p++ {
				pages = append(pages, p)
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func printResult(res *pdfops.Result) error {
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Printf("✓ %s\n", res.Message)
	for _, f := range res.OutputFiles {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func newAgent(ctx *Context) (*pdfops.Agent, error) {
	return pdfops.NewAgent(ctx.Config.WorkspaceDir)
}

type PdfMergeCmd struct {
	Inputs []string `arg:"" help:"Input PDF files, merged in order." type:"existingfile"`
	Output string   `help:"Output filename." short:"o"`
}

func (c *PdfMergeCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return printResult(agent.Merge(c.Inputs, c.Output))
}

type PdfSplitCmd struct {
	Input string `arg:"" help:"Input PDF file." type:"existingfile"`
	Every int    `help:"Pages per output file." default:"1"`
}

func (c *PdfSplitCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return printResult(agent.Split(c.Input, c.Every))
}

type PdfTextCmd struct {
	Input string `arg:"" help:"Input PDF file." type:"existingfile"`
	Pages string `help:"Page selection, e.g. 1,3,5-7. Defaults to all pages."`
}

func (c *PdfTextCmd) Run(ctx *Context) error {
	pages, err := parsePages(c.Pages)
	if err != nil {
		return err
	}
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return printResult(agent.ExtractText(c.Input, pages))
}

type PdfPagesCmd struct {
	Input  string `arg:"" help:"Input PDF file." type:"existingfile"`
	Pages  string `arg:"" help:"Page selection, e.g. 1,3,5-7."`
	Output string `help:"Output filename." short:"o"`
}

func (c *PdfPagesCmd) Run(ctx *Context) error {
	pages, err := parsePages(c.Pages)
	if err != nil {
		return err
	}
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return printResult(agent.ExtractPages(c.Input, pages, c.Output))
}

type PdfRotateCmd struct {
	Input    string `arg:"" help:"Input PDF file." type:"existingfile"`
	Rotation int    `arg:"" help:"Clockwise rotation: 90, 180, or 270."`
	Pages    string `help:"Page selection. Defaults to all pages."`
	Output   string `help:"Output filename." short:"o"`
}

func (c *PdfRotateCmd) Run(ctx *Context) error {
	pages, err := parsePages(c.Pages)
	if err != nil {
		return err
	}
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	return printResult(agent.Rotate(c.Input, c.Rotation, pages, c.Output))
}

type PdfInfoCmd struct {
	Input string `arg:"" help:"Input PDF file." type:"existingfile"`
}

func (c *PdfInfoCmd) Run(ctx *Context) error {
	agent, err := newAgent(ctx)
	if err != nil {
		return err
	}
	res := agent.Info(c.Input)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	for _, k := range []string{"title", "author", "encrypted"} {
		if v, ok := res.Metadata[k]; ok {
			fmt.Printf("  %s: %v\n", k, v)
		}
	}
	return nil
}
