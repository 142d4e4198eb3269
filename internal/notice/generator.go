package notice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"noticegen-web/internal/docx"
	"noticegen-web/internal/ifsc"
)

// GenerateError reports a single notice that could not be produced. The
// batch continues past it.
type GenerateError struct {
	RoutingCode string
	BankName    string
	Err         error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate notice for %s (%s): %v", e.BankName, e.RoutingCode, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// NoticeResult is the outcome of one group's notice.
type NoticeResult struct {
	RoutingCode string
	BankName    string
	Filename    string
	RecordCount int
	Err         error
}

// Summary totals a generation run.
type Summary struct {
	Groups    int
	Generated int
	Failed    int
	Results   []NoticeResult
}

// Generator produces one notice document per routing-code group from a
// single template. Groups are processed sequentially in grouped order; a
// failed group is recorded and the run continues.
type Generator struct {
	TemplatePath string
	OutputDir    string
	Options      Options

	// ResolveBank maps a routing code to a display name. Nil means
	// ifsc.BankName; the service layer installs its override layer here.
	ResolveBank func(code string) string

	// OnNotice, when set, observes each finished notice with running
	// progress counts.
	OnNotice func(done, total int, res NoticeResult)
}

// Generate writes one notice per group into OutputDir. The returned summary
// is complete even when individual notices fail; only output-directory
// creation and context cancellation abort the run, and a cancelled run
// still returns the partial summary.
func (g *Generator) Generate(ctx context.Context, grouped *GroupedRecords) (*Summary, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	opts := g.Options.withDefaults()
	total := grouped.Len()
	summary := &Summary{Groups: total}

	for _, code := range grouped.Codes() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		records := grouped.Records(code)
		bank := g.bankName(code)
		res := NoticeResult{
			RoutingCode: code,
			BankName:    bank,
			Filename:    OutputFilename(bank, code),
			RecordCount: len(records),
		}

		if err := g.generateOne(res.Filename, bank, records, opts); err != nil {
			res.Err = &GenerateError{RoutingCode: code, BankName: bank, Err: err}
			summary.Failed++
		} else {
			summary.Generated++
		}
		summary.Results = append(summary.Results, res)

		if g.OnNotice != nil {
			g.OnNotice(len(summary.Results), total, res)
		}
	}
	return summary, nil
}

func (g *Generator) generateOne(filename, bankName string, records []AccountRecord, opts Options) error {
	doc, err := docx.Open(g.TemplatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	BuildNotice(doc, bankName, records, opts)
	if err := doc.Save(filepath.Join(g.OutputDir, filename)); err != nil {
		return fmt.Errorf("save notice: %w", err)
	}
	return nil
}

func (g *Generator) bankName(code string) string {
	if g.ResolveBank != nil {
		return g.ResolveBank(code)
	}
	return ifsc.BankName(code)
}

// OutputFilename derives the per-branch document name:
// Notice_<bank name with spaces as underscores>_<routing code>.docx.
func OutputFilename(bankName, routingCode string) string {
	return fmt.Sprintf("Notice_%s_%s.docx", strings.ReplaceAll(bankName, " ", "_"), routingCode)
}
