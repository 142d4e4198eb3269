package notice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"noticegen-web/internal/docx"
)

func writeTemplate(t *testing.T) string {
	t.Helper()
	doc := docx.New()
	doc.AddParagraph("NOTICE")
	doc.AddParagraph("To the Manager, ICICI BANK")
	addAccountsTable(doc, 1)
	doc.AddParagraph("Nodal Officer")
	doc.AddParagraph("Bank Name Here")
	path := filepath.Join(t.TempDir(), "template.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("save template: %v", err)
	}
	return path
}

func TestGeneratorGenerate(t *testing.T) {
	t.Parallel()

	grouped, invalid := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", AccountName: "Rohit Shah", RoutingCode: "HDFC0000001"},
		{AccountNo: "1003", AccountName: "Meena Iyer", RoutingCode: "SBIN0001234"},
	})
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid codes %v", invalid)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	gen := &Generator{
		TemplatePath: writeTemplate(t),
		OutputDir:    outDir,
	}

	summary, err := gen.Generate(context.Background(), grouped)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if summary.Groups != 2 || summary.Generated != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	sbinPath := filepath.Join(outDir, "Notice_STATE_BANK_OF_INDIA_SBIN0001234.docx")
	hdfcPath := filepath.Join(outDir, "Notice_HDFC_BANK_HDFC0000001.docx")
	for _, p := range []string{sbinPath, hdfcPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected output %s: %v", p, err)
		}
	}

	out, err := docx.Open(sbinPath)
	if err != nil {
		t.Fatalf("reopen output: %v", err)
	}
	var joined strings.Builder
	for _, p := range out.Paragraphs() {
		joined.WriteString(p.Text())
		joined.WriteString("\n")
	}
	if !strings.Contains(joined.String(), "To the Manager, STATE BANK OF INDIA") {
		t.Fatalf("placeholder not replaced in output:\n%s", joined.String())
	}
	if strings.Contains(joined.String(), "ICICI BANK") {
		t.Fatalf("placeholder text survived in output:\n%s", joined.String())
	}

	tables := out.Tables()
	if len(tables) != 1 {
		t.Fatalf("output has %d tables, want 1", len(tables))
	}
	rows := tables[0].Rows()
	if len(rows) != 3 {
		t.Fatalf("accounts table has %d rows, want header + 2", len(rows))
	}
	if got := tables[0].Cell(1, 0).Text(); got != "1001" {
		t.Fatalf("first data cell = %q, want 1001", got)
	}
	if got := tables[0].Cell(2, 2).Text(); got != "SBIN0001234" {
		t.Fatalf("last routing cell = %q", got)
	}
}

func visibleText(t *testing.T, path string) string {
	t.Helper()
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	var b strings.Builder
	for _, p := range doc.Paragraphs() {
		b.WriteString(p.Text())
		b.WriteString("\n")
	}
	for _, tbl := range doc.Tables() {
		for _, row := range tbl.Rows() {
			for _, cell := range row.Cells() {
				b.WriteString(cell.Text())
				b.WriteString("|")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func TestGeneratorIdempotent(t *testing.T) {
	t.Parallel()

	grouped, _ := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", AccountName: "Rohit Shah", RoutingCode: "SBIN0001234"},
	})

	template := writeTemplate(t)
	name := "Notice_STATE_BANK_OF_INDIA_SBIN0001234.docx"

	first := t.TempDir()
	second := t.TempDir()
	for _, dir := range []string{first, second} {
		gen := &Generator{TemplatePath: template, OutputDir: dir}
		if _, err := gen.Generate(context.Background(), grouped); err != nil {
			t.Fatalf("Generate into %s: %v", dir, err)
		}
	}

	got := visibleText(t, filepath.Join(second, name))
	want := visibleText(t, filepath.Join(first, name))
	if got != want {
		t.Fatalf("second run text differs from first:\n--- first ---\n%s\n--- second ---\n%s", want, got)
	}
}

func TestGeneratorContinuesOnFailure(t *testing.T) {
	t.Parallel()

	grouped, _ := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", RoutingCode: "HDFC0000001"},
	})

	gen := &Generator{
		TemplatePath: filepath.Join(t.TempDir(), "missing.docx"),
		OutputDir:    t.TempDir(),
	}

	summary, err := gen.Generate(context.Background(), grouped)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if summary.Generated != 0 || summary.Failed != 2 {
		t.Fatalf("summary = %+v, want 2 failures", summary)
	}
	for _, res := range summary.Results {
		var genErr *GenerateError
		if !errors.As(res.Err, &genErr) {
			t.Fatalf("result error is %T, want *GenerateError", res.Err)
		}
		if genErr.RoutingCode != res.RoutingCode {
			t.Fatalf("error code %q != result code %q", genErr.RoutingCode, res.RoutingCode)
		}
	}
}

func TestGeneratorResolveBankOverride(t *testing.T) {
	t.Parallel()

	grouped, _ := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", RoutingCode: "SBIN0001234"},
	})

	outDir := t.TempDir()
	gen := &Generator{
		TemplatePath: writeTemplate(t),
		OutputDir:    outDir,
		ResolveBank: func(code string) string {
			return "SBI RETAIL"
		},
	}

	summary, err := gen.Generate(context.Background(), grouped)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if summary.Results[0].BankName != "SBI RETAIL" {
		t.Fatalf("bank name = %q, want override", summary.Results[0].BankName)
	}
	if _, err := os.Stat(filepath.Join(outDir, "Notice_SBI_RETAIL_SBIN0001234.docx")); err != nil {
		t.Fatalf("override not reflected in filename: %v", err)
	}
}

func TestGeneratorProgressCallback(t *testing.T) {
	t.Parallel()

	grouped, _ := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", RoutingCode: "HDFC0000001"},
	})

	var calls []int
	gen := &Generator{
		TemplatePath: writeTemplate(t),
		OutputDir:    t.TempDir(),
		OnNotice: func(done, total int, res NoticeResult) {
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			calls = append(calls, done)
		},
	}

	if _, err := gen.Generate(context.Background(), grouped); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("progress calls = %v, want [1 2]", calls)
	}
}

func TestGeneratorCancelledContext(t *testing.T) {
	t.Parallel()

	grouped, _ := GroupByRoutingCode([]AccountRecord{
		{AccountNo: "1001", RoutingCode: "SBIN0001234"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &Generator{
		TemplatePath: writeTemplate(t),
		OutputDir:    t.TempDir(),
	}

	summary, err := gen.Generate(ctx, grouped)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if summary == nil || len(summary.Results) != 0 {
		t.Fatalf("cancelled run still produced results: %+v", summary)
	}
}

func TestOutputFilename(t *testing.T) {
	t.Parallel()

	got := OutputFilename("STATE BANK OF INDIA", "SBIN0001234")
	want := "Notice_STATE_BANK_OF_INDIA_SBIN0001234.docx"
	if got != want {
		t.Fatalf("OutputFilename = %q, want %q", got, want)
	}
}
