package docx

import "testing"

func TestParagraphSetTextCollapsesRuns(t *testing.T) {
	t.Parallel()

	doc := New()
	p := doc.AddParagraph("one ")
	bold := p.AddRun("two")
	bold.SetBold(true)

	if got := p.Text(); got != "one two" {
		t.Fatalf("Text() = %q", got)
	}

	p.SetText("replaced")

	runs := p.Runs()
	if len(runs) != 1 {
		t.Fatalf("SetText left %d runs, want 1", len(runs))
	}
	if got := p.Text(); got != "replaced" {
		t.Fatalf("Text() after SetText = %q", got)
	}
	if runs[0].Bold() != nil {
		t.Fatal("SetText carried over run formatting")
	}
}

func TestParagraphSetTextKeepsParagraphProperties(t *testing.T) {
	t.Parallel()

	doc := New()
	p := doc.AddParagraph("aligned")
	p.SetAlignment("right")
	p.SetStyleID("Quote")

	p.SetText("new text")

	if a := p.Alignment(); a == nil || *a != "right" {
		t.Fatalf("alignment = %v, want right kept", a)
	}
	if s := p.StyleID(); s == nil || *s != "Quote" {
		t.Fatalf("style = %v, want Quote kept", s)
	}
}

func TestRunSizeHalfPoints(t *testing.T) {
	t.Parallel()

	doc := New()
	r := doc.AddParagraph("sized").Runs()[0]

	r.SetSize(8)

	out := saveAndReopen(t, doc)
	if sz := out.Paragraphs()[0].Runs()[0].Size(); sz == nil || *sz != 8 {
		t.Fatalf("size = %v, want 8 points across save", sz)
	}
}

func TestRunSettersOverwrite(t *testing.T) {
	t.Parallel()

	doc := New()
	r := doc.AddParagraph("x").Runs()[0]

	r.SetFontName("Garamond")
	r.SetFontName("Bookman Old Style")
	r.SetBold(true)
	r.SetBold(false)

	if n := r.FontName(); n == nil || *n != "Bookman Old Style" {
		t.Fatalf("font = %v", n)
	}
	if b := r.Bold(); b == nil || *b {
		t.Fatalf("bold = %v, want explicit false", b)
	}
}

func TestInheritedFormattingIsNil(t *testing.T) {
	t.Parallel()

	doc := New()
	p := doc.AddParagraph("plain")
	r := p.Runs()[0]

	if p.Alignment() != nil || p.StyleID() != nil {
		t.Fatal("new paragraph declares properties")
	}
	if !p.Spacing().IsZero() || !p.Indent().IsZero() {
		t.Fatal("new paragraph declares spacing or indent")
	}
	if r.FontName() != nil || r.Size() != nil || r.Bold() != nil || r.Color() != nil {
		t.Fatal("new run declares formatting")
	}
}
