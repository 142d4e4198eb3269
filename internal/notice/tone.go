package notice

import (
	"strings"

	"noticegen-web/internal/docx"
)

// Tone selects the styling treatment applied to a notice document.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneUrgent   Tone = "urgent"
	ToneFriendly Tone = "friendly"
	// ToneAuto resolves to one of the above by scanning the template text.
	ToneAuto Tone = "auto"
)

var (
	urgentKeywords   = []string{"urgent", "immediate", "final notice", "last reminder"}
	friendlyKeywords = []string{"kindly", "please", "request", "cooperate"}
)

// DetectTone classifies a document by its body text: urgent keywords win
// over friendly ones; neither means formal.
func DetectTone(doc *docx.Document) Tone {
	var b strings.Builder
	for _, p := range doc.Paragraphs() {
		b.WriteString(p.Text())
		b.WriteString(" ")
	}
	text := strings.ToLower(b.String())
	for _, k := range urgentKeywords {
		if strings.Contains(text, k) {
			return ToneUrgent
		}
	}
	for _, k := range friendlyKeywords {
		if strings.Contains(text, k) {
			return ToneFriendly
		}
	}
	return ToneFormal
}

// resolveTone turns auto into a detected tone and coerces anything outside
// the known set to formal.
func resolveTone(doc *docx.Document, tone Tone) Tone {
	if tone == ToneAuto {
		tone = DetectTone(doc)
	}
	switch tone {
	case ToneFormal, ToneUrgent, ToneFriendly:
		return tone
	}
	return ToneFormal
}

// applyTone styles the document for the given (resolved) tone. Urgent
// emboldens and darkens paragraphs mentioning "notice" or "urgent"; every
// tone left-aligns body paragraphs and centers tables with vertically
// centered cells. Run fonts are never touched here — the accounts table and
// nodal paragraphs get their fonts from the template baseline afterwards.
func applyTone(doc *docx.Document, tone Tone) {
	for _, p := range doc.Paragraphs() {
		if tone == ToneUrgent {
			text := strings.ToLower(p.Text())
			if strings.Contains(text, "notice") || strings.Contains(text, "urgent") {
				for _, r := range p.Runs() {
					r.SetBold(true)
					r.SetColor("990000")
				}
			}
		}
		p.SetAlignment("left")
	}
	for _, table := range doc.Tables() {
		table.SetAlignment("center")
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				cell.SetVerticalAlignment("center")
			}
		}
	}
}
