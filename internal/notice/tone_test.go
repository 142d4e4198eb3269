package notice

import (
	"testing"

	"noticegen-web/internal/docx"
)

func TestDetectTone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paras []string
		want  Tone
	}{
		{"urgent keyword", []string{"This is a FINAL NOTICE to your branch"}, ToneUrgent},
		{"immediate counts as urgent", []string{"Immediate action is required"}, ToneUrgent},
		{"friendly keyword", []string{"You are kindly requested to verify"}, ToneFriendly},
		{"please counts as friendly", []string{"Please verify the accounts below"}, ToneFriendly},
		{"urgent wins over friendly", []string{"Kindly note", "this is urgent"}, ToneUrgent},
		{"neither keyword", []string{"To the Branch Manager", "Accounts listed below"}, ToneFormal},
		{"empty document", nil, ToneFormal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := docx.New()
			for _, text := range tt.paras {
				doc.AddParagraph(text)
			}
			if got := DetectTone(doc); got != tt.want {
				t.Fatalf("DetectTone() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTone(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	doc.AddParagraph("This is the last reminder for your branch")

	tests := []struct {
		name string
		tone Tone
		want Tone
	}{
		{"explicit formal", ToneFormal, ToneFormal},
		{"explicit urgent", ToneUrgent, ToneUrgent},
		{"explicit friendly", ToneFriendly, ToneFriendly},
		{"auto detects from text", ToneAuto, ToneUrgent},
		{"unknown coerces to formal", Tone("shouty"), ToneFormal},
		{"empty coerces to formal", Tone(""), ToneFormal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveTone(doc, tt.tone); got != tt.want {
				t.Fatalf("resolveTone(%q) = %q, want %q", tt.tone, got, tt.want)
			}
		})
	}
}

func TestApplyToneUrgent(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	hot := doc.AddParagraph("NOTICE of frozen accounts")
	cold := doc.AddParagraph("List of accounts held at your branch")
	table := doc.AddTable(2, 3)

	applyTone(doc, ToneUrgent)

	for _, r := range hot.Runs() {
		if b := r.Bold(); b == nil || !*b {
			t.Fatalf("notice paragraph run not bold")
		}
		if c := r.Color(); c == nil || *c != "990000" {
			t.Fatalf("notice paragraph run color = %v, want 990000", c)
		}
	}
	for _, r := range cold.Runs() {
		if r.Bold() != nil {
			t.Fatalf("plain paragraph run was emboldened")
		}
		if r.Color() != nil {
			t.Fatalf("plain paragraph run was recolored")
		}
	}
	for _, p := range doc.Paragraphs() {
		if a := p.Alignment(); a == nil || *a != "left" {
			t.Fatalf("paragraph alignment = %v, want left", a)
		}
	}
	if a := table.Alignment(); a == nil || *a != "center" {
		t.Fatalf("table alignment = %v, want center", a)
	}
}

func TestApplyToneFormalLeavesRunsAlone(t *testing.T) {
	t.Parallel()

	doc := docx.New()
	p := doc.AddParagraph("NOTICE of frozen accounts")

	applyTone(doc, ToneFormal)

	for _, r := range p.Runs() {
		if r.Bold() != nil || r.Color() != nil {
			t.Fatalf("formal tone modified run formatting")
		}
	}
	if a := p.Alignment(); a == nil || *a != "left" {
		t.Fatalf("paragraph alignment = %v, want left", a)
	}
}
