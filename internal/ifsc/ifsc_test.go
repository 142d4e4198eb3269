package ifsc

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid public sector code", "SBIN0001234", true},
		{"valid private sector code", "HDFC0000128", true},
		{"valid with alphanumeric branch", "ICIC0DC0099", true},
		{"lowercase letters accepted", "sbin0001234", true},
		{"empty string", "", false},
		{"too short", "SBIN000123", false},
		{"too long", "SBIN00012345", false},
		{"digit in bank identifier", "SB1N0001234", false},
		{"fifth character not zero", "SBIN1001234", false},
		{"symbol in branch code", "SBIN000#234", false},
		{"space in branch code", "SBIN000 234", false},
		{"unicode letter rejected", "SBÉN0001234", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Validate(tt.code); got != tt.want {
				t.Fatalf("Validate(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestBankName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"state bank of india", "SBIN0001234", "STATE BANK OF INDIA"},
		{"icici", "ICIC0000001", "ICICI BANK"},
		{"axis uses UTIB identifier", "UTIB0000001", "AXIS BANK"},
		{"rbl uses RATN identifier", "RATN0000001", "RBL BANK"},
		{"co-op bank", "SRCB0000001", "SARASWAT BANK"},
		{"payments bank", "PYTM0000001", "PAYTM PAYMENTS BANK"},
		{"lowercase prefix normalised", "hdfc0000128", "HDFC BANK"},
		{"unmapped prefix falls back", "ZZZZ0001234", "ZZZZ BANK"},
		{"prefix alone resolves", "SBIN", "STATE BANK OF INDIA"},
		{"shorter than prefix", "SBI", "UNKNOWN BANK (SBI)"},
		{"empty code", "", "UNKNOWN BANK ()"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BankName(tt.code); got != tt.want {
				t.Fatalf("BankName(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestBankNameCoversAllMappedPrefixes(t *testing.T) {
	t.Parallel()

	for prefix, want := range bankNames {
		if got := BankName(prefix + "0001234"); got != want {
			t.Fatalf("BankName(%q...) = %q, want %q", prefix, got, want)
		}
	}
}
