package notice

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		want    Columns
	}{
		{
			name:    "canonical names",
			headers: []string{"Account Number", "Account Name", "IFSC Code"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			name:    "abbreviated names",
			headers: []string{"A/C No", "Beneficiary Name", "IFSC"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			name:    "holder variants",
			headers: []string{"Acc No.", "Account Holder", "Branch IFSC"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			name:    "acno without separator",
			headers: []string{"AcNo", "Name of Holder", "ifsc code"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			name:    "shuffled order",
			headers: []string{"IFSC", "Account Name", "Account #"},
			want:    Columns{AccountNo: 2, AccountName: 1, RoutingCode: 0},
		},
		{
			name:    "untrimmed headers",
			headers: []string{"  Account Number ", " Account Name", "IFSC\t"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			// "Account Name" carries "name", so the number matcher must not
			// claim it even though it contains "account" and "no" is absent.
			name:    "name excluded from number role",
			headers: []string{"Account Name", "Account Number", "IFSC"},
			want:    Columns{AccountNo: 1, AccountName: 0, RoutingCode: 2},
		},
		{
			// A header satisfying the number matcher is consumed by it and
			// never considered for the routing role, even when it mentions
			// IFSC too.
			name:    "one role per header",
			headers: []string{"Account No IFSC", "Account Holder", "IFSC"},
			want:    Columns{AccountNo: 0, AccountName: 1, RoutingCode: 2},
		},
		{
			name:    "first matching header wins",
			headers: []string{"Account Number", "Acc No", "Account Name", "IFSC"},
			want:    Columns{AccountNo: 0, AccountName: 2, RoutingCode: 3},
		},
		{
			name:    "extra columns ignored",
			headers: []string{"Sr No.", "Account Number", "Branch", "Account Name", "Amount", "IFSC Code"},
			want:    Columns{AccountNo: 1, AccountName: 3, RoutingCode: 5},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectColumns(tt.headers)
			if err != nil {
				t.Fatalf("DetectColumns(%v) error: %v", tt.headers, err)
			}
			if got != tt.want {
				t.Fatalf("DetectColumns(%v) = %+v, want %+v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestDetectColumnsMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:        "no recognizable headers",
			headers:     []string{"Col A", "Col B"},
			wantMissing: []string{"account number", "account name", "ifsc code"},
		},
		{
			name:        "only ifsc missing",
			headers:     []string{"Account Number", "Account Name", "Routing"},
			wantMissing: []string{"ifsc code"},
		},
		{
			name:        "only name missing",
			headers:     []string{"Account Number", "IFSC"},
			wantMissing: []string{"account name"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DetectColumns(tt.headers)
			if err == nil {
				t.Fatalf("DetectColumns(%v) succeeded, want error", tt.headers)
			}
			var colErr *ColumnError
			if !errors.As(err, &colErr) {
				t.Fatalf("error is %T, want *ColumnError", err)
			}
			if !reflect.DeepEqual(colErr.Missing, tt.wantMissing) {
				t.Fatalf("Missing = %v, want %v", colErr.Missing, tt.wantMissing)
			}
			if !reflect.DeepEqual(colErr.Available, tt.headers) {
				t.Fatalf("Available = %v, want %v", colErr.Available, tt.headers)
			}
		})
	}
}
