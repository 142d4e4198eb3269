package notice

import (
	"reflect"
	"testing"
)

func TestGroupByRoutingCode(t *testing.T) {
	t.Parallel()

	rows := []AccountRecord{
		{AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", AccountName: "Rohit Shah", RoutingCode: "HDFC0000001"},
		{AccountNo: "1003", AccountName: "Meena Iyer", RoutingCode: "SBIN0001234"},
	}

	grouped, invalid := GroupByRoutingCode(rows)

	if len(invalid) != 0 {
		t.Fatalf("invalid = %v, want none", invalid)
	}
	wantCodes := []string{"SBIN0001234", "HDFC0000001"}
	if !reflect.DeepEqual(grouped.Codes(), wantCodes) {
		t.Fatalf("Codes() = %v, want %v", grouped.Codes(), wantCodes)
	}
	if got := len(grouped.Records("SBIN0001234")); got != 2 {
		t.Fatalf("SBIN group has %d records, want 2", got)
	}
	if got := len(grouped.Records("HDFC0000001")); got != 1 {
		t.Fatalf("HDFC group has %d records, want 1", got)
	}
	sbin := grouped.Records("SBIN0001234")
	if sbin[0].AccountNo != "1001" || sbin[1].AccountNo != "1003" {
		t.Fatalf("SBIN group out of input order: %+v", sbin)
	}
}

func TestGroupByRoutingCodeNormalizesCodes(t *testing.T) {
	t.Parallel()

	rows := []AccountRecord{
		{AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "  sbin0001234  "},
	}

	grouped, invalid := GroupByRoutingCode(rows)

	if len(invalid) != 0 {
		t.Fatalf("invalid = %v, want none", invalid)
	}
	recs := grouped.Records("SBIN0001234")
	if len(recs) != 1 {
		t.Fatalf("normalized code did not group: codes = %v", grouped.Codes())
	}
	if recs[0].RoutingCode != "SBIN0001234" {
		t.Fatalf("record code = %q, want normalized SBIN0001234", recs[0].RoutingCode)
	}
}

func TestGroupByRoutingCodeRejectsInvalid(t *testing.T) {
	t.Parallel()

	rows := []AccountRecord{
		{AccountNo: "1001", RoutingCode: "SBIN0001234"},
		{AccountNo: "1002", RoutingCode: "BADCODE"},
		{AccountNo: "1003", RoutingCode: "sbin1001234"}, // fifth char not 0
		{AccountNo: "1004", RoutingCode: "HDFC0000001"},
		{AccountNo: "1005", RoutingCode: ""},
	}

	grouped, invalid := GroupByRoutingCode(rows)

	wantInvalid := []string{"BADCODE", "SBIN1001234", ""}
	if !reflect.DeepEqual(invalid, wantInvalid) {
		t.Fatalf("invalid = %v, want %v", invalid, wantInvalid)
	}
	for _, code := range invalid {
		if grouped.Records(code) != nil {
			t.Fatalf("invalid code %q appears as group key", code)
		}
	}
	if grouped.TotalRecords()+len(invalid) != len(rows) {
		t.Fatalf("records not conserved: %d grouped + %d invalid != %d rows",
			grouped.TotalRecords(), len(invalid), len(rows))
	}
}

func TestGroupByRoutingCodeEmpty(t *testing.T) {
	t.Parallel()

	grouped, invalid := GroupByRoutingCode(nil)
	if grouped.Len() != 0 || grouped.TotalRecords() != 0 {
		t.Fatalf("empty input grouped to %d groups", grouped.Len())
	}
	if invalid != nil {
		t.Fatalf("empty input produced invalid codes %v", invalid)
	}
}
