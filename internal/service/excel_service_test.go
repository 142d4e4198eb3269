package service

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"noticegen-web/internal/models"
	"noticegen-web/internal/notice"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestParseRecipientsWithValidation(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "recipients.csv",
		"A/c No,Beneficiary Name,IFSC\n"+
			"1001,Asha Verma,sbin0001234\n"+
			"1002,,HDFC0000001\n"+
			",,\n"+
			"1003,Rohit Shah,BADCODE\n"+
			"1004,Meera Nair,ICIC0DC0099\n")

	result, err := NewExcelService().ParseRecipientsWithValidation(path)
	if err != nil {
		t.Fatalf("ParseRecipientsWithValidation: %v", err)
	}

	if result.TotalRows != 4 || result.ValidCount != 2 || result.ErrorCount != 2 {
		t.Fatalf("counts = %d/%d/%d, want 4/2/2",
			result.TotalRows, result.ValidCount, result.ErrorCount)
	}

	// Row numbers follow sheet positions, so the blank row leaves a gap and
	// the routing code comes back uppercased.
	want := []models.BatchRecipient{
		{RowNumber: 2, AccountNo: "1001", AccountName: "Asha Verma", RoutingCode: "SBIN0001234"},
		{RowNumber: 6, AccountNo: "1004", AccountName: "Meera Nair", RoutingCode: "ICIC0DC0099"},
	}
	if !reflect.DeepEqual(result.ValidRecipients, want) {
		t.Fatalf("ValidRecipients = %+v, want %+v", result.ValidRecipients, want)
	}

	if len(result.ValidationErrors) != 2 {
		t.Fatalf("ValidationErrors = %+v, want 2 entries", result.ValidationErrors)
	}
	if e := result.ValidationErrors[0]; e.Row != 3 || e.Field != "Account Name" {
		t.Fatalf("first error = %+v, want row 3 Account Name", e)
	}
	if e := result.ValidationErrors[1]; e.Row != 5 || e.Field != "IFSC Code" || e.Value != "BADCODE" {
		t.Fatalf("second error = %+v, want row 5 IFSC Code", e)
	}
}

func TestParseRecipientsWithValidationHeaderOnly(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "recipients.csv", "Account Number,Account Name,IFSC Code\n")

	if _, err := NewExcelService().ParseRecipientsWithValidation(path); err == nil {
		t.Fatal("ParseRecipientsWithValidation succeeded with no data rows")
	}
}

func TestParseRecipientsWithValidationMissingColumns(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "recipients.csv", "Foo,Bar\n1,2\n")

	_, err := NewExcelService().ParseRecipientsWithValidation(path)
	if err == nil {
		t.Fatal("ParseRecipientsWithValidation succeeded with unusable headers")
	}
	var colErr *notice.ColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("error is %T, want *notice.ColumnError", err)
	}
}

func TestParseOverridesWithValidation(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "overrides.csv",
		"Prefix,Bank Name,Is Active\n"+
			"sbin,State Bank of India,Yes\n"+
			"HDFC,HDFC Bank,\n"+
			"ICIC,ICICI Bank,0\n"+
			"AB12,Digit Bank,1\n"+
			",Missing Prefix Bank,\n"+
			"PUNB,,n\n"+
			"UTIB,Axis Bank,maybe\n")

	result, err := NewExcelService().ParseOverridesWithValidation(path)
	if err != nil {
		t.Fatalf("ParseOverridesWithValidation: %v", err)
	}

	if result.TotalRows != 7 || result.ValidCount != 3 || result.ErrorCount != 4 {
		t.Fatalf("counts = %d/%d/%d, want 7/3/4",
			result.TotalRows, result.ValidCount, result.ErrorCount)
	}

	// Prefixes are uppercased; a blank Is Active defaults to true.
	want := []models.BankOverride{
		{Prefix: "SBIN", BankName: "State Bank of India", IsActive: true},
		{Prefix: "HDFC", BankName: "HDFC Bank", IsActive: true},
		{Prefix: "ICIC", BankName: "ICICI Bank", IsActive: false},
	}
	if !reflect.DeepEqual(result.ValidOverrides, want) {
		t.Fatalf("ValidOverrides = %+v, want %+v", result.ValidOverrides, want)
	}
}

func TestGenerateRecipientsTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewExcelService()
	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := svc.GenerateRecipientsTemplate(path); err != nil {
		t.Fatalf("GenerateRecipientsTemplate: %v", err)
	}

	// The shipped sample rows must pass the import validation they document.
	result, err := svc.ParseRecipientsWithValidation(path)
	if err != nil {
		t.Fatalf("ParseRecipientsWithValidation: %v", err)
	}
	if result.ValidCount == 0 || result.ErrorCount != 0 {
		t.Fatalf("template sample rows = %d valid, %d errors; want all valid",
			result.ValidCount, result.ErrorCount)
	}
}

func TestGenerateImportErrorReport(t *testing.T) {
	t.Parallel()

	result := &models.RecipientImportResult{
		TotalRows:  3,
		ValidCount: 1,
		ErrorCount: 2,
		ValidationErrors: []models.RowValidationError{
			{Row: 2, Field: "IFSC Code", Value: "XYZ", Message: "IFSC Code must be 11 characters: 4 letters, '0', then 6 alphanumerics"},
			{Row: 3, Field: "Account Name", Value: "", Message: "Account Name is required"},
		},
	}

	path := filepath.Join(t.TempDir(), "errors.xlsx")
	if err := NewExcelService().GenerateImportErrorReport(result, path); err != nil {
		t.Fatalf("GenerateImportErrorReport: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	const sheet = "Import Errors"
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil || header != "Row Number" {
		t.Fatalf("A1 = %q (err %v), want Row Number", header, err)
	}
	firstRow, _ := f.GetCellValue(sheet, "A2")
	if firstRow != "2" {
		t.Fatalf("A2 = %q, want 2", firstRow)
	}
	// Summary block starts after the error rows.
	summary, _ := f.GetCellValue(sheet, "A6")
	if summary != "Import Summary" {
		t.Fatalf("A6 = %q, want Import Summary", summary)
	}
	total, _ := f.GetCellValue(sheet, "B7")
	if total != "3" {
		t.Fatalf("B7 = %q, want 3", total)
	}
}
