package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"noticegen-web/internal/docx"
)

func main() {
	for _, dir := range []string{
		filepath.Join("storage", "uploads"),
		filepath.Join("storage", "templates"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("Error creating directory %s: %v\n", dir, err)
			return
		}
	}

	// Create recipients workbook
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Account Recipients"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		fmt.Printf("Error creating sheet: %v\n", err)
		return
	}

	// Headers use the abbreviated/holder variants on purpose so the
	// flexible column matching gets exercised, not just canonical names.
	headers := []string{"A/c No", "Account Holder Name", "IFSC Code"}

	// Write headers
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	// Set header style
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	// Test data across six branches:
	// - SBIN0001234 / SBIN0000691 = two branches of STATE BANK OF INDIA
	// - HDFC0000128, ICIC0DC0099, PUNB0054000, UTIB0000004 = one branch each
	// - ZZZZ0001111 = well-formed code with an unknown prefix ("ZZZZ BANK")
	// The last three rows carry invalid codes to exercise skip reporting.
	testData := [][]interface{}{
		{"30012456789012", "Ramesh Kumar", "SBIN0001234"},
		{"30012456789023", "Sunita Devi", "SBIN0001234"},
		{"30012456789034", "Arvind Sharma", "SBIN0001234"},
		{"65110055443321", "Meena Gupta", "SBIN0000691"},

		{"50100233445566", "Rajesh Patel", "HDFC0000128"},
		{"50100233445577", "Kavita Joshi", "HDFC0000128"},

		{"000401567890", "Suresh Reddy", "ICIC0DC0099"},
		{"000401567891", "Lakshmi Narayan", "ICIC0DC0099"},

		{"0541000100223344", "Harpreet Singh", "PUNB0054000"},
		{"0541000100223355", "Gurmeet Kaur", "PUNB0054000"},

		{"911010032456789", "Anil Deshmukh", "UTIB0000004"},

		{"779988001122", "Prakash Rao", "ZZZZ0001111"},

		{"1234567890", "Dinesh Verma", "SBIN123"},
		{"9988776655", "Pooja Mehta", "12340001234"},
		{"5544332211", "Vikram Malhotra", ""},
	}

	// Write test data
	for rowIdx, rowData := range testData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Set column widths
	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 16)

	// Add instructions sheet
	instructionsSheet := "Instructions"
	_, err = f.NewSheet(instructionsSheet)
	if err != nil {
		fmt.Printf("Error creating instructions sheet: %v\n", err)
		return
	}
	f.SetCellValue(instructionsSheet, "A1", "SAMPLE RECIPIENTS - INSTRUCTIONS")
	f.SetCellValue(instructionsSheet, "A3", "This file exercises the recipients import and per-branch notice generation.")
	f.SetCellValue(instructionsSheet, "A5", "Branches covered:")
	f.SetCellValue(instructionsSheet, "A6", "1. SBIN0001234 -> STATE BANK OF INDIA (3 accounts)")
	f.SetCellValue(instructionsSheet, "A7", "2. SBIN0000691 -> STATE BANK OF INDIA, second branch (1 account)")
	f.SetCellValue(instructionsSheet, "A8", "3. HDFC0000128 -> HDFC BANK (2 accounts)")
	f.SetCellValue(instructionsSheet, "A9", "4. ICIC0DC0099 -> ICICI BANK, alphanumeric branch code (2 accounts)")
	f.SetCellValue(instructionsSheet, "A10", "5. PUNB0054000 -> PUNJAB NATIONAL BANK (2 accounts)")
	f.SetCellValue(instructionsSheet, "A11", "6. UTIB0000004 -> AXIS BANK (1 account)")
	f.SetCellValue(instructionsSheet, "A12", "7. ZZZZ0001111 -> unknown prefix, resolves to 'ZZZZ BANK' (1 account)")
	f.SetCellValue(instructionsSheet, "A14", "Invalid rows (reported and skipped, never generated):")
	f.SetCellValue(instructionsSheet, "A15", "- Row 14: 'SBIN123' is too short")
	f.SetCellValue(instructionsSheet, "A16", "- Row 15: '12340001234' has digits in the bank identifier")
	f.SetCellValue(instructionsSheet, "A17", "- Row 16: IFSC code is empty")
	f.SetCellValue(instructionsSheet, "A19", "Expected result: 13 accounts across 7 branch notices, 3 rows skipped.")

	f.DeleteSheet("Sheet1")

	// Save recipients file
	recipientsPath := filepath.Join("storage", "uploads", "sample_recipients.xlsx")
	if err := f.SaveAs(recipientsPath); err != nil {
		fmt.Printf("Error saving recipients file: %v\n", err)
		return
	}

	fmt.Printf("✓ Sample recipients file created: %s\n", recipientsPath)
	fmt.Printf("  Total rows: %d (3 with invalid IFSC codes)\n", len(testData))

	// Create notice template document
	templatePath := filepath.Join("storage", "templates", "sample_notice_template.docx")
	if err := buildSampleTemplate(templatePath); err != nil {
		fmt.Printf("Error saving template file: %v\n", err)
		return
	}

	fmt.Printf("✓ Sample notice template created: %s\n", templatePath)
	fmt.Printf("  Placeholder: \"ICICI BANK\", accounts table: 3 columns\n")
	fmt.Printf("\nUpload the template on the Templates page, then upload the recipients file to start a batch.\n")
}

// buildSampleTemplate writes a minimal but complete notice template: the
// placeholder in the address block, subject and signature, a 3-column
// accounts table, and a "Nodal Officer" label above a styled name line.
func buildSampleTemplate(path string) error {
	const (
		placeholder = "ICICI BANK"
		fontName    = "Bookman Old Style"
		fontSize    = 8
	)

	doc := docx.New()

	addLine := func(text string, bold bool, align string) {
		p := doc.AddParagraph(text)
		if align != "" {
			p.SetAlignment(align)
		}
		for _, r := range p.Runs() {
			r.SetFontName(fontName)
			r.SetSize(fontSize)
			if bold {
				r.SetBold(true)
			}
		}
	}

	addLine("OFFICE OF THE RECOVERY OFFICER", true, "center")
	addLine("4th Floor, Revenue Bhavan, Station Road, Pune - 411001", false, "center")
	doc.AddParagraph("")
	addLine("To,", false, "")
	addLine("The Branch Manager,", false, "")
	addLine(placeholder, true, "")
	doc.AddParagraph("")
	addLine("Subject: Verification of account holder details - "+placeholder, true, "")
	doc.AddParagraph("")
	addLine("Sir/Madam,", false, "")
	addLine("The accounts listed below are maintained with your branch. You are requested to "+
		"verify the particulars on record and report discrepancies, if any, to this office "+
		"within fifteen days of receipt of this notice.", false, "")
	doc.AddParagraph("")

	table := doc.AddTable(2, 3)
	tableHeaders := []string{"Account Number", "Account Holder Name", "IFSC Code"}
	widths := []int{2600, 4400, 2400}
	for col, text := range tableHeaders {
		cell := table.Cell(0, col)
		cell.SetText(text)
		cell.SetWidth(widths[col])
		for _, p := range cell.Paragraphs() {
			for _, r := range p.Runs() {
				r.SetFontName(fontName)
				r.SetSize(fontSize)
				r.SetBold(true)
			}
		}
	}
	// One sample data row so the template reads as a finished document.
	// Generation replaces everything below the header anyway.
	sample := []string{"XXXXXXXXXXXXXX", "Sample Account Holder", "XXXX0000000"}
	for col, text := range sample {
		cell := table.Cell(1, col)
		cell.SetText(text)
		cell.SetWidth(widths[col])
		for _, p := range cell.Paragraphs() {
			for _, r := range p.Runs() {
				r.SetFontName(fontName)
				r.SetSize(fontSize)
			}
		}
	}
	table.SetAllBorders(8, "000000")

	doc.AddParagraph("")
	addLine("This notice is issued with the approval of the competent authority.", false, "")
	doc.AddParagraph("")
	addLine("Yours faithfully,", false, "")
	doc.AddParagraph("")
	addLine("Nodal Officer", false, "")
	addLine(placeholder, true, "")
	addLine("Recovery Cell", false, "")

	return doc.Save(path)
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return result
}
