package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"noticegen-web/internal/ifsc"
	"noticegen-web/internal/models"
	"noticegen-web/internal/notice"

	"github.com/xuri/excelize/v2"
)

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ParseRecipientsWithValidation reads a recipients file (.xlsx or .csv) and
// returns the valid rows together with per-row validation errors. Column roles
// are resolved by header name, so files with reordered or renamed columns
// still import.
func (s *ExcelService) ParseRecipientsWithValidation(filePath string) (*models.RecipientImportResult, error) {
	rows, err := s.readTabularRows(filePath)
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("file must contain at least header row and one data row")
	}

	cols, err := notice.DetectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &models.RecipientImportResult{
		ValidRecipients:  []models.BatchRecipient{},
		ValidationErrors: []models.RowValidationError{},
		TotalRows:        0,
		ValidCount:       0,
		ErrorCount:       0,
		ImportTime:       time.Now(),
	}

	// Process data rows
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		accountNo := strings.TrimSpace(getCellValue(row, cols.AccountNo))
		accountName := strings.TrimSpace(getCellValue(row, cols.AccountName))
		routingCode := strings.ToUpper(strings.TrimSpace(getCellValue(row, cols.RoutingCode)))

		// Skip completely empty rows
		if accountNo == "" && accountName == "" && routingCode == "" {
			continue
		}

		result.TotalRows++

		rowErrors := s.validateRecipientRow(i+1, accountNo, accountName, routingCode)

		if len(rowErrors) > 0 {
			result.ValidationErrors = append(result.ValidationErrors, rowErrors...)
			result.ErrorCount++
		} else {
			recipient := models.BatchRecipient{
				RowNumber:   i + 1,
				AccountNo:   accountNo,
				AccountName: accountName,
				RoutingCode: routingCode,
			}
			result.ValidRecipients = append(result.ValidRecipients, recipient)
			result.ValidCount++
		}
	}

	return result, nil
}

// validateRecipientRow validates a single recipient row and returns validation errors
func (s *ExcelService) validateRecipientRow(rowNum int, accountNo, accountName, routingCode string) []models.RowValidationError {
	var errors []models.RowValidationError

	if accountNo == "" {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Account Number",
			Value:   accountNo,
			Message: "Account Number is required",
		})
	} else if len(accountNo) > 50 {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Account Number",
			Value:   accountNo,
			Message: "Account Number cannot exceed 50 characters",
		})
	}

	if accountName == "" {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Account Name",
			Value:   accountName,
			Message: "Account Name is required",
		})
	} else if len(accountName) > 200 {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Account Name",
			Value:   accountName,
			Message: "Account Name cannot exceed 200 characters",
		})
	}

	if routingCode == "" {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "IFSC Code",
			Value:   routingCode,
			Message: "IFSC Code is required",
		})
	} else if !ifsc.Validate(routingCode) {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "IFSC Code",
			Value:   routingCode,
			Message: "IFSC Code must be 11 characters: 4 letters, '0', then 6 alphanumerics",
		})
	}

	return errors
}

// GenerateImportErrorReport creates an Excel report with import validation errors
func (s *ExcelService) GenerateImportErrorReport(result *models.RecipientImportResult, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Import Errors"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		"Row Number", "Field", "Error Message", "Invalid Value",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE6E6"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for rowIdx, rowError := range result.ValidationErrors {
		row := rowIdx + 2
		values := []interface{}{
			rowError.Row,
			rowError.Field,
			rowError.Message,
			rowError.Value,
		}

		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}

		errorStyle, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFFFCC"}, Pattern: 1},
		})
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", getColumnName(len(headers)-1), row), errorStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 60)
	f.SetColWidth(sheetName, "D", "D", 25)

	// Summary section
	summaryStartRow := len(result.ValidationErrors) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow), "Import Summary")
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+1), "Total Rows Processed:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+1), result.TotalRows)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+2), "Valid Recipients:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+2), result.ValidCount)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+3), "Errors Found:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+3), result.ErrorCount)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+4), "Success Rate:")
	if result.TotalRows > 0 {
		successRate := float64(result.ValidCount) / float64(result.TotalRows) * 100
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+4), fmt.Sprintf("%.1f%%", successRate))
	} else {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+4), "0.0%")
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryStartRow), fmt.Sprintf("A%d", summaryStartRow), summaryStyle)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// ExportBatches exports the batch list to an Excel file
func (s *ExcelService) ExportBatches(batches []models.NoticeBatch, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Notice Batches"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		"Batch Code", "Filename", "Tone", "Total Rows", "Invalid Rows",
		"Groups", "Generated", "Failed", "Status", "Created At",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for rowIdx, batch := range batches {
		row := rowIdx + 2
		values := []interface{}{
			batch.BatchCode,
			batch.Filename,
			batch.Tone,
			batch.TotalRows,
			batch.InvalidRows,
			batch.TotalGroups,
			batch.GeneratedCount,
			batch.FailedCount,
			batch.Status,
			batch.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	columnWidths := []float64{15, 30, 12, 12, 12, 10, 12, 10, 22, 20}
	for i, width := range columnWidths {
		colName := getColumnName(i)
		f.SetColWidth(sheetName, colName, colName, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filePath)
}

// ParseOverridesWithValidation reads a bank-override import file with columns
// Prefix, Bank Name, Is Active.
func (s *ExcelService) ParseOverridesWithValidation(filePath string) (*models.OverrideImportResult, error) {
	rows, err := s.readTabularRows(filePath)
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("file must contain at least header row and one data row")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid header format. Expected columns: Prefix, Bank Name, Is Active")
	}

	result := &models.OverrideImportResult{
		ValidOverrides:   []models.BankOverride{},
		ValidationErrors: []models.RowValidationError{},
		TotalRows:        0,
		ValidCount:       0,
		ErrorCount:       0,
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		prefix := strings.ToUpper(strings.TrimSpace(getCellValue(row, 0)))
		bankName := strings.TrimSpace(getCellValue(row, 1))
		isActiveStr := strings.TrimSpace(getCellValue(row, 2))

		if prefix == "" && bankName == "" {
			continue
		}

		result.TotalRows++

		rowErrors := s.validateOverrideRow(i+1, prefix, bankName, isActiveStr)

		if len(rowErrors) > 0 {
			result.ValidationErrors = append(result.ValidationErrors, rowErrors...)
			result.ErrorCount++
		} else {
			isActive := true
			if isActiveStr != "" {
				isActive = parseBoolValue(isActiveStr)
			}
			override := models.BankOverride{
				Prefix:   prefix,
				BankName: bankName,
				IsActive: isActive,
			}
			result.ValidOverrides = append(result.ValidOverrides, override)
			result.ValidCount++
		}
	}

	return result, nil
}

// validateOverrideRow validates a single override row and returns validation errors
func (s *ExcelService) validateOverrideRow(rowNum int, prefix, bankName, isActiveStr string) []models.RowValidationError {
	var errors []models.RowValidationError

	if prefix == "" {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Prefix",
			Value:   prefix,
			Message: "Prefix is required",
		})
	} else if len(prefix) != 4 || !isAlphabetic(prefix) {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Prefix",
			Value:   prefix,
			Message: "Prefix must be exactly 4 letters",
		})
	}

	if bankName == "" {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Bank Name",
			Value:   bankName,
			Message: "Bank Name is required",
		})
	} else if len(bankName) > 200 {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Bank Name",
			Value:   bankName,
			Message: "Bank Name cannot exceed 200 characters",
		})
	}

	if isActiveStr != "" && !isBooleanLike(isActiveStr) {
		errors = append(errors, models.RowValidationError{
			Row:     rowNum,
			Field:   "Is Active",
			Value:   isActiveStr,
			Message: "Is Active must be Yes/No, Y/N, 1/0, or true/false",
		})
	}

	return errors
}

// GenerateRecipientsTemplate creates a sample recipients file for upload
func (s *ExcelService) GenerateRecipientsTemplate(outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Recipients"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{"Account Number", "Account Name", "IFSC Code"}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	sampleData := [][]interface{}{
		{"10234567890", "RAJESH KUMAR", "SBIN0001234"},
		{"20345678901", "PRIYA SHARMA", "SBIN0001234"},
		{"30456789012", "AMIT PATEL", "HDFC0000456"},
		{"40567890123", "SUNITA VERMA", "ICIC0000789"},
		{"50678901234", "VIKRAM SINGH", "PUNB0112000"},
	}

	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 15)

	// Instructions live on their own sheet. Only the first sheet is read on
	// import, so leftover guidance never turns into validation errors.
	instructionsSheet := "Instructions"
	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return err
	}
	instructions := []string{
		"Instructions:",
		"1. Account Number: the recipient's bank account number",
		"2. Account Name: the account holder's name as it should appear in the notice",
		"3. IFSC Code: 11 characters - 4 letters, '0', then 6 alphanumerics (e.g. SBIN0001234)",
		"",
		"Rows sharing an IFSC code are grouped into one notice for that branch.",
		"Note: Do not modify the header row. Fill data starting from row 2.",
	}

	for i, instruction := range instructions {
		cell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(instructionsSheet, cell, instruction)
	}
	f.SetColWidth(instructionsSheet, "A", "A", 90)

	instructionStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F8FF"}, Pattern: 1},
	})
	f.SetCellStyle(instructionsSheet, "A1", "A1", instructionStyle)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// readTabularRows loads all rows from a .csv or spreadsheet file
func (s *ExcelService) readTabularRows(filePath string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV rows: %w", err)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

// Helper functions
func getCellValue(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return len(s) > 0
}

func isBooleanLike(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "no", "y", "n", "1", "0", "true", "false":
		return true
	}
	return false
}

func parseBoolValue(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "1", "true":
		return true
	}
	return false
}
