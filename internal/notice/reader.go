package notice

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRecords loads recipient rows from an .xlsx or .csv file. Column roles
// are resolved by DetectColumns on the (trimmed) header row; cell values are
// trimmed; rows with all three role cells empty are skipped. Routing codes
// are returned as-is — validation happens in GroupByRoutingCode.
func ReadRecords(path string) ([]AccountRecord, error) {
	var rows [][]string
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no rows")
	}

	cols, err := DetectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []AccountRecord
	for i := 1; i < len(rows); i++ {
		rec := AccountRecord{
			AccountNo:   cellValue(rows[i], cols.AccountNo),
			AccountName: cellValue(rows[i], cols.AccountName),
			RoutingCode: cellValue(rows[i], cols.RoutingCode),
		}
		if rec.AccountNo == "" && rec.AccountName == "" && rec.RoutingCode == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
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

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return rows, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
