package notice

import (
	"fmt"
	"strings"
)

// Columns holds the resolved zero-based index of each required input role.
type Columns struct {
	AccountNo   int
	AccountName int
	RoutingCode int
}

// ColumnError reports required input roles that no header resolved to.
type ColumnError struct {
	Missing   []string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("required columns not found (missing: %s; available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// DetectColumns resolves which header carries which role. Headers are
// trimmed and matched case-insensitively in sheet order; each header is
// tested against the roles in fixed priority (account number, then account
// name, then routing code) and can satisfy at most one; the first header
// matching a role keeps it.
func DetectColumns(headers []string) (Columns, error) {
	cols := Columns{AccountNo: -1, AccountName: -1, RoutingCode: -1}
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case matchesAccountNo(h):
			if cols.AccountNo < 0 {
				cols.AccountNo = i
			}
		case matchesAccountName(h):
			if cols.AccountName < 0 {
				cols.AccountName = i
			}
		case strings.Contains(h, "ifsc"):
			if cols.RoutingCode < 0 {
				cols.RoutingCode = i
			}
		}
	}

	var missing []string
	if cols.AccountNo < 0 {
		missing = append(missing, "account number")
	}
	if cols.AccountName < 0 {
		missing = append(missing, "account name")
	}
	if cols.RoutingCode < 0 {
		missing = append(missing, "ifsc code")
	}
	if len(missing) > 0 {
		available := make([]string, len(headers))
		for i, h := range headers {
			available[i] = strings.TrimSpace(h)
		}
		return Columns{}, &ColumnError{Missing: missing, Available: available}
	}
	return cols, nil
}

func matchesAccountNo(h string) bool {
	if strings.Contains(h, "name") {
		return false
	}
	if strings.Contains(h, "account") &&
		(strings.Contains(h, "number") || strings.Contains(h, "no") || strings.Contains(h, "#")) {
		return true
	}
	return strings.Contains(h, "a/c") ||
		strings.Contains(h, "ac no") ||
		strings.Contains(h, "acc no") ||
		strings.Contains(h, "acno")
}

func matchesAccountName(h string) bool {
	if strings.Contains(h, "account") && strings.Contains(h, "name") {
		return true
	}
	if strings.Contains(h, "name") &&
		(strings.Contains(h, "beneficiary") || strings.Contains(h, "holder")) {
		return true
	}
	return strings.Contains(h, "account") && strings.Contains(h, "holder")
}
