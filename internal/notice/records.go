// Package notice implements the notice generation pipeline: resolving
// recipient columns, grouping account records by routing code, and filling
// a template document per branch.
package notice

import (
	"strings"

	"noticegen-web/internal/ifsc"
)

// AccountRecord is one recipient row after column resolution. Records are
// immutable once grouped.
type AccountRecord struct {
	AccountNo   string
	AccountName string
	RoutingCode string
}

// GroupedRecords maps routing codes to their account records, preserving
// first-seen code order and input row order within each group. Every key is
// a valid routing code and every group is non-empty.
type GroupedRecords struct {
	codes  []string
	groups map[string][]AccountRecord
}

// Codes returns the routing codes in first-seen order.
func (g *GroupedRecords) Codes() []string {
	return g.codes
}

// Records returns the records grouped under code, in input order.
func (g *GroupedRecords) Records(code string) []AccountRecord {
	return g.groups[code]
}

// Len returns the number of groups.
func (g *GroupedRecords) Len() int {
	return len(g.codes)
}

// TotalRecords returns the number of records across all groups.
func (g *GroupedRecords) TotalRecords() int {
	n := 0
	for _, recs := range g.groups {
		n += len(recs)
	}
	return n
}

func (g *GroupedRecords) add(code string, rec AccountRecord) {
	if g.groups == nil {
		g.groups = make(map[string][]AccountRecord)
	}
	if _, ok := g.groups[code]; !ok {
		g.codes = append(g.codes, code)
	}
	g.groups[code] = append(g.groups[code], rec)
}

// GroupByRoutingCode normalizes each row's routing code (trim + uppercase)
// and groups structurally valid rows by code. Rows whose code fails
// ifsc.Validate are skipped and their normalized codes returned in input
// order; reporting them is the caller's job.
func GroupByRoutingCode(rows []AccountRecord) (*GroupedRecords, []string) {
	grouped := &GroupedRecords{}
	var invalid []string
	for _, row := range rows {
		code := strings.ToUpper(strings.TrimSpace(row.RoutingCode))
		if !ifsc.Validate(code) {
			invalid = append(invalid, code)
			continue
		}
		grouped.add(code, AccountRecord{
			AccountNo:   row.AccountNo,
			AccountName: row.AccountName,
			RoutingCode: code,
		})
	}
	return grouped, invalid
}
