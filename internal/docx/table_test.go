package docx

import "testing"

func TestTableRowOperations(t *testing.T) {
	t.Parallel()

	doc := New()
	tbl := doc.AddTable(3, 2)
	tbl.Cell(1, 0).SetText("middle")
	tbl.Cell(2, 0).SetText("last")

	tbl.RemoveRow(1)

	if got := len(tbl.Rows()); got != 2 {
		t.Fatalf("rows = %d after remove, want 2", got)
	}
	if got := tbl.Cell(1, 0).Text(); got != "last" {
		t.Fatalf("cell (1,0) = %q, want last shifted up", got)
	}

	row := tbl.AddRow()
	if got := len(row.Cells()); got != 2 {
		t.Fatalf("added row has %d cells, want grid width 2", got)
	}
	if got := len(tbl.Rows()); got != 3 {
		t.Fatalf("rows = %d after add, want 3", got)
	}
}

func TestTableCellOutOfRange(t *testing.T) {
	t.Parallel()

	doc := New()
	tbl := doc.AddTable(1, 1)

	if tbl.Cell(1, 0) != nil || tbl.Cell(0, 1) != nil || tbl.Cell(-1, 0) != nil {
		t.Fatal("out of range Cell() returned a cell")
	}
}

func TestCellSetTextKeepsCellProperties(t *testing.T) {
	t.Parallel()

	doc := New()
	cell := doc.AddTable(1, 1).Cell(0, 0)
	cell.SetWidth(2400)
	cell.SetText("replaced")

	if w := cell.Width(); w == nil || *w != 2400 {
		t.Fatalf("width = %v, want 2400 kept across SetText", w)
	}
	if got := cell.Text(); got != "replaced" {
		t.Fatalf("text = %q", got)
	}
}

func TestRemoveRowOutOfRange(t *testing.T) {
	t.Parallel()

	doc := New()
	tbl := doc.AddTable(1, 1)
	tbl.RemoveRow(5)
	tbl.RemoveRow(-1)

	if got := len(tbl.Rows()); got != 1 {
		t.Fatalf("rows = %d, want 1 untouched", got)
	}
}
