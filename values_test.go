package sheetdb

import (
	"testing"
	"time"
)

func TestWriteReadBack(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	res := must(db.UpdateCells(ss.ID, "Sheet1", "A1:B2", [][]any{
		{float64(1), float64(2)},
		{"x", "y"},
	}))
	deepEqual(t, res, UpdateResult{UpdatedCells: 4, UpdatedRows: 2, UpdatedColumns: 2})

	deepEqual(t, must(db.Values(ss.ID, "Sheet1", "")), [][]any{
		{float64(1), float64(2)},
		{"x", "y"},
	})
}

func TestValuesEmptySheet(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	var empty [][]any
	deepEqual(t, must(db.Values(ss.ID, "Sheet1", "")), empty)
	deepEqual(t, must(db.Values(ss.ID, "Sheet1", "A1:Z50")), empty)
}

func TestValuesShapeTracksPopulatedData(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))
	must(db.UpdateCells(ss.ID, "Sheet1", "C5", [][]any{{"v"}}))

	// The dense array originates at (0,0) and extends to the populated
	// extent, regardless of the requested rectangle.
	grid := must(db.Values(ss.ID, "Sheet1", ""))
	deepEqual(t, len(grid), 5)
	deepEqual(t, len(grid[0]), 3)
	deepEqual(t, grid[4][2], any("v"))
	deepEqual(t, grid[0][0], any(""))

	// A range that excludes the only populated cell yields nil.
	var empty [][]any
	deepEqual(t, must(db.Values(ss.ID, "Sheet1", "A1:B2")), empty)
}

func TestValuesDefaultRangeBoundedByGrid(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))
	must(db.UpdateCells(ss.ID, "Sheet1", "A5", [][]any{{"x"}}))
	must(db.UpdateCells(ss.ID, "Sheet1", "A1501", [][]any{{"far"}}))

	// The store accepts writes past the declared grid, but an omitted range
	// covers the declared grid only.
	grid := must(db.Values(ss.ID, "Sheet1", ""))
	deepEqual(t, len(grid), 5)
	deepEqual(t, grid[4][0], any("x"))

	// An explicit open-ended range still reaches the stray cell.
	grid = must(db.Values(ss.ID, "Sheet1", "A:A"))
	deepEqual(t, len(grid), 1501)
	deepEqual(t, grid[1500][0], any("far"))
}

func TestUpdateCellsIgnoresRangeEnd(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	// The write footprint is the array's own shape, not the range's end.
	res := must(db.UpdateCells(ss.ID, "Sheet1", "B2:B2", [][]any{
		{"a", "b", "c"},
		{"d"},
	}))
	deepEqual(t, res, UpdateResult{UpdatedCells: 4, UpdatedRows: 2, UpdatedColumns: 3})

	grid := must(db.Values(ss.ID, "Sheet1", ""))
	deepEqual(t, grid[1][1], any("a"))
	deepEqual(t, grid[1][3], any("c"))
	deepEqual(t, grid[2][1], any("d"))
}

func TestUpdateCellsStampsModifiedTimes(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	db.now = func() time.Time { return stamp }
	must(db.UpdateCells(ss.ID, "Sheet1", "A1", [][]any{{"v"}}))

	// Both the sheet and its spreadsheet carry the write's timestamp.
	if got := must(db.Sheet(ss.ID, "Sheet1")).ModifiedAt; !got.Equal(stamp) {
		t.Errorf("** sheet ModifiedAt = %v, wanted %v", got, stamp)
	}
	if got := must(db.Spreadsheet(ss.ID)).ModifiedAt; !got.Equal(stamp) {
		t.Errorf("** spreadsheet ModifiedAt = %v, wanted %v", got, stamp)
	}
}

func TestUpdateCellsEmptyInput(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	res := must(db.UpdateCells(ss.ID, "Sheet1", "A1", nil))
	deepEqual(t, res, UpdateResult{})
}

func TestFormulasAreOpaqueText(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))
	must(db.UpdateCells(ss.ID, "Sheet1", "C5", [][]any{{"=A1+B1"}}))

	// No evaluation happens: both surfaces return the formula text.
	deepEqual(t, must(db.Formulas(ss.ID, "Sheet1", "C5"))[4][2], any("=A1+B1"))
	deepEqual(t, must(db.Values(ss.ID, "Sheet1", "C5"))[4][2], any("=A1+B1"))

	cell := must(db.CellAt(ss.ID, "Sheet1", "C5"))
	deepEqual(t, cell.Formula, "=A1+B1")
	deepEqual(t, cell.FormattedValue, "=A1+B1")

	// Overwriting with a plain value clears the formula.
	must(db.UpdateCells(ss.ID, "Sheet1", "C5", [][]any{{float64(3)}}))
	cell = must(db.CellAt(ss.ID, "Sheet1", "C5"))
	deepEqual(t, cell.Formula, "")
	deepEqual(t, cell.FormattedValue, "3")
}

func TestFormulasFallBackToRawValue(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))
	must(db.UpdateCells(ss.ID, "Sheet1", "A1", [][]any{{"plain", "=B1"}}))

	deepEqual(t, must(db.Formulas(ss.ID, "Sheet1", "")), [][]any{{"plain", "=B1"}})
}

func TestCellAt(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	isnil(t, must(db.CellAt(ss.ID, "Sheet1", "A1")))

	must(db.UpdateCells(ss.ID, "Sheet1", "A1", [][]any{{"v"}}))
	cell := must(db.CellAt(ss.ID, "Sheet1", "A1"))
	deepEqual(t, cell.Value, any("v"))
	if cell.UpdatedAt.IsZero() {
		t.Errorf("** cell update time not stamped")
	}
}

func TestBatchUpdateCells(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	batch := must(db.BatchUpdateCells(ss.ID, "Sheet1", map[string][][]any{
		"A1": {{"a"}},
		"B2": {{"b1", "b2"}},
	}))
	deepEqual(t, batch.TotalUpdatedCells, 3)
	deepEqual(t, len(batch.Responses), 2)
	deepEqual(t, batch.Responses[0].Range, "A1")
	deepEqual(t, batch.Responses[1].Range, "B2")

	grid := must(db.Values(ss.ID, "Sheet1", ""))
	deepEqual(t, grid[0][0], any("a"))
	deepEqual(t, grid[1][1], any("b1"))
	deepEqual(t, grid[1][2], any("b2"))
}

func TestBatchUpdateCellsPartialFailure(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	batch := must(db.BatchUpdateCells(ss.ID, "Sheet1", map[string][][]any{
		"!!!": {{"bad"}},
		"A1":  {{"good"}},
	}))
	deepEqual(t, batch.TotalUpdatedCells, 1)
	deepEqual(t, len(batch.Responses), 2)
	wantErr(t, batch.Responses[0].Err, ErrInvalidRange)
	isnilErr(t, batch.Responses[1].Err)

	// The valid range committed despite the invalid one.
	deepEqual(t, must(db.Values(ss.ID, "Sheet1", ""))[0][0], any("good"))
}

func TestUpdateCellsInvalidRange(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	_, err := db.UpdateCells(ss.ID, "Sheet1", "@#$", [][]any{{"v"}})
	wantErr(t, err, ErrInvalidRange)
}

func isnilErr(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Errorf("** got error %v, wanted nil", err)
	}
}
