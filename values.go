package sheetdb

import (
	"errors"
	"sort"
)

// UpdateResult counts the writes performed by UpdateCells.
type UpdateResult struct {
	UpdatedCells   int
	UpdatedRows    int
	UpdatedColumns int
}

// RangeUpdateResult is the per-range outcome of a batch update. Err is set
// when that range failed; other ranges are unaffected.
type RangeUpdateResult struct {
	Range string
	UpdateResult
	Err error
}

// BatchUpdateResult aggregates a batch update.
type BatchUpdateResult struct {
	TotalUpdatedCells int
	Responses         []RangeUpdateResult
}

// Values materializes the cells of rangeStr (empty = the sheet's declared
// grid) into a dense array. The array originates at absolute (0,0) and
// extends to the maximum populated row and column within the range, with ""
// at unpopulated positions; its shape tracks populated data, not the
// requested rectangle. Returns nil when no cell falls in range, and also
// when no sheet has the given title (renamed-away titles read as empty).
func (db *DB) Values(id SpreadsheetID, title, rangeStr string) ([][]any, error) {
	return db.materialize(id, title, rangeStr, false)
}

// Formulas is Values, except each populated cell contributes its formula
// text when it has one, falling back to the raw value.
func (db *DB) Formulas(id SpreadsheetID, title, rangeStr string) ([][]any, error) {
	return db.materialize(id, title, rangeStr, true)
}

func (db *DB) materialize(id SpreadsheetID, title, rangeStr string, formulas bool) ([][]any, error) {
	var rng Range
	if rangeStr != "" {
		var err error
		rng, err = ParseRange(rangeStr)
		if err != nil {
			return nil, err
		}
	}

	var cells []cellRef
	err := db.view(func(tx storageTx) error {
		_, sheet, err := findSheet(tx, db, id, title)
		if err != nil {
			// A title that resolves to no sheet reads as empty data (after
			// a rename, the data lives under the new title); a missing
			// spreadsheet is still an explicit failure.
			if errors.Is(err, ErrSheetNotFound) {
				return nil
			}
			return err
		}
		if rangeStr == "" {
			// An omitted range means the declared grid, not every cell that
			// happens to exist past it.
			rng = Range{EndRow: sheet.Rows - 1, EndCol: sheet.Cols - 1}
		}
		cells, err = scanSheetCells(tx, db, id, sheet.Ordinal)
		return err
	})
	if err != nil {
		return nil, err
	}

	maxRow, maxCol := -1, -1
	matched := cells[:0:0]
	for _, c := range cells {
		if !rng.contains(c.row, c.col) {
			continue
		}
		matched = append(matched, c)
		maxRow = max(maxRow, c.row)
		maxCol = max(maxCol, c.col)
	}
	if maxRow < 0 {
		return nil, nil
	}

	grid := make([][]any, maxRow+1)
	for r := range grid {
		row := make([]any, maxCol+1)
		for c := range row {
			row[c] = ""
		}
		grid[r] = row
	}
	for _, c := range matched {
		v := c.cell.Value
		if formulas && c.cell.Formula != "" {
			v = c.cell.Formula
		}
		if v == nil {
			v = ""
		}
		grid[c.row][c.col] = v
	}
	return grid, nil
}

// UpdateCells writes a rectangular block of values anchored at the start of
// rangeStr; the end of the range is ignored, the array's own shape defines
// the write footprint. Empty input is a zero-count success.
func (db *DB) UpdateCells(id SpreadsheetID, title, rangeStr string, values [][]any) (UpdateResult, error) {
	rng, err := ParseRange(rangeStr)
	if err != nil {
		return UpdateResult{}, err
	}

	var res UpdateResult
	err = db.update(func(tx storageTx) error {
		ss, sheet, err := findSheet(tx, db, id, title)
		if err != nil {
			return err
		}
		for r, rowValues := range values {
			for c, v := range rowValues {
				if err := putCell(tx, db, id, sheet.Ordinal, rng.StartRow+r, rng.StartCol+c, v); err != nil {
					return err
				}
				res.UpdatedCells++
			}
			res.UpdatedColumns = max(res.UpdatedColumns, len(rowValues))
		}
		res.UpdatedRows = len(values)
		if res.UpdatedCells > 0 {
			now := db.now()
			sheet.ModifiedAt = now
			putSheet(tx, db, sheet)
			ss.ModifiedAt = now
			putSpreadsheet(tx, db, ss)
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}
	if db.verbose {
		db.logf("sheetdb: UPDATE %d/%q %s => %d cells", id, title, rangeStr, res.UpdatedCells)
	}
	return res, nil
}

// BatchUpdateCells applies UpdateCells once per range. Each range is its
// own transaction and its own outcome: a failing range never aborts the
// others, and ranges committed before a failure stay committed. Ranges are
// applied in sorted order for determinism.
func (db *DB) BatchUpdateCells(id SpreadsheetID, title string, updates map[string][][]any) (BatchUpdateResult, error) {
	err := db.view(func(tx storageTx) error {
		_, _, err := findSheet(tx, db, id, title)
		return err
	})
	if err != nil {
		return BatchUpdateResult{}, err
	}

	ranges := make([]string, 0, len(updates))
	for rangeStr := range updates {
		ranges = append(ranges, rangeStr)
	}
	sort.Strings(ranges)

	var batch BatchUpdateResult
	for _, rangeStr := range ranges {
		res, err := db.UpdateCells(id, title, rangeStr, updates[rangeStr])
		batch.Responses = append(batch.Responses, RangeUpdateResult{
			Range:        rangeStr,
			UpdateResult: res,
			Err:          err,
		})
		batch.TotalUpdatedCells += res.UpdatedCells
	}
	return batch, nil
}

