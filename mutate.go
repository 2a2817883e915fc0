package sheetdb

import (
	"fmt"
)

// AtEnd makes AddRows/AddColumns grow the declared dimension without moving
// any cells ("reserve capacity at the end").
const AtEnd = -1

// AddRows grows the sheet's declared row count by count. When at >= 0,
// every cell at row >= at is relocated count rows down; cells above the
// insertion point are untouched.
func (db *DB) AddRows(id SpreadsheetID, title string, count, at int) error {
	return db.insert(id, title, count, at, true)
}

// AddColumns is AddRows for the column axis.
func (db *DB) AddColumns(id SpreadsheetID, title string, count, at int) error {
	return db.insert(id, title, count, at, false)
}

func (db *DB) insert(id SpreadsheetID, title string, count, at int, rowAxis bool) error {
	if count <= 0 {
		return fmt.Errorf("sheetdb: insertion count must be positive, got %d", count)
	}

	err := db.update(func(tx storageTx) error {
		ss, sheet, err := findSheet(tx, db, id, title)
		if err != nil {
			return err
		}

		now := db.now()
		if rowAxis {
			sheet.Rows += count
		} else {
			sheet.Cols += count
		}
		sheet.ModifiedAt = now
		putSheet(tx, db, sheet)
		ss.ModifiedAt = now
		putSpreadsheet(tx, db, ss)

		if at < 0 {
			return nil
		}

		// Relocate the tail: collect first, so the cursor never observes
		// its own writes, then delete every old key before writing any new
		// one. A relocated cell may land on another shifted cell's original
		// key, and a delete issued after that put would erase it.
		cells, err := scanSheetRaw(tx, db, id, sheet.Ordinal)
		if err != nil {
			return err
		}
		moved := cells[:0:0]
		for _, c := range cells {
			coord := c.row
			if !rowAxis {
				coord = c.col
			}
			if coord >= at {
				moved = append(moved, c)
			}
		}
		for _, c := range moved {
			ensure(deleteCell(tx, db, id, sheet.Ordinal, c.row, c.col))
		}
		buck := db.bucket(tx, cellsBucket)
		for _, c := range moved {
			newRow, newCol := c.row, c.col
			if rowAxis {
				newRow += count
			} else {
				newCol += count
			}
			ensure(buck.Put(cellKey(id, sheet.Ordinal, newRow, newCol), c.value))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if db.verbose {
		axis := "rows"
		if !rowAxis {
			axis = "cols"
		}
		db.logf("sheetdb: INSERT.%s %d/%q +%d at %d", axis, id, title, count, at)
	}
	return nil
}
