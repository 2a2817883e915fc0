package sheetdb

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Cell is one sparse cell record. A cell exists from its first write; an
// absent cell reads as the empty string. Formula is non-empty only when the
// raw value is a string starting with "=" (formulas are opaque text here,
// never evaluated).
type Cell struct {
	Value          any       `msgpack:"v"`
	Formula        string    `msgpack:"f,omitempty"`
	FormattedValue string    `msgpack:"fv"`
	UpdatedAt      time.Time `msgpack:"u"`
}

// cellRef is a decoded cell with its coordinates within one sheet.
type cellRef struct {
	row, col int
	cell     *Cell
}

// rawCell carries an undecoded cell value, for operations that relocate or
// copy records without looking inside them.
type rawCell struct {
	row, col int
	value    []byte
}

// CellAt returns the cell record at a single A1-style reference ("C5"), or
// nil if the address was never written.
func (db *DB) CellAt(id SpreadsheetID, title, ref string) (*Cell, error) {
	rng, err := ParseRange(ref)
	if err != nil {
		return nil, err
	}
	var cell *Cell
	err = db.view(func(tx storageTx) error {
		_, sheet, err := findSheet(tx, db, id, title)
		if err != nil {
			return err
		}
		cell, err = getCell(tx, db, id, sheet.Ordinal, rng.StartRow, rng.StartCol)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cell, nil
}

func getCell(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32, row, col int) (*Cell, error) {
	raw := db.bucket(tx, cellsBucket).Get(cellKey(id, ordinal, row, col))
	if raw == nil {
		return nil, nil
	}
	cell := new(Cell)
	if err := decodeRecord(raw, cell); err != nil {
		return nil, err
	}
	return cell, nil
}

// putCell upserts a cell. The formula field is set only for "="-prefixed
// string values and cleared otherwise; the formatted value and update time
// are always refreshed.
func putCell(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32, row, col int, value any) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("sheetdb: negative cell coordinate (%d, %d)", row, col)
	}
	cell := &Cell{
		Value:          value,
		FormattedValue: formatCellValue(value),
		UpdatedAt:      db.now(),
	}
	if s, ok := value.(string); ok && strings.HasPrefix(s, "=") {
		cell.Formula = s
	}
	return db.bucket(tx, cellsBucket).Put(cellKey(id, ordinal, row, col), encodeRecord(cell))
}

func deleteCell(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32, row, col int) error {
	return db.bucket(tx, cellsBucket).Delete(cellKey(id, ordinal, row, col))
}

// scanSheetCells returns every populated cell of one sheet in key order
// (row-major). Cost is linear in the sheet's populated cells only; the key
// layout keeps other sheets out of the scanned range.
func scanSheetCells(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32) ([]cellRef, error) {
	raw, err := scanSheetRaw(tx, db, id, ordinal)
	if err != nil {
		return nil, err
	}
	out := make([]cellRef, 0, len(raw))
	for _, rc := range raw {
		cell := new(Cell)
		if err := decodeRecord(rc.value, cell); err != nil {
			return nil, err
		}
		out = append(out, cellRef{row: rc.row, col: rc.col, cell: cell})
	}
	return out, nil
}

// scanSheetRaw collects the sheet's cells without decoding values. Results
// are cloned, so they stay valid while the caller mutates the bucket.
func scanSheetRaw(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32) ([]rawCell, error) {
	prefix := sheetPrefix(id, ordinal)
	var out []rawCell
	c := db.bucket(tx, cellsBucket).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		row, col := parseCellKey(k)
		out = append(out, rawCell{row: row, col: col, value: slices.Clone(v)})
	}
	return out, nil
}

func formatCellValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
