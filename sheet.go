package sheetdb

import (
	"fmt"
	"sort"
	"time"
)

// Default grid of a newly created sheet. The declared size is advisory
// capacity; the cell store never enforces it.
const (
	DefaultSheetTitle = "Sheet1"
	DefaultSheetRows  = 1000
	DefaultSheetCols  = 26
)

// Sheet is identified by (SpreadsheetID, Ordinal). The ordinal is assigned
// at creation and never changes; the title may change via RenameSheet but
// must stay unique among siblings.
type Sheet struct {
	SpreadsheetID SpreadsheetID `msgpack:"-"`
	Ordinal       uint32        `msgpack:"-"`
	Title         string        `msgpack:"t"`
	Rows          int           `msgpack:"r"`
	Cols          int           `msgpack:"c"`
	CreatedAt     time.Time     `msgpack:"ca"`
	ModifiedAt    time.Time     `msgpack:"ma"`
}

// CreateSheet adds a sheet to an existing spreadsheet. Non-positive rows or
// cols fall back to the defaults. Fails with ErrSpreadsheetNotFound if the
// spreadsheet doesn't exist, and with ErrExists on a duplicate title.
func (db *DB) CreateSheet(id SpreadsheetID, title string, rows, cols int) (*Sheet, error) {
	var sheet *Sheet
	err := db.update(func(tx storageTx) error {
		ss, err := getSpreadsheet(tx, db, id)
		if err != nil {
			return err
		}
		sheet, err = db.createSheet(tx, ss, title, rows, cols)
		return err
	})
	if err != nil {
		return nil, err
	}
	if db.verbose {
		db.logf("sheetdb: CREATE.SHEET %d/%d %q %dx%d", id, sheet.Ordinal, title, sheet.Rows, sheet.Cols)
	}
	return sheet, nil
}

// createSheet appends a sheet to ss and saves both records. Ordinals are
// dense: the next one is the current sheet count (safe while deletion stays
// out of scope).
func (db *DB) createSheet(tx storageTx, ss *Spreadsheet, title string, rows, cols int) (*Sheet, error) {
	for _, si := range ss.Sheets {
		if si.Title == title {
			return nil, fmt.Errorf("sheet %q: %w", title, ErrExists)
		}
	}
	if rows <= 0 {
		rows = DefaultSheetRows
	}
	if cols <= 0 {
		cols = DefaultSheetCols
	}

	now := db.now()
	sheet := &Sheet{
		SpreadsheetID: ss.ID,
		Ordinal:       uint32(len(ss.Sheets)),
		Title:         title,
		Rows:          rows,
		Cols:          cols,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	putSheet(tx, db, sheet)

	ss.Sheets = append(ss.Sheets, SheetInfo{Ordinal: sheet.Ordinal, Title: title})
	ss.ModifiedAt = now
	putSpreadsheet(tx, db, ss)
	return sheet, nil
}

// Sheet returns the sheet with the given title, or ErrSheetNotFound.
func (db *DB) Sheet(id SpreadsheetID, title string) (*Sheet, error) {
	var sheet *Sheet
	err := db.view(func(tx storageTx) error {
		_, s, err := findSheet(tx, db, id, title)
		sheet = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// SheetByOrdinal returns the sheet with the given stable ordinal.
func (db *DB) SheetByOrdinal(id SpreadsheetID, ordinal uint32) (*Sheet, error) {
	var sheet *Sheet
	err := db.view(func(tx storageTx) error {
		if _, err := getSpreadsheet(tx, db, id); err != nil {
			return err
		}
		var err error
		sheet, err = loadSheet(tx, db, id, ordinal)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// SheetTitles returns the spreadsheet's sheet titles ordered by ordinal.
func (db *DB) SheetTitles(id SpreadsheetID) ([]string, error) {
	ss, err := db.Spreadsheet(id)
	if err != nil {
		return nil, err
	}
	infos := append([]SheetInfo(nil), ss.Sheets...)
	sort.Slice(infos, func(i, j int) bool { return infos[i].Ordinal < infos[j].Ordinal })
	titles := make([]string, len(infos))
	for i, si := range infos {
		titles[i] = si.Title
	}
	return titles, nil
}

// RenameSheet changes a sheet's title. Cells are keyed by the stable
// ordinal, so this is a metadata-only update: all data previously visible
// under oldTitle becomes visible under newTitle, and oldTitle resolves to
// nothing afterwards.
func (db *DB) RenameSheet(id SpreadsheetID, oldTitle, newTitle string) error {
	err := db.update(func(tx storageTx) error {
		ss, sheet, err := findSheet(tx, db, id, oldTitle)
		if err != nil {
			return err
		}
		for _, si := range ss.Sheets {
			if si.Title == newTitle {
				return fmt.Errorf("sheet %q: %w", newTitle, ErrExists)
			}
		}

		now := db.now()
		sheet.Title = newTitle
		sheet.ModifiedAt = now
		putSheet(tx, db, sheet)

		for i := range ss.Sheets {
			if ss.Sheets[i].Ordinal == sheet.Ordinal {
				ss.Sheets[i].Title = newTitle
			}
		}
		ss.ModifiedAt = now
		putSpreadsheet(tx, db, ss)
		return nil
	})
	if err != nil {
		return err
	}
	if db.verbose {
		db.logf("sheetdb: RENAME %d %q => %q", id, oldTitle, newTitle)
	}
	return nil
}

// CopySheet copies a sheet, cells and declared dimensions included, into
// dstID under dstTitle. Nothing is created if the source lookup fails. The
// copies are fully independent afterwards.
func (db *DB) CopySheet(srcID SpreadsheetID, srcTitle string, dstID SpreadsheetID, dstTitle string) (*Sheet, error) {
	var dst *Sheet
	err := db.update(func(tx storageTx) error {
		_, src, err := findSheet(tx, db, srcID, srcTitle)
		if err != nil {
			return err
		}
		dstSS, err := getSpreadsheet(tx, db, dstID)
		if err != nil {
			return err
		}
		dst, err = db.createSheet(tx, dstSS, dstTitle, src.Rows, src.Cols)
		if err != nil {
			return err
		}

		cells, err := scanSheetRaw(tx, db, srcID, src.Ordinal)
		if err != nil {
			return err
		}
		buck := db.bucket(tx, cellsBucket)
		for _, c := range cells {
			ensure(buck.Put(cellKey(dstID, dst.Ordinal, c.row, c.col), c.value))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if db.verbose {
		db.logf("sheetdb: COPY %d/%q => %d/%q", srcID, srcTitle, dstID, dstTitle)
	}
	return dst, nil
}

// findSheet resolves a title to its sheet via the spreadsheet's summaries.
func findSheet(tx storageTx, db *DB, id SpreadsheetID, title string) (*Spreadsheet, *Sheet, error) {
	ss, err := getSpreadsheet(tx, db, id)
	if err != nil {
		return nil, nil, err
	}
	for _, si := range ss.Sheets {
		if si.Title == title {
			sheet, err := loadSheet(tx, db, id, si.Ordinal)
			if err != nil {
				return nil, nil, err
			}
			return ss, sheet, nil
		}
	}
	return nil, nil, fmt.Errorf("%d/%q: %w", id, title, ErrSheetNotFound)
}

func loadSheet(tx storageTx, db *DB, id SpreadsheetID, ordinal uint32) (*Sheet, error) {
	raw := db.bucket(tx, sheetsBucket).Get(sheetKey(id, ordinal))
	if raw == nil {
		return nil, fmt.Errorf("%d/#%d: %w", id, ordinal, ErrSheetNotFound)
	}
	sheet := &Sheet{SpreadsheetID: id, Ordinal: ordinal}
	if err := decodeRecord(raw, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func putSheet(tx storageTx, db *DB, sheet *Sheet) {
	ensure(db.bucket(tx, sheetsBucket).Put(sheetKey(sheet.SpreadsheetID, sheet.Ordinal), encodeRecord(sheet)))
}
