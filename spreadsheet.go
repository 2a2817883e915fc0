package sheetdb

import (
	"encoding/binary"
	"fmt"
	"time"
)

// SpreadsheetID is an opaque unique spreadsheet identifier, allocated from a
// persistent counter and never reused.
type SpreadsheetID uint64

// SheetInfo is the summary of one sheet embedded in its spreadsheet record,
// in ordinal order.
type SheetInfo struct {
	Ordinal uint32 `msgpack:"o"`
	Title   string `msgpack:"t"`
}

type Spreadsheet struct {
	ID         SpreadsheetID `msgpack:"-"`
	Title      string        `msgpack:"t"`
	CreatedAt  time.Time     `msgpack:"ca"`
	ModifiedAt time.Time     `msgpack:"ma"`
	Sheets     []SheetInfo   `msgpack:"sh"`
}

// CreateSpreadsheet allocates a fresh spreadsheet and its default sheet
// (titled Sheet1, ordinal 0). The returned spreadsheet already lists the
// default sheet.
func (db *DB) CreateSpreadsheet(title string) (*Spreadsheet, error) {
	var ss *Spreadsheet
	err := db.update(func(tx storageTx) error {
		now := db.now()
		ss = &Spreadsheet{
			ID:         nextSpreadsheetID(tx, db),
			Title:      title,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		putSpreadsheet(tx, db, ss)
		_, err := db.createSheet(tx, ss, DefaultSheetTitle, DefaultSheetRows, DefaultSheetCols)
		return err
	})
	if err != nil {
		return nil, err
	}
	if db.verbose {
		db.logf("sheetdb: CREATE.SS %d %q", ss.ID, title)
	}
	return ss, nil
}

// Spreadsheet returns the spreadsheet record, or ErrSpreadsheetNotFound.
func (db *DB) Spreadsheet(id SpreadsheetID) (*Spreadsheet, error) {
	var ss *Spreadsheet
	err := db.view(func(tx storageTx) (err error) {
		ss, err = getSpreadsheet(tx, db, id)
		return
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func getSpreadsheet(tx storageTx, db *DB, id SpreadsheetID) (*Spreadsheet, error) {
	raw := db.bucket(tx, spreadsheetsBucket).Get(spreadsheetKey(id))
	if raw == nil {
		return nil, fmt.Errorf("%d: %w", id, ErrSpreadsheetNotFound)
	}
	ss := &Spreadsheet{ID: id}
	if err := decodeRecord(raw, ss); err != nil {
		return nil, err
	}
	return ss, nil
}

func putSpreadsheet(tx storageTx, db *DB, ss *Spreadsheet) {
	ensure(db.bucket(tx, spreadsheetsBucket).Put(spreadsheetKey(ss.ID), encodeRecord(ss)))
}

func nextSpreadsheetID(tx storageTx, db *DB) SpreadsheetID {
	meta := db.bucket(tx, metaBucket)
	next := uint64(1)
	if raw := meta.Get(metaNextSpreadsheetID); raw != nil {
		next = binary.BigEndian.Uint64(raw)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next+1)
	ensure(meta.Put(metaNextSpreadsheetID, buf[:]))
	return SpreadsheetID(next)
}
