package sheetdb

import (
	"encoding/binary"
)

// Bucket names. One bucket per persisted table, plus meta for counters.
const (
	spreadsheetsBucket = "spreadsheets"
	sheetsBucket       = "sheets"
	cellsBucket        = "cells"
	permissionsBucket  = "permissions"
	metaBucket         = "meta"
)

var metaNextSpreadsheetID = []byte("next_spreadsheet_id")

// Keys are fixed-width big-endian tuples so that cursor order is
// (spreadsheet, sheet, row, col) and prefix scans cover exactly one owner.

func spreadsheetKey(id SpreadsheetID) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

func sheetKey(id SpreadsheetID, ordinal uint32) []byte {
	var k [12]byte
	binary.BigEndian.PutUint64(k[:8], uint64(id))
	binary.BigEndian.PutUint32(k[8:], ordinal)
	return k[:]
}

// sheetPrefix is the common prefix of all cell keys of one sheet.
func sheetPrefix(id SpreadsheetID, ordinal uint32) []byte {
	return sheetKey(id, ordinal)
}

func cellKey(id SpreadsheetID, ordinal uint32, row, col int) []byte {
	var k [24]byte
	binary.BigEndian.PutUint64(k[:8], uint64(id))
	binary.BigEndian.PutUint32(k[8:12], ordinal)
	binary.BigEndian.PutUint64(k[12:20], uint64(row))
	binary.BigEndian.PutUint32(k[20:24], uint32(col))
	return k[:]
}

// parseCellKey recovers the row and col components; the owner prefix is
// implied by the scan that produced the key.
func parseCellKey(k []byte) (row, col int) {
	row = int(binary.BigEndian.Uint64(k[12:20]))
	col = int(binary.BigEndian.Uint32(k[20:24]))
	return row, col
}
