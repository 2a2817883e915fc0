/*
Package sheetdb implements a spreadsheet storage core on top of a key-value
store (in this case, on top of Bolt).

We implement:

1. Spreadsheets, each holding an ordered list of sheets.

2. Sheets, identified by a stable ordinal within their spreadsheet, with a
mutable title and a declared (advisory) grid size.

3. A sparse cell store, keyed by (spreadsheet, sheet ordinal, row, col), so
sheet-scoped operations are prefix scans and renaming a sheet never touches
cell data.

4. A1-style range addressing, dense materialization of sparse ranges, and
structural mutation (row/column insertion, sheet rename and copy).

5. Per-spreadsheet sharing grants with a fixed role enumeration.

# Technical Details

**Buckets.**
Five buckets: spreadsheets, sheets, cells, permissions and meta (the
spreadsheet id counter). Bolt supports buckets natively; the in-memory test
backend simulates them.

**Key encoding.**
All keys are fixed-width big-endian tuples, so cursor order is
(spreadsheet, sheet, row, col) and a sheet's cells form one contiguous key
range:

	spreadsheets: id u64
	sheets:       spreadsheet id u64 | ordinal u32
	cells:        spreadsheet id u64 | ordinal u32 | row u64 | col u32
	permissions:  spreadsheet id u64

**Values**: msgpack of the record struct. Key components are never repeated
inside the value. Untyped cell values round-trip under msgpack rules:
integers come back as an int64-family value, floats as float64, strings as
strings.

**Materialization contract.**
Values and Formulas filter a sheet's cells to the requested range (an omitted
range means the sheet's declared grid), then return a dense array that always
originates at absolute (0,0) and extends to the maximum populated row and
column of the filtered set, with empty strings elsewhere. The shape tracks
populated data, not the requested rectangle; an empty filtered set yields a
nil array.

**Transactions.**
Every public operation runs inside a single storage transaction: it either
fully succeeds or leaves the prior state untouched. Writers are serialized by
the backend.
*/
package sheetdb
