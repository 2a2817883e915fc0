package sheetdb

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeRecord marshals a record value. Our record types cannot fail to
// marshal, so failure indicates a programming error.
func encodeRecord(v any) []byte {
	data, err := msgpack.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("sheetdb: encoding %T: %w", v, err))
	}
	return data
}

func decodeRecord(data []byte, v any) error {
	err := msgpack.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("sheetdb: decoding %T: %w", v, err)
	}
	return nil
}
