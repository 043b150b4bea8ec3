package hlc

import (
	"encoding/binary"
	"fmt"
)

// EncodedSize is the length of a binary-encoded timestamp in bytes.
const EncodedSize = 12

// MarshalBinary encodes the timestamp as a fixed 12-byte big-endian pair:
// 8 bytes of wall reading followed by 4 bytes of logical counter. The byte
// form sorts in the same order as Compare.
func (ts Timestamp) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EncodedSize)
	binary.BigEndian.PutUint64(buf[:8], ts.Wall)
	binary.BigEndian.PutUint32(buf[8:], ts.Logical)
	return buf, nil
}

// UnmarshalBinary decodes a timestamp produced by MarshalBinary. The field
// values round-trip bit-identically.
func (ts *Timestamp) UnmarshalBinary(data []byte) error {
	if len(data) != EncodedSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidTimestamp, len(data))
	}
	ts.Wall = binary.BigEndian.Uint64(data[:8])
	ts.Logical = binary.BigEndian.Uint32(data[8:])
	return nil
}
