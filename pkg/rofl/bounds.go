package rofl

import "encoding/binary"

// span returns buf[start:end] after checking both ends against the buffer.
// Slicing never clips: a region that does not fit is an OutOfBoundsError.
func span(buf []byte, start, end int64, field string) ([]byte, error) {
	if start < 0 || end < start || end > int64(len(buf)) {
		return nil, newOutOfBoundsError(field, start, end, len(buf))
	}
	return buf[start:end], nil
}

func readUint8(buf []byte, offset int64, field string) (uint8, error) {
	b, err := span(buf, offset, offset+1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func readInt32(buf []byte, offset int64, field string) (int32, error) {
	b, err := span(buf, offset, offset+4, field)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}
