package rofl

import "encoding/binary"

// LengthBlock is the version 1 offset table at bytes 262..287.
type LengthBlock struct {
	Header              uint16 `json:"header"`
	File                uint32 `json:"file"`
	MetadataOffset      uint32 `json:"metadataOffset"`
	Metadata            uint32 `json:"metadata"`
	PayloadHeaderOffset uint32 `json:"payloadHeaderOffset"`
	PayloadHeader       uint32 `json:"payloadHeader"`
	PayloadOffset       uint32 `json:"payloadOffset"`
}

// MetadataEnd returns the absolute end of the metadata region.
// Computed in int64 so offset+length cannot wrap.
func (l *LengthBlock) MetadataEnd() int64 {
	return int64(l.MetadataOffset) + int64(l.Metadata)
}

func parseLengthBlock(b []byte) *LengthBlock {
	// Offsets relative to byte 262:
	// 0x00: Header (word)
	// 0x02: File (dword)
	// 0x06: MetadataOffset (dword)
	// 0x0A: Metadata (dword)
	// 0x0E: PayloadHeaderOffset (dword)
	// 0x12: PayloadHeader (dword)
	// 0x16: PayloadOffset (dword)
	return &LengthBlock{
		Header:              binary.LittleEndian.Uint16(b[0x00:]),
		File:                binary.LittleEndian.Uint32(b[0x02:]),
		MetadataOffset:      binary.LittleEndian.Uint32(b[0x06:]),
		Metadata:            binary.LittleEndian.Uint32(b[0x0A:]),
		PayloadHeaderOffset: binary.LittleEndian.Uint32(b[0x0E:]),
		PayloadHeader:       binary.LittleEndian.Uint32(b[0x12:]),
		PayloadOffset:       binary.LittleEndian.Uint32(b[0x16:]),
	}
}

// readV1 reads the legacy layout: fixed header, forward offset table.
func readV1(buf []byte) (*section, error) {
	sig, err := span(buf, V1ReplaySignatureOffset, V1ReplaySignatureOffset+V1ReplaySignatureSize, "replay signature")
	if err != nil {
		return nil, err
	}

	block, err := span(buf, V1LengthBlockOffset, V1LengthBlockOffset+V1LengthBlockSize, "length block")
	if err != nil {
		return nil, err
	}
	lengths := parseLengthBlock(block)

	start := int64(lengths.MetadataOffset)
	region, err := span(buf, start, lengths.MetadataEnd(), "metadata")
	if err != nil {
		return nil, newMalformedMetadataError(StageSlice, err)
	}

	md, err := decodeMetadata(region, start)
	if err != nil {
		return nil, err
	}

	signature := make([]byte, len(sig))
	copy(signature, sig)

	return &section{
		metadata:  md,
		lengths:   lengths,
		signature: signature,
	}, nil
}
