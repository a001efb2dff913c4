package rofl

import "unicode/utf8"

// readV2 reads the current layout: inline game version near the front,
// metadata anchored to the end of the file by a trailing int32 length.
func readV2(buf []byte) (*section, error) {
	n, err := readUint8(buf, V2GameVersionLengthOffset, "game version length")
	if err != nil {
		return nil, err
	}

	raw, err := span(buf, V2GameVersionOffset, V2GameVersionOffset+int64(n), "game version")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, newEncodingError("game version", V2GameVersionOffset)
	}

	size := int64(len(buf))
	metadataLength, err := readInt32(buf, size-V2TrailerSize, "metadata length")
	if err != nil {
		return nil, err
	}

	end := size - V2TrailerSize
	start := end - int64(metadataLength)
	if metadataLength <= 0 {
		return nil, newMalformedMetadataError(StageSlice, newOutOfBoundsError("metadata", start, end, len(buf)))
	}
	region, err := span(buf, start, end, "metadata")
	if err != nil {
		return nil, newMalformedMetadataError(StageSlice, err)
	}

	md, err := decodeMetadata(region, start)
	if err != nil {
		return nil, err
	}

	return &section{
		gameVersion: string(raw),
		metadata:    md,
	}, nil
}
