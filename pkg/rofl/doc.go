// Package rofl decodes replay containers (.rofl files) into match metadata and
// per-player statistics.
//
// Two incompatible on-disk layouts exist. Both start with a 6-byte signature that
// selects the reader; everything after it is version specific.
//
// # Version 1
//
// A fixed header followed by a forward offset table. All integers are little-endian.
//
//	[Signature(6)][ReplaySignature(256)][LengthBlock(26)] ... [Metadata] ...
//
// The length block holds, relative to byte 262:
//   - Header: uint16 @0 (carried through, no meaning assigned)
//   - File: uint32 @2
//   - MetadataOffset: uint32 @6
//   - Metadata: uint32 @10
//   - PayloadHeaderOffset: uint32 @14
//   - PayloadHeader: uint32 @18
//   - PayloadOffset: uint32 @22
//
// The metadata document lives at buf[MetadataOffset : MetadataOffset+Metadata].
// The game version is read from the metadata document itself.
//
// # Version 2
//
// The game version is stored inline near the front and the metadata is anchored to
// the end of the file:
//
//	[Signature(6)] ... [GameVersionLength(1) @14][GameVersion(n) @15] ... [Metadata][MetadataLength(int32)]
//
// # Metadata
//
// The metadata block is UTF-8 JSON. Its statsJson field is itself a JSON document
// encoded as a string, so decoding takes two passes: the outer object first, then
// the inner array of per-player records. A decoded Replay never exposes the inner
// document as text.
//
// # Usage
//
//	data, err := os.ReadFile("NA1-5270847442.rofl")
//	if err != nil {
//	    return err
//	}
//
//	replay, err := rofl.Decode(data, "NA1-5270847442.rofl")
//	if err != nil {
//	    return err
//	}
//
//	for _, p := range replay.Players() {
//	    fmt.Printf("%s (%s) %d/%d/%d\n", p.DisplayName(), p.Champion(), p.Kills(), p.Deaths(), p.Assists())
//	}
//
// # Error Handling
//
// Decoding is all-or-nothing. Failures are reported as one of the typed errors
// in this package and can be matched with errors.As:
//   - UnrecognizedFormatError: the first 6 bytes match neither signature
//   - OutOfBoundsError: a header field or region falls outside the buffer
//   - EncodingError: a text region is not valid UTF-8
//   - MalformedMetadataError: the metadata document failed at a given stage
//
// Every region is bounds checked before it is sliced. Offsets and lengths read
// from the file are widened to int64 first, so hostile values cannot overflow.
//
// # Thread Safety
//
// Decode keeps no state between calls and never mutates its input. It is safe to
// call concurrently on independent buffers.
package rofl
