package rofl

// Container signatures (first 6 bytes of the file)
var (
	SignatureV1 = []byte{0x52, 0x49, 0x4F, 0x54, 0x00, 0x00} // "RIOT\x00\x00"
	SignatureV2 = []byte{0x52, 0x49, 0x4F, 0x54, 0x02, 0x00} // "RIOT\x02\x00"
)

// SignatureSize is the length of the container signature.
const SignatureSize = 6

// Version 1 header layout
const (
	V1ReplaySignatureOffset = 0x06  // 6
	V1ReplaySignatureSize   = 0x100 // 256 bytes
	V1LengthBlockOffset     = 0x106 // 262
	V1LengthBlockSize       = 0x1A  // 26 bytes
	V1HeaderSize            = 0x120 // 288 bytes
)

// Version 2 header layout
const (
	V2GameVersionLengthOffset = 0x0E // 14
	V2GameVersionOffset       = 0x0F // 15
	V2TrailerSize             = 4    // int32 metadata length at EOF
)

// Metadata document keys
const (
	keyGameLength      = "gameLength"
	keyGameVersion     = "gameVersion"
	keyLastGameChunkID = "lastGameChunkId"
	keyLastKeyFrameID  = "lastKeyFrameId"
	keyStatsJSON       = "statsJson"
)

// WinValue is the literal WIN field value for the winning side.
const WinValue = "Win"
