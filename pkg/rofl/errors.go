package rofl

import (
	"errors"
	"fmt"
)

// ParseError is the base error type for decoding errors.
type ParseError struct {
	Message string
	Offset  *int64
}

func (e *ParseError) Error() string {
	if e.Offset != nil {
		return fmt.Sprintf("%s at offset 0x%X", e.Message, *e.Offset)
	}
	return e.Message
}

// UnrecognizedFormatError indicates the signature matched neither container version.
type UnrecognizedFormatError struct {
	ParseError
	Observed []byte
	Err      error
}

func (e *UnrecognizedFormatError) Unwrap() error { return e.Err }

// OutOfBoundsError indicates a computed region does not fit inside the buffer.
type OutOfBoundsError struct {
	ParseError
	Field  string
	Start  int64
	End    int64
	Length int
}

// EncodingError indicates a text region is not valid UTF-8.
type EncodingError struct {
	ParseError
	Field string
}

// MetadataStage names the step of metadata extraction that failed.
type MetadataStage string

const (
	StageSlice      MetadataStage = "slice"
	StageUTF8       MetadataStage = "utf8"
	StageOuterJSON  MetadataStage = "outer-json"
	StageStatsField MetadataStage = "stats-field"
	StageInnerJSON  MetadataStage = "inner-json"
)

// MalformedMetadataError indicates the metadata block could not be extracted.
type MalformedMetadataError struct {
	ParseError
	Stage MetadataStage
	Err   error
}

func (e *MalformedMetadataError) Unwrap() error { return e.Err }

// Error kinds reported by Kind
const (
	KindUnrecognizedFormat = "unrecognized_format"
	KindOutOfBounds        = "out_of_bounds"
	KindEncoding           = "encoding"
	KindMalformedMetadata  = "malformed_metadata"
	KindUnknown            = "unknown"
)

// Kind classifies a decode error for metrics and user-facing messages.
// A malformed metadata error caused by a bad slice reports out_of_bounds.
func Kind(err error) string {
	var unrecognized *UnrecognizedFormatError
	var bounds *OutOfBoundsError
	var encoding *EncodingError
	var malformed *MalformedMetadataError

	switch {
	case errors.As(err, &unrecognized):
		return KindUnrecognizedFormat
	case errors.As(err, &bounds):
		return KindOutOfBounds
	case errors.As(err, &encoding):
		return KindEncoding
	case errors.As(err, &malformed):
		return KindMalformedMetadata
	default:
		return KindUnknown
	}
}

// Helper functions for creating errors

func newUnrecognizedFormatError(observed []byte, cause error) *UnrecognizedFormatError {
	got := make([]byte, len(observed))
	copy(got, observed)
	return &UnrecognizedFormatError{
		ParseError: ParseError{
			Message: fmt.Sprintf("unrecognized replay signature: got % X, want % X or % X", got, SignatureV1, SignatureV2),
		},
		Observed: got,
		Err:      cause,
	}
}

func newOutOfBoundsError(field string, start, end int64, length int) *OutOfBoundsError {
	e := &OutOfBoundsError{
		ParseError: ParseError{
			Message: fmt.Sprintf("%s [%d:%d] exceeds buffer of %d bytes", field, start, end, length),
		},
		Field:  field,
		Start:  start,
		End:    end,
		Length: length,
	}
	if start >= 0 {
		e.Offset = &e.Start
	}
	return e
}

func newEncodingError(field string, offset int64) *EncodingError {
	return &EncodingError{
		ParseError: ParseError{
			Message: fmt.Sprintf("%s is not valid UTF-8", field),
			Offset:  &offset,
		},
		Field: field,
	}
}

func newMalformedMetadataError(stage MetadataStage, cause error) *MalformedMetadataError {
	return &MalformedMetadataError{
		ParseError: ParseError{
			Message: fmt.Sprintf("malformed metadata (%s): %v", stage, cause),
		},
		Stage: stage,
		Err:   cause,
	}
}
