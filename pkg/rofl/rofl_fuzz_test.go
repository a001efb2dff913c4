//go:build fuzz
// +build fuzz

package rofl_test

import (
	"testing"

	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/rofl/rofltest"
)

// FuzzDecode checks that arbitrary input never panics and that every failure is classified.
func FuzzDecode(f *testing.F) {
	meta := rofltest.Match(60000, "1.0", rofltest.Team("100", true, "a", "b")...)

	// Add seed corpus
	f.Add([]byte{})
	f.Add([]byte("RIOT"))
	f.Add(rofltest.V1(meta))
	f.Add(rofltest.V2("14.1.1", []byte{0, 1, 2}, meta))
	f.Add(rofltest.V2("", nil, []byte(`{"statsJson":"null"}`)))

	f.Fuzz(func(t *testing.T, data []byte) {
		replay, err := rofl.Decode(data, "fuzz.rofl")
		if err != nil {
			if rofl.Kind(err) == rofl.KindUnknown {
				t.Fatalf("unclassified error: %v", err)
			}
			return
		}
		if replay.Version != rofl.Version1 && replay.Version != rofl.Version2 {
			t.Fatalf("unexpected version %v", replay.Version)
		}
		if replay.Metadata.Stats == nil {
			t.Fatal("nil stats on success")
		}
	})
}
