package rofl_test

import (
	"errors"
	"fmt"

	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/rofl/rofltest"
)

func ExampleDecode() {
	buf := rofltest.V1([]byte(`{"gameVersion":"1.0","statsJson":"[{\"PUUID\":\"p1\",\"WIN\":\"Win\"}]"}`))

	replay, err := rofl.Decode(buf, "NA1-1.rofl")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(replay.Version, replay.GameVersion)
	for _, p := range replay.Players() {
		fmt.Println(p.PUUID(), p.Won())
	}
	// Output:
	// v1 1.0
	// p1 true
}

func ExampleKind() {
	_, err := rofl.Decode([]byte("RIOT"), "short.rofl")

	var unrecognized *rofl.UnrecognizedFormatError
	fmt.Println(errors.As(err, &unrecognized))
	fmt.Println(rofl.Kind(err))
	// Output:
	// true
	// unrecognized_format
}
