package progress

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type decimal string

func (d decimal) String() string { return string(d) }

func TestCoerce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want *float64
	}{
		{name: "float", raw: 12.5, want: ptr(12.5)},
		{name: "int", raw: 7, want: ptr(7)},
		{name: "int64", raw: int64(-4), want: ptr(-4)},
		{name: "uint8", raw: uint8(3), want: ptr(3)},
		{name: "json number", raw: json.Number("42"), want: ptr(42)},
		{name: "numeric string", raw: "23", want: ptr(23)},
		{name: "leading whitespace", raw: "  \t9.5", want: ptr(9.5)},
		{name: "numeric prefix", raw: "12.5kg", want: ptr(12.5)},
		{name: "exponent", raw: "1e2", want: ptr(100)},
		{name: "leading dot", raw: ".5", want: ptr(0.5)},
		{name: "signed", raw: "-20", want: ptr(-20)},
		{name: "stringer", raw: decimal("33.3"), want: ptr(33.3)},
		{name: "bytes", raw: []byte("8"), want: ptr(8)},
		{name: "nil", raw: nil, want: nil},
		{name: "empty string", raw: "", want: nil},
		{name: "word", raw: "abc", want: nil},
		{name: "bool", raw: true, want: nil},
		{name: "infinity string", raw: "Infinity", want: nil},
		{name: "overflow", raw: "1e999", want: nil},
		{name: "NaN float", raw: math.NaN(), want: nil},
		{name: "map", raw: map[string]int{"a": 1}, want: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Coerce(tc.raw)
			if tc.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tc.want, *got, 1e-9)
		})
	}
}
