package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEncodeDecode(t *testing.T) {
	in := record{Name: "tomato", Count: 3}

	text, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"tomato","count":3}`, text)

	out, ok := Decode[record](text)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `{"name":"to`},
		{name: "wrong type", input: `{"name":1}`},
		{name: "not json", input: "settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := Decode[record](tt.input)
			assert.False(t, ok)
			assert.Equal(t, record{}, out)
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := Encode(func() {})
	assert.Error(t, err)
}
