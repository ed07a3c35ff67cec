package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty name", "", 0xef46db3751d8e999},
		{"short name", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, FieldID(tt.data))
		})
	}
}

func TestFieldID_CaseSensitive(t *testing.T) {
	require.NotEqual(t, FieldID("sou_x"), FieldID("SOU_X"))
	require.Equal(t, FieldID("sou_x"), FieldID("sou_x"))
}
