package link

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64LooseRoundTrip(t *testing.T) {
	texts := []string{
		"a",
		"ab",
		"hy2://secret@1.2.3.4:443?sni=example.com",
		"héllo ?>",
		"🇯🇵 Tokyo 01",
		"multi\nline\nbody",
	}
	encodings := map[string]*base64.Encoding{
		"std":       base64.StdEncoding,
		"url":       base64.URLEncoding,
		"std-nopad": base64.RawStdEncoding,
		"url-nopad": base64.RawURLEncoding,
	}

	for name, enc := range encodings {
		for _, text := range texts {
			decoded, ok := DecodeBase64Loose(enc.EncodeToString([]byte(text)))
			require.True(t, ok, "%s: %q", name, text)
			assert.Equal(t, text, decoded, name)
		}
	}
}

func TestDecodeBase64Loose(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "Surrounding whitespace",
			input:  "  aGVsbG8=\n",
			want:   "hello",
			wantOK: true,
		},
		{
			name:   "Wrapped lines",
			input:  "aGVs\r\nbG8=",
			want:   "hello",
			wantOK: true,
		},
		{
			name:   "Missing padding",
			input:  "aGVsbG8",
			want:   "hello",
			wantOK: true,
		},
		{
			name:  "Empty",
			input: "   ",
		},
		{
			name:  "Not base64",
			input: "vless://uuid@example.com:443",
		},
		{
			name:  "Invalid UTF-8",
			input: "//79",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeBase64Loose(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONObject(t *testing.T) {
	obj, err := decodeJSONObject(`{"port": 443, "add": "example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "443", stringField(obj, "port"))

	_, err = decodeJSONObject("null")
	assert.ErrorIs(t, err, errNullObject)

	_, err = decodeJSONObject(strings.Repeat("[", 3))
	assert.Error(t, err)
}
