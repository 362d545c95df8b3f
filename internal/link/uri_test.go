package link

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Empty", input: "", want: ""},
		{name: "No escapes", input: "plain", want: "plain"},
		{name: "Valid escape", input: "a%20b", want: "a b"},
		{name: "Trailing percent", input: "100%", want: "100%"},
		{name: "Truncated escape", input: "ab%4", want: "ab%4"},
		{name: "Invalid escape next to valid one", input: "100%sure%40x", want: "100%sure@x"},
		{name: "Mixed case hex", input: "%2b%2B", want: "++"},
		{name: "Multi-byte rune", input: "%e2%9c%93", want: "✓"},
		{name: "Invalid UTF-8", input: "a%ffb", want: "a\uFFFDb"},
		{name: "Plus kept", input: "a+b", want: "a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unquote(tt.input))
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  url.Values
	}{
		{
			name:  "Empty",
			input: "",
			want:  url.Values{},
		},
		{
			name:  "Repeated keys",
			input: "alpn=h3&alpn=h2",
			want:  url.Values{"alpn": {"h3", "h2"}},
		},
		{
			name:  "Blank values and bare keys dropped",
			input: "sni=&insecure&fp=chrome",
			want:  url.Values{"fp": {"chrome"}},
		},
		{
			name:  "Semicolons and equals kept in value",
			input: "plugin=obfs-local;obfs=http;obfs-host=a.com",
			want:  url.Values{"plugin": {"obfs-local;obfs=http;obfs-host=a.com"}},
		},
		{
			name:  "Malformed escape kept",
			input: "sni=a%zzb.com&pbk=K%2BEY",
			want:  url.Values{"sni": {"a%zzb.com"}, "pbk": {"K+EY"}},
		},
		{
			name:  "Plus is a space",
			input: "host=a+b",
			want:  url.Values{"host": {"a b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(tt.input))
		})
	}
}
