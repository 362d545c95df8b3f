package link

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

var base64Encodings = []*base64.Encoding{
	base64.URLEncoding,
	base64.StdEncoding,
}

// DecodeBase64Loose decodes s with either base64 alphabet, repairing missing
// padding. The second result is false when no alphabet decodes s or the
// decoded bytes are not valid UTF-8.
func DecodeBase64Loose(s string) (string, bool) {
	s = lineBreaks.Replace(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}

	for _, enc := range base64Encodings {
		decoded, err := enc.DecodeString(s)
		if err != nil {
			continue
		}
		if !utf8.Valid(decoded) {
			continue
		}
		return string(decoded), true
	}
	return "", false
}

// decodeJSONObject parses s as a JSON object, keeping numbers as json.Number.
func decodeJSONObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNullObject
	}
	return obj, nil
}
