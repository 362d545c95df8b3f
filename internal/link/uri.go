package link

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// rawURI is a link split into its components without any host validation.
// net/url rejects unbracketed IPv6 hosts, which subscriptions routinely carry.
type rawURI struct {
	Scheme    string
	Authority string
	Path      string
	Query     url.Values
	Fragment  string
}

func splitURI(text string) rawURI {
	var u rawURI

	rest := strings.TrimSpace(text)
	if scheme, after, ok := strings.Cut(rest, "://"); ok {
		u.Scheme = strings.ToLower(scheme)
		rest = after
	}
	if before, fragment, ok := strings.Cut(rest, "#"); ok {
		u.Fragment = fragment
		rest = before
	}
	var rawQuery string
	if before, query, ok := strings.Cut(rest, "?"); ok {
		rawQuery = query
		rest = before
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		u.Path = rest[i:]
		rest = rest[:i]
	}
	u.Authority = rest
	u.Query = parseQuery(rawQuery)

	return u
}

// user returns the username and password embedded in the authority, split
// at the last "@" and then the first ":". ok is false without an "@".
func (u rawURI) user() (username, password string, ok bool) {
	i := strings.LastIndex(u.Authority, "@")
	if i < 0 {
		return "", "", false
	}
	username, password, _ = strings.Cut(u.Authority[:i], ":")
	return username, password, true
}

// parseQuery is lenient: the query is split on "&" and each pair once on
// "=", so values may carry ";" or "=" and malformed escapes are kept as
// written. Pairs without "=" and blank values are dropped, so a key present
// with an empty value counts as absent.
func parseQuery(raw string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		values.Add(unquotePlus(key), unquotePlus(value))
	}
	return values
}

func queryOr(q url.Values, key, fallback string) string {
	return lo.CoalesceOrEmpty(q.Get(key), fallback)
}

// splitList splits a comma separated query value, falling back to the
// single default element when the value is empty.
func splitList(value, fallback string) []string {
	if value == "" {
		return []string{fallback}
	}
	return lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}

// Unquote decodes every valid %XX escape in s and copies everything else
// through, so a literal "%" survives next to encoded characters. Bytes that
// do not form valid UTF-8 become U+FFFD.
func Unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		buf = append(buf, s[i])
	}
	return strings.ToValidUTF8(string(buf), "\uFFFD")
}

func unquotePlus(s string) string {
	return Unquote(strings.ReplaceAll(s, "+", " "))
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}
