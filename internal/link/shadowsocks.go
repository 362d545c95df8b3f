package link

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"proxy-normalizer/internal/domain"
)

func parseShadowsocks(text, name string) (domain.Proxy, error) {
	_, body, _ := strings.Cut(strings.TrimSpace(text), "://")
	body, _, _ = strings.Cut(body, "#")

	var query url.Values
	if before, rawQuery, ok := strings.Cut(body, "?"); ok {
		query = parseQuery(rawQuery)
		body = before
	}
	body = strings.TrimSuffix(body, "/")

	// legacy form: the whole method:password@host:port is base64 encoded
	if !strings.Contains(body, "@") {
		if decoded, ok := DecodeBase64Loose(body); ok {
			body = strings.TrimSpace(decoded)
		}
	}

	i := strings.LastIndex(body, "@")
	if i < 0 {
		return nil, newParseError("ss", "userinfo", "no userinfo after decoding", ErrMissingSeparator)
	}
	userInfo, hostPart := body[:i], body[i+1:]

	if !strings.Contains(userInfo, ":") {
		if decoded, ok := DecodeBase64Loose(Unquote(userInfo)); ok {
			userInfo = decoded
		}
	}
	cipher, password, ok := strings.Cut(userInfo, ":")
	if !ok {
		return nil, newParseError("ss", "userinfo", "userinfo is not method:password", ErrMissingSeparator)
	}

	j := strings.LastIndex(hostPart, ":")
	if j < 0 {
		return nil, newParseError("ss", "port", "host has no port", ErrInvalidPort)
	}
	port, err := strconv.Atoi(strings.TrimSpace(hostPart[j+1:]))
	if err != nil {
		return nil, newParseError("ss", "port", fmt.Sprintf("port %q is not a number", hostPart[j+1:]), ErrInvalidPort)
	}

	proxy := domain.Proxy{
		"name":     name,
		"type":     "ss",
		"server":   bracketHost(hostPart[:j]),
		"port":     port,
		"cipher":   cipher,
		"password": password,
		"udp":      true,
	}

	if query.Has("plugin") {
		proxy["plugin"] = query.Get("plugin")
		proxy["plugin-opts"] = pluginOptions(query.Get("plugin_opts"))
	}

	return proxy, nil
}

// pluginOptions decodes plugin_opts as JSON, keeping undecodable text under
// the "options" key.
func pluginOptions(raw string) any {
	if raw == "" {
		return map[string]any{}
	}
	var opts any
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return map[string]any{"options": raw}
	}
	return opts
}
