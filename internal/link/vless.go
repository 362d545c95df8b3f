package link

import (
	"proxy-normalizer/internal/domain"
)

const (
	defaultNetwork     = "tcp"
	defaultFingerprint = "chrome"
)

func parseVLESS(text, name string) (domain.Proxy, error) {
	u := splitURI(text)
	a := ResolveAuthority(u.Authority, defaultPort)

	uuid := a.UserInfo
	if uuid == "" {
		uuid, _, _ = u.user()
	}

	proxy := domain.Proxy{
		"name":               name,
		"type":               "vless",
		"server":             a.Host,
		"port":               a.Port,
		"uuid":               Unquote(uuid),
		"network":            queryOr(u.Query, "type", defaultNetwork),
		"tls":                true,
		"udp":                true,
		"servername":         u.Query.Get("sni"),
		"client-fingerprint": queryOr(u.Query, "fp", defaultFingerprint),
	}

	if flow := u.Query.Get("flow"); flow != "" {
		proxy["flow"] = flow
	}
	if u.Query.Get("security") == "reality" {
		proxy["reality-opts"] = map[string]any{
			"public-key": u.Query.Get("pbk"),
			"short-id":   u.Query.Get("sid"),
		}
	}

	return proxy, nil
}
