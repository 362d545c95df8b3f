package link

import (
	"strings"

	"proxy-normalizer/internal/domain"
)

const defaultCongestion = "bbr"

func parseTUIC(text, name string) (domain.Proxy, error) {
	u := splitURI(text)
	a := ResolveAuthority(u.Authority, defaultPort)

	var uuid, password string
	if a.UserInfo != "" {
		if rawUUID, rawPassword, ok := strings.Cut(a.UserInfo, ":"); ok {
			uuid = Unquote(rawUUID)
			password = Unquote(rawPassword)
		} else {
			uuid = Unquote(a.UserInfo)
		}
	}
	if password == "" {
		_, password, _ = u.user()
	}

	proxy := domain.Proxy{
		"name":                  name,
		"type":                  "tuic",
		"server":                a.Host,
		"port":                  a.Port,
		"uuid":                  uuid,
		"password":              password,
		"tls":                   true,
		"udp":                   true,
		"disable_sni":           u.Query.Get("allow_insecure") == "1",
		"alpn":                  splitList(u.Query.Get("alpn"), defaultALPN),
		"congestion_controller": queryOr(u.Query, "congestion_controller", defaultCongestion),
		"zero_rtt":              u.Query.Get("zero_rtt") == "1",
	}

	if u.Query.Has("sni") {
		proxy["servername"] = u.Query.Get("sni")
	}
	if u.Query.Has("host") {
		proxy["host"] = u.Query.Get("host")
	}
	if u.Query.Get("insecure") == "1" {
		proxy["skip-cert-verify"] = true
	}

	return proxy, nil
}
