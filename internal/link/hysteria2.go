package link

import (
	"strings"

	"proxy-normalizer/internal/domain"
)

const defaultALPN = "h3"

func parseHysteria2(text, name string) (domain.Proxy, error) {
	u := splitURI(text)
	a := ResolveAuthority(u.Authority, defaultPort)

	var password string
	switch username, pass, hasUser := u.user(); {
	case a.UserInfo != "":
		password = Unquote(a.UserInfo)
	case hasUser && username != "":
		password = username
	case hasUser:
		password = pass
	}
	// hy2://password@host without a user:password form
	if password == "" && a.UserInfo == "" {
		if i := strings.LastIndex(u.Authority, "@"); i >= 0 {
			password = Unquote(u.Authority[:i])
		}
	}

	proxy := domain.Proxy{
		"name":             name,
		"type":             "hysteria2",
		"server":           a.Host,
		"port":             a.Port,
		"password":         password,
		"sni":              u.Query.Get("sni"),
		"skip-cert-verify": true,
		"udp":              true,
		"alpn":             splitList(u.Query.Get("alpn"), defaultALPN),
	}

	if u.Query.Has("obfs") {
		proxy["obfs"] = u.Query.Get("obfs")
		proxy["obfs-password"] = u.Query.Get("obfs-password")
	}

	return proxy, nil
}
