package link

import (
	"strconv"
	"strings"
)

const defaultPort = 443

// Authority is the userinfo@host:port part of a link. Host is bracket-wrapped
// when it is an IPv6 literal and never otherwise.
type Authority struct {
	UserInfo string
	Host     string
	Port     int
}

// ResolveAuthority splits a raw authority into userinfo, host and port. It
// never fails: anything it cannot make sense of is kept verbatim as the host
// and the port falls back to defaultPort.
//
// Unbracketed IPv6 hosts are accepted, so the order of the checks matters:
// brackets first, then the colon count.
func ResolveAuthority(authority string, defaultPort int) Authority {
	a := Authority{Port: defaultPort}

	hostPart := authority
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		a.UserInfo = authority[:i]
		hostPart = authority[i+1:]
	}
	a.Host = hostPart

	switch colons := strings.Count(hostPart, ":"); {
	case strings.Contains(hostPart, "[") && strings.Contains(hostPart, "]"):
		// [v6]:port or [v6]
		if !strings.Contains(hostPart, "]:") {
			break
		}
		i := strings.LastIndex(hostPart, ":")
		if port, err := strconv.Atoi(hostPart[i+1:]); err == nil {
			a.Host, a.Port = hostPart[:i], port
		}

	case colons >= 2:
		// bare v6, maybe with a trailing port
		i := strings.LastIndex(hostPart, ":")
		if tail := hostPart[i+1:]; isDigits(tail) {
			if port, err := strconv.Atoi(tail); err == nil {
				a.Host, a.Port = "["+hostPart[:i]+"]", port
				break
			}
		}
		a.Host = "[" + hostPart + "]"

	case colons == 1:
		i := strings.LastIndex(hostPart, ":")
		if port, err := strconv.Atoi(hostPart[i+1:]); err == nil {
			a.Host, a.Port = hostPart[:i], port
		}
	}

	return a
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// bracketHost wraps an IPv6 literal in brackets unless it already is.
func bracketHost(host string) string {
	if strings.Contains(host, ":") && !(strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]")) {
		return "[" + host + "]"
	}
	return host
}
