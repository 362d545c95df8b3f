package subscription

import (
	"iter"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"
	"proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/link"
)

const unknownName = "Unknown Node"

// Extract splits a subscription body, plain or base64 wrapped, into candidate
// links. Lines with an unknown or missing scheme are skipped. Links are only
// sniffed here, not parsed.
//
// The returned sequence is lazy and single-use: ranging over it a second
// time yields nothing.
func Extract(body string) iter.Seq[domain.RawLink] {
	var consumed atomic.Bool

	return func(yield func(domain.RawLink) bool) {
		if consumed.Swap(true) {
			return
		}

		text := body
		if decoded, ok := link.DecodeBase64Loose(body); ok {
			text = decoded
		}

		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			protocol, ok := sniffProtocol(line)
			if !ok {
				continue
			}
			raw := domain.RawLink{
				DisplayName: displayName(line, protocol),
				Protocol:    protocol,
				Text:        line,
			}
			if !yield(raw) {
				return
			}
		}
	}
}

func sniffProtocol(line string) (domain.ProtocolTag, bool) {
	token, _, ok := strings.Cut(line, "://")
	if !ok {
		return "", false
	}

	switch strings.ToLower(token) {
	case "hysteria2", "hy2":
		return domain.ProtocolHysteria2, true
	case "shadowsocks", "ss":
		return domain.ProtocolShadowsocks, true
	case "vmess":
		return domain.ProtocolVMess, true
	case "vless":
		return domain.ProtocolVLESS, true
	case "tuic":
		return domain.ProtocolTUIC, true
	case "trojan":
		return domain.ProtocolTrojan, true
	case "socks5":
		return domain.ProtocolSOCKS5, true
	}
	return "", false
}

// displayName prefers the #fragment, then the vmess remark, then host:port.
func displayName(line string, protocol domain.ProtocolTag) string {
	if i := strings.LastIndex(line, "#"); i >= 0 {
		name := link.Unquote(line[i+1:])
		return lo.CoalesceOrEmpty(strings.TrimSpace(name), unknownName)
	}

	if protocol == domain.ProtocolVMess {
		if name, ok := link.DescribeVMess(line); ok {
			return name
		}
		return unknownName
	}

	_, rest, _ := strings.Cut(line, "://")
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	a := link.ResolveAuthority(rest, 0)
	host := strings.ToLower(strings.Trim(a.Host, "[]"))
	if host == "" {
		return unknownName
	}
	if a.Port == 0 {
		return host
	}
	return host + ":" + strconv.Itoa(a.Port)
}
