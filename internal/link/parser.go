package link

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"proxy-normalizer/internal/domain"
)

type scheme string

const (
	schemeHysteria2   scheme = "hysteria2"
	schemeVLESS       scheme = "vless"
	schemeVMess       scheme = "vmess"
	schemeTUIC        scheme = "tuic"
	schemeShadowsocks scheme = "ss"
)

type schemeParser func(text, name string) (domain.Proxy, error)

var schemeParsers = map[scheme]schemeParser{
	schemeHysteria2:   parseHysteria2,
	schemeVLESS:       parseVLESS,
	schemeVMess:       parseVMess,
	schemeTUIC:        parseTUIC,
	schemeShadowsocks: parseShadowsocks,
}

func detectScheme(text string) (scheme, bool) {
	token, _, ok := strings.Cut(text, "://")
	if !ok {
		return "", false
	}
	switch strings.ToLower(token) {
	case "hy2", "hysteria2":
		return schemeHysteria2, true
	case "vless":
		return schemeVLESS, true
	case "vmess":
		return schemeVMess, true
	case "tuic":
		return schemeTUIC, true
	case "ss":
		return schemeShadowsocks, true
	}
	return "", false
}

// Parse converts one link into a normalized proxy record named after
// baseName and region. Panics raised while parsing are returned as errors.
func Parse(text, baseName, region string) (proxy domain.Proxy, err error) {
	text = strings.TrimSpace(text)

	s, ok := detectScheme(text)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, abbreviate(text))
	}

	defer func() {
		if r := recover(); r != nil {
			proxy = nil
			err = newParseError(string(s), "dispatch", fmt.Sprint(r), ErrPanic)
		}
	}()

	return schemeParsers[s](text, displayName(baseName, region))
}

// Parser is Parse with failure logging.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	return &Parser{
		logger: logger.With(zap.String("component", "link_parser")),
	}
}

func (p *Parser) Parse(text, baseName, region string) (domain.Proxy, error) {
	proxy, err := Parse(text, baseName, region)
	if err != nil {
		p.logger.Warn("failed to parse link",
			zap.String("link", abbreviate(text)),
			zap.String("base_name", baseName),
			zap.Error(err))
		return nil, err
	}

	p.logger.Debug("parsed link",
		zap.String("name", proxy.Name()),
		zap.String("type", proxy.Type()),
		zap.String("server", proxy.Server()),
		zap.Int("port", proxy.Port()))

	return proxy, nil
}

// abbreviate keeps credentials in long links out of logs and errors.
func abbreviate(text string) string {
	const limit = 50
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
