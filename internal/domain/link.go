package domain

type SourceName string

// ProtocolTag is the coarse protocol sniffed from a link's scheme token.
type ProtocolTag string

const (
	ProtocolHysteria2   ProtocolTag = "hy2"
	ProtocolVLESS       ProtocolTag = "vless"
	ProtocolVMess       ProtocolTag = "vm"
	ProtocolShadowsocks ProtocolTag = "ss"
	ProtocolTUIC        ProtocolTag = "tuic"
	ProtocolTrojan      ProtocolTag = "trojan"
	ProtocolSOCKS5      ProtocolTag = "socks5"
)

// Source is a subscription body stored on disk together with the region
// code applied to every record converted from it.
type Source struct {
	Name   SourceName `json:"name" validate:"required"`
	Path   string     `json:"path" validate:"required,file"`
	Region string     `json:"region" validate:"region"`
}

// RawLink is a single candidate line of a subscription. The protocol tag is
// only a sniff of the scheme, the text may still be malformed.
type RawLink struct {
	DisplayName string
	Protocol    ProtocolTag
	Text        string
}
