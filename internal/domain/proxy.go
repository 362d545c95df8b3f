package domain

// Proxy is a normalized proxy record: Clash-Meta style field names mapped to
// scalar or nested values. name, type, server and port are always present.
type Proxy map[string]any

// MandatoryFields lists the keys every Proxy carries, in presentation order.
var MandatoryFields = []string{"name", "type", "server", "port"}

func (p Proxy) Name() string {
	s, _ := p["name"].(string)
	return s
}

func (p Proxy) Type() string {
	s, _ := p["type"].(string)
	return s
}

func (p Proxy) Server() string {
	s, _ := p["server"].(string)
	return s
}

func (p Proxy) Port() int {
	n, _ := p["port"].(int)
	return n
}
