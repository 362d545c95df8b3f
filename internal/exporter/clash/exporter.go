package clash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	. "proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/exporter/snapshot"
)

type Config struct {
	Path string `json:"path" validate:"required"`
}

// Clash writes a Clash "proxies:" document.
type Clash struct {
	path     string
	snapshot *snapshot.Set
}

func New(rawConfig json.RawMessage) (Exporter, error) {
	var cfg Config
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("invalid clash exporter config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid clash exporter config: %w", err)
	}

	return NewWithPath(cfg.Path), nil
}

func NewWithPath(path string) Exporter {
	return &Clash{
		path:     path,
		snapshot: snapshot.New(),
	}
}

func (c *Clash) Export(source SourceName, proxies []Proxy) error {
	data, err := Marshal(c.snapshot.Put(source, proxies))
	if err != nil {
		return err
	}
	return snapshot.WriteFile(c.path, data)
}

// Marshal renders proxies as a YAML document with a single "proxies" list.
// Within each entry the mandatory keys come first, the rest sorted.
func Marshal(proxies []Proxy) ([]byte, error) {
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, p := range proxies {
		node, err := proxyNode(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode proxy %q: %w", p.Name(), err)
		}
		list.Content = append(list.Content, node)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, scalar("proxies"), list)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to marshal proxies: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func proxyNode(p Proxy) (*yaml.Node, error) {
	rest := lo.Without(lo.Keys(p), MandatoryFields...)
	slices.Sort(rest)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range append(slices.Clone(MandatoryFields), rest...) {
		value, ok := p[key]
		if !ok {
			continue
		}
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalar(key), &v)
	}
	return node, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
