package jsonfile

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	. "proxy-normalizer/internal/domain"
	"proxy-normalizer/internal/exporter/snapshot"
)

type Config struct {
	Path string `json:"path" validate:"required"`
}

// JSONFile writes the records as a JSON array.
type JSONFile struct {
	path     string
	snapshot *snapshot.Set
}

func New(rawConfig json.RawMessage) (Exporter, error) {
	var cfg Config
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("invalid json exporter config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid json exporter config: %w", err)
	}

	return NewWithPath(cfg.Path), nil
}

func NewWithPath(path string) Exporter {
	return &JSONFile{
		path:     path,
		snapshot: snapshot.New(),
	}
}

func (j *JSONFile) Export(source SourceName, proxies []Proxy) error {
	all := j.snapshot.Put(source, proxies)
	if all == nil {
		all = []Proxy{}
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proxies: %w", err)
	}
	return snapshot.WriteFile(j.path, append(data, '\n'))
}
