package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是一次分块读取作业的配置结构（支持 YAML/JSON）。
type Config struct {
	Source struct {
		Path      string   `yaml:"path" json:"path"`             // NDJSON 文件路径
		Columns   []string `yaml:"columns" json:"columns"`       // 列投影，空表示全部
		ChunkSize int      `yaml:"chunk_size" json:"chunk_size"` // 单 chunk 行数，0 表示默认
		MaxChunks int      `yaml:"max_chunks" json:"max_chunks"` // 最多 chunk 数，0 表示不限
		Filter    string   `yaml:"filter" json:"filter"`         // CEL 行过滤表达式，空表示不过滤
	} `yaml:"source" json:"source"`
}

// LoadFromYAML 从 YAML 文件加载读取作业配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载读取作业配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	return &cfg, nil
}

// NewReader 根据配置构建 ChunkedReader。
func (c *Config) NewReader() *ChunkedReader {
	opts := make([]Option, 0, 4)
	if len(c.Source.Columns) > 0 {
		opts = append(opts, WithColumns(c.Source.Columns...))
	}
	if c.Source.ChunkSize > 0 {
		opts = append(opts, WithChunkSize(c.Source.ChunkSize))
	}
	if c.Source.MaxChunks > 0 {
		opts = append(opts, WithMaxChunks(c.Source.MaxChunks))
	}
	if c.Source.Filter != "" {
		opts = append(opts, WithFilterExpr(c.Source.Filter))
	}
	return NewChunkedReader(opts...)
}

// Path 返回配置的数据源路径。
func (c *Config) Path() string { return c.Source.Path }
