package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/newsbrowse"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSources          = errors.New("at least one domain is required")
	ErrInvalidNumArticles = errors.New("num_articles must be at least 1")
)

// Config is the run configuration file. JSON files are accepted as YAML.
type Config struct {
	Domains     []SourceConfig `yaml:"domain"`
	NumArticles int            `yaml:"num_articles"`

	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"`
	AWSS3Bucket        string `yaml:"aws_s3_bucket"`
	AWSS3Prefix        string `yaml:"aws_s3_prefix"`
	AWSRegion          string `yaml:"aws_region"`
	AWSEndpoint        string `yaml:"aws_endpoint"`
}

// SourceConfig is one configured domain. A null id or keyword disables that
// listing kind.
type SourceConfig struct {
	Name    string      `yaml:"name"`
	ID      string      `yaml:"id"`
	Keyword KeywordList `yaml:"keyword"`
}

// KeywordList accepts a single keyword or a list of keywords.
type KeywordList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *KeywordList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*k = nil
			return nil
		}
		*k = KeywordList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*k = list
		return nil
	default:
		return fmt.Errorf("line %d: keyword must be a string or a list of strings", node.Line)
	}
}

// Source returns the domain as a newsbrowse.Source.
func (c *SourceConfig) Source() newsbrowse.Source {
	return newsbrowse.Source{
		Name:     c.Name,
		ID:       c.ID,
		Keywords: []string(c.Keyword),
	}
}

// Sources returns the configured domains in declaration order.
func (c *Config) Sources() []newsbrowse.Source {
	sources := make([]newsbrowse.Source, len(c.Domains))
	for i := range c.Domains {
		sources[i] = c.Domains[i].Source()
	}
	return sources
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return ErrNoSources
	}
	if c.NumArticles < 1 {
		return ErrInvalidNumArticles
	}
	for i, src := range c.Sources() {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("domain[%d]: %w", i, err)
		}
	}
	return nil
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a configuration document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
