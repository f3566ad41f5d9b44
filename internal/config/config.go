package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked for in the working directory when no --config flag
// is given.
const DefaultFile = "ddschema.yml"

type Config struct {
	SchemasDir     string   `yaml:"schemas_dir"`
	SettingsPath   string   `yaml:"settings_path"`
	SourceURL      string   `yaml:"source_url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Integrations   []string `yaml:"integrations"`
	Globs          []string `yaml:"globs"`
}

// Default returns the built-in configuration: the supported integration
// list, the integrations-core raw URL template, and the conf.d glob
// convention registered with the YAML extension.
func Default() *Config {
	return &Config{
		SchemasDir:     "schema_files",
		SettingsPath:   ".vscode/settings.json",
		SourceURL:      "https://raw.githubusercontent.com/DataDog/integrations-core/master/%s/assets/configuration/spec.yaml",
		TimeoutSeconds: 10,
		Integrations: []string{
			"disk",
			"redisdb",
			"kafka",
			"nginx",
			"postgres",
			"mysql",
			"mongo",
			"elastic",
			"haproxy",
			"rabbitmq",
			"zk",
			"etcd",
		},
		Globs: []string{
			"**/conf.d/%s.d/*.yaml",
			"**/conf.d/%s.yaml",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Integrations) == 0 {
		return fmt.Errorf("at least one integration is required")
	}
	if strings.Count(c.SourceURL, "%s") != 1 {
		return fmt.Errorf("source_url must contain exactly one %%s placeholder, got %q", c.SourceURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if len(c.Globs) == 0 {
		return fmt.Errorf("at least one glob pattern is required")
	}
	for _, g := range c.Globs {
		if strings.Count(g, "%s") != 1 {
			return fmt.Errorf("glob %q must contain exactly one %%s placeholder", g)
		}
	}
	return nil
}
