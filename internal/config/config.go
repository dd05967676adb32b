// Package config loads the pwclient configuration file: a YAML document
// with a default project name and per-project server settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/getpatchwork/pwclient/internal/api"
)

// Project holds the connection settings for one Patchwork project.
type Project struct {
	URL      string `yaml:"url"`
	Backend  string `yaml:"backend,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// Config is the parsed configuration file.
type Config struct {
	Default  string             `yaml:"default,omitempty"`
	Projects map[string]Project `yaml:"projects"`
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/pwclient/pwclient.yaml or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", &api.ConfigError{Reason: fmt.Sprintf("unable to locate the user config directory: %v", err)}
	}
	return filepath.Join(dir, "pwclient", "pwclient.yaml"), nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &api.ConfigError{Reason: fmt.Sprintf("config file %s does not exist", path)}
		}
		return nil, &api.ConfigError{Reason: fmt.Sprintf("unable to read config file %s: %v", path, err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &api.ConfigError{Reason: fmt.Sprintf("unable to parse config file %s: %v", path, err)}
	}
	if len(cfg.Projects) == 0 {
		return nil, &api.ConfigError{Reason: fmt.Sprintf("config file %s defines no projects", path)}
	}
	return &cfg, nil
}

// Select picks the project to operate on: the named one, the configured
// default, or the sole project when only one is defined.
func (c *Config) Select(name string) (string, *Project, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" {
		if len(c.Projects) == 1 {
			for n, p := range c.Projects {
				proj := p
				return n, &proj, nil
			}
		}
		return "", nil, &api.ConfigError{Reason: "no project selected; use --project or set a default in the config file"}
	}

	p, ok := c.Projects[name]
	if !ok {
		return "", nil, &api.ConfigError{Reason: fmt.Sprintf("no project %q in the config file", name)}
	}
	return name, &p, nil
}

// Validate checks one project entry for the fields every backend needs.
func (p *Project) Validate(name string) error {
	if p.URL == "" {
		return &api.ConfigError{Reason: fmt.Sprintf("project %q has no url", name)}
	}
	switch p.Backend {
	case "", api.BackendREST, api.BackendXMLRPC:
	default:
		return &api.ConfigError{Reason: fmt.Sprintf("project %q has unknown backend %q (want %q or %q)",
			name, p.Backend, api.BackendREST, api.BackendXMLRPC)}
	}
	return nil
}

// Credentials converts the project entry into API credentials.
func (p *Project) Credentials() api.Credentials {
	return api.Credentials{
		Username: p.Username,
		Password: p.Password,
		Token:    p.Token,
	}
}
