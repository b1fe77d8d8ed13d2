package config

import (
	"strings"

	"github.com/abgdnv/bgrs/pkg/config"
	"github.com/abgdnv/bgrs/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

const serviceName = "bgrs"

type Config struct {
	Storage config.StorageConfig `koanf:"storage"`
	Audit   config.AuditConfig   `koanf:"audit"`
	Log     config.LogConfig     `koanf:"log"`
}

// Defaults returns the values used when neither the config file nor the environment set a key.
func Defaults() map[string]any {
	return map[string]any{
		"storage.path":  "inventaire_sauvegarde.txt",
		"audit.enabled": true,
		"audit.path":    "historique.log",
		"log.level":     "info",
		"log.format":    "json",
	}
}

// Load reads the configuration from defaults, configFile and the BGRS_* environment.
// An empty configFile means config.yaml in the working directory.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](serviceName, configFile, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.Storage.String())
	b.WriteString(c.Audit.String())
	b.WriteString(c.Log.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Audit.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
