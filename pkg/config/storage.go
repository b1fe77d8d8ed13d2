package config

import (
	"fmt"
	"strings"
)

type StorageConfig struct {
	Path string `koanf:"path"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Path))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("storage path is not configured")
	}
	return nil
}
