package config

import (
	"fmt"
	"strings"
)

type AuditConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// String returns a string representation of the audit configuration.
func (c *AuditConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Audit ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Path))
	return b.String()
}

func (c *AuditConfig) Validate() error {
	if c.Enabled && strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("audit log path is not configured")
	}
	return nil
}
