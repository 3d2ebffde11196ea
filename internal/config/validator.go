package config

import (
	"fmt"
	"os"
	"strings"
)

// postgresEnvVars fall back to local defaults when unset, which only suits development
var postgresEnvVars = []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}

const examplePassword = "change_this_secure_password"

// Warnings lists settings that are valid but likely unintended.
// They are logged at startup and never stop the service.
func (c *Config) Warnings() []string {
	var warnings []string

	switch c.DBDriver {
	case DriverMemory:
		warnings = append(warnings, "DB_DRIVER=memory keeps the catalog in process memory; recipes are lost on restart")
	case DriverPostgres:
		var unset []string
		for _, key := range postgresEnvVars {
			if os.Getenv(key) == "" {
				unset = append(unset, key)
			}
		}
		if len(unset) > 0 && !c.IsDevelopment() {
			warnings = append(warnings, fmt.Sprintf("postgres settings fall back to defaults: %s", strings.Join(unset, ", ")))
		}
		if c.DBPassword == examplePassword {
			warnings = append(warnings, "DB_PASSWORD is the example value from .env.example")
		}
	}

	if c.APIKey == "" && !c.IsDevelopment() {
		warnings = append(warnings, fmt.Sprintf("API_KEY is empty; /api/v1 is open in %s", c.Environment))
	}
	if c.GraphCacheSize == 0 {
		warnings = append(warnings, "GRAPH_CACHE_SIZE=0 disables the recipe graph cache; every expansion reads the store")
	}
	if c.BOMMaxDepth == 0 {
		warnings = append(warnings, "BOM_MAX_DEPTH=0 removes the expansion depth limit")
	}

	return warnings
}
