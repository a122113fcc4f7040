package persist

// DefaultPath is the inventory file used when no path is configured.
const DefaultPath = "CDInventory.dat"

// Config holds gateway parameters.
type Config struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // Inventory file location.
}

// DefaultConfig returns the default persistence configuration.
func DefaultConfig() Config {
	return Config{Path: DefaultPath}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}
