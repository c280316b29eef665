package driven

// ConfigStore reads and writes application configuration keyed by dotted
// names such as "transport.base_url".
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns "" when key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when key is missing or not a number.
	GetInt(key string) int

	// GetBool returns false when key is missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil when key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores value under key in memory. Call Save to persist it.
	Set(key string, value any) error

	// Save writes the configuration to its file.
	Save() error

	// Load re-reads the configuration file.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
