package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Mongo       MongoConfig       `mapstructure:"mongo" validate:"required"`
	Relay       RelayConfig       `mapstructure:"relay"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Queries     QueriesConfig     `mapstructure:"queries"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// MongoConfig holds the persistent store configuration.
type MongoConfig struct {
	URI               string `mapstructure:"uri" validate:"required"`
	Database          string `mapstructure:"database" validate:"required"`
	ConnectionTimeout int    `mapstructure:"connection_timeout" validate:"required,min=1"` // seconds
	PingTimeout       int    `mapstructure:"ping_timeout" validate:"required,min=1"`       // seconds
}

// RelayConfig holds the upstream platform connection configuration.
// When Enabled is false the service runs query-only and ingests nothing.
type RelayConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	URL               string `mapstructure:"url" validate:"required_if=Enabled true"`
	APIKey            string `mapstructure:"api_key" validate:"required_if=Enabled true"`
	KeepaliveInterval int    `mapstructure:"keepalive_interval" validate:"omitempty,min=1"` // seconds
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	FlushPeriod string `mapstructure:"flush_period" validate:"required"` // duration string, e.g. "1m"
}

// QueriesConfig holds query engine configuration.
type QueriesConfig struct {
	// StrictLaterFilter switches the recent-activity "came later" filter from the
	// upstream-compatible comparison to a literal five-minute threshold.
	StrictLaterFilter bool `mapstructure:"strict_later_filter"`
}
