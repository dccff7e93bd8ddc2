package config

type Config struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// Database settings
	Database DatabaseConfig `json:"database"`

	// Security settings
	Security SecurityConfig `json:"security"`

	// Logging settings
	Logging LoggingConfig `json:"logging"`
}

type ServerConfig struct {
	Host           string   `json:"host" default:"localhost"`
	Port           int      `json:"port" default:"5000"`
	ReadTimeout    int      `json:"read_timeout" default:"30"`  // seconds
	WriteTimeout   int      `json:"write_timeout" default:"30"` // seconds
	IdleTimeout    int      `json:"idle_timeout" default:"120"` // seconds
	GracefulStop   int      `json:"graceful_stop" default:"30"` // seconds
	AllowedOrigins []string `json:"allowed_origins" default:"[\"http://localhost:3000\",\"http://localhost:5173\"]"`
}

type DatabaseConfig struct {
	Driver string `json:"driver" default:"mongodb"` // mongodb, postgres, sqlite

	// MongoDB settings
	MongoURI        string `json:"mongo_uri"`
	MongoDatabase   string `json:"mongo_database" default:"freightpro"`
	MongoCollection string `json:"mongo_collection" default:"pod_destinations"`

	// SQL settings
	Host     string `json:"host" default:"localhost"`
	Port     int    `json:"port" default:"5432"`
	Database string `json:"database" default:"freightpro.db"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode" default:"disable"`

	// Connection pool settings
	MaxOpenConns    int `json:"max_open_conns" default:"25"`
	MaxIdleConns    int `json:"max_idle_conns" default:"5"`
	ConnMaxLifetime int `json:"conn_max_lifetime" default:"300"` // seconds

	// Insert the sample destinations at startup
	SeedOnStart bool `json:"seed_on_start" default:"false"`
}

type SecurityConfig struct {
	JWTSecret          string `json:"jwt_secret"`
	JWTIssuer          string `json:"jwt_issuer" default:"freightpro"`
	JWTExpirationHours int    `json:"jwt_expiration_hours" default:"24"`

	// Rate limiting
	RateLimitEnabled   bool `json:"rate_limit_enabled" default:"true"`
	RateLimitPerMinute int  `json:"rate_limit_per_minute" default:"120"`
	RateLimitBurstSize int  `json:"rate_limit_burst_size" default:"20"`
}

type LoggingConfig struct {
	Level      string `json:"level" default:"info"`    // debug, info, warn, error
	Format     string `json:"format" default:"json"`   // json, text
	Output     string `json:"output" default:"stdout"` // stdout, file
	FilePath   string `json:"file_path" default:"logs/freightpro.log"`
	MaxSize    int    `json:"max_size" default:"100"` // MB
	MaxBackups int    `json:"max_backups" default:"3"`
	MaxAge     int    `json:"max_age" default:"28"` // days
	Compress   bool   `json:"compress" default:"true"`
}
