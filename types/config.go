package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Port         int    `yaml:"port"`
	AccessCode   string `yaml:"accessCode"`
	MediaRoot    string `yaml:"mediaRoot"`
	DatabaseDSN  string `yaml:"databaseDSN,omitempty"` // optional Postgres DSN for the write-only metadata trail
	RateLimitRPS int    `yaml:"rateLimitRPS"`
	RateBurst    int    `yaml:"rateBurst"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log           string
	UseConfigPath string
	UseMediaRoot  string
	UsePort       int
	UseAccessCode string
}
