package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
)

type Config struct {
	Port       string
	GinMode    string
	CORSOrigin string
	LogLevel   string

	DataDir     string
	StoreDriver string
	DBURL       string

	JWTSecret string
	JWTTTL    time.Duration

	Google GoogleConfig

	RegionsFile      string
	ProtectedUserID  int
	DefaultPageLimit int

	// DotEnvLoaded is false when no .env file was found.
	DotEnvLoaded bool
}

type GoogleConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendRedirect string
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != ""
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("STORE_DRIVER", DriverJSON)
	v.SetDefault("DB_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("GOOGLE_FRONTEND_REDIRECT", "")
	v.SetDefault("REGIONS_FILE", "")
	v.SetDefault("PROTECTED_USER_ID", 1)
	v.SetDefault("DEFAULT_PAGE_LIMIT", 8)
	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		CORSOrigin:  v.GetString("CORS_ORIGIN"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		DataDir:     v.GetString("DATA_DIR"),
		StoreDriver: v.GetString("STORE_DRIVER"),
		DBURL:       v.GetString("DB_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		Google: GoogleConfig{
			ClientID:         v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret:     v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:      v.GetString("GOOGLE_REDIRECT_URL"),
			FrontendRedirect: v.GetString("GOOGLE_FRONTEND_REDIRECT"),
		},
		RegionsFile:      v.GetString("REGIONS_FILE"),
		ProtectedUserID:  v.GetInt("PROTECTED_USER_ID"),
		DefaultPageLimit: v.GetInt("DEFAULT_PAGE_LIMIT"),
		DotEnvLoaded:     loaded,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	switch c.StoreDriver {
	case DriverJSON:
	case DriverPostgres:
		if c.DBURL == "" {
			return fmt.Errorf("missing required environment variable: DB_URL (STORE_DRIVER=postgres)")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Google.Enabled() && (c.Google.ClientSecret == "" || c.Google.RedirectURL == "") {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL are required with GOOGLE_CLIENT_ID")
	}
	return nil
}

type regionsFile struct {
	Regions map[string][]string `yaml:"regions"`
}

// LoadRegions reads a region bucket table:
//
//	regions:
//	  nsw: [sydney, nsw]
//	  vic: [melbourne, victoria]
func LoadRegions(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}
	var f regionsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse regions file %s: %w", path, err)
	}
	if len(f.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s defines no regions", path)
	}
	return f.Regions, nil
}
