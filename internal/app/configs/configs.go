package configs

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Application configs
type Config struct {
	ServerAddress       string        `json:"server_address,omitempty" env:"SERVER_ADDRESS"`
	BaseURL             string        `json:"base_url,omitempty" env:"BASE_URL"`
	FileStoragePath     string        `json:"file_storage_path,omitempty" env:"FILE_STORAGE_PATH"`
	DatabaseDSN         string        `json:"database_dsn,omitempty" env:"DATABASE_DSN"`
	RedisURL            string        `json:"redis_url,omitempty" env:"REDIS_URL"`
	EnableHTTPS         bool          `json:"enable_https" env:"ENABLE_HTTPS"`
	TLSHost             string        `json:"tls_host,omitempty" env:"TLS_HOST"`
	GRPCServerAddress   string        `json:"grpc_server_address,omitempty" env:"GRPC_SERVER_ADDRESS"`
	TrustedSubnet       string        `json:"trusted_subnet,omitempty" env:"TRUSTED_SUBNET"`
	LogLevel            string        `json:"log_level,omitempty" env:"LOG_LEVEL"`
	RateLimitRPS        float64       `json:"rate_limit_rps,omitempty" env:"RATE_LIMIT_RPS"`
	RateLimitBurst      int           `json:"rate_limit_burst,omitempty" env:"RATE_LIMIT_BURST"`
	DumpInterval        time.Duration `json:"-" env:"DUMP_INTERVAL"`
	HealthProbeInterval time.Duration `json:"-" env:"HEALTH_PROBE_INTERVAL"`
	CacheTTL            time.Duration `json:"-" env:"CACHE_TTL"`
}

// Default configs
func Default() Config {
	return Config{
		ServerAddress:       "localhost:8080",
		BaseURL:             "http://localhost:8080",
		GRPCServerAddress:   "localhost:3200",
		LogLevel:            "info",
		RateLimitRPS:        10,
		RateLimitBurst:      20,
		DumpInterval:        5 * time.Second,
		HealthProbeInterval: 10 * time.Second,
		CacheTTL:            time.Hour,
	}
}

// Parse configs from command line, config file, .env and environment
func Parse() (Config, error) {
	return ParseArgs(os.Args[0], os.Args[1:])
}

// ParseArgs applies, in increasing priority, defaults, json config file, flags and environment
func ParseArgs(name string, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var (
		flags          Config
		configFilePath string
	)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&flags.ServerAddress, "a", "", "server's address")
	fs.StringVar(&flags.BaseURL, "b", "", "base address of the service")
	fs.StringVar(&flags.FileStoragePath, "f", "", "file storage path")
	fs.StringVar(&flags.DatabaseDSN, "d", "", "database URL")
	fs.StringVar(&flags.RedisURL, "r", "", "redis URL")
	fs.BoolVar(&flags.EnableHTTPS, "s", false, "enable HTTPS")
	fs.StringVar(&flags.TLSHost, "host", "", "host name for the autocert certificate")
	fs.StringVar(&flags.GRPCServerAddress, "g", "", "gRPC server's address")
	fs.StringVar(&flags.TrustedSubnet, "t", "", "trusted subnet in CIDR notation")
	fs.StringVar(&flags.LogLevel, "l", "", "log level")
	fs.Float64Var(&flags.RateLimitRPS, "rps", 0, "requests per second allowed per client")
	fs.IntVar(&flags.RateLimitBurst, "burst", 0, "request burst allowed per client")
	fs.StringVar(&configFilePath, "c", "", "file path with json application configs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if envConfigFilePath := os.Getenv("CONFIG"); envConfigFilePath != "" {
		configFilePath = envConfigFilePath
	}

	config := Default()
	if configFilePath != "" {
		configData, err := os.ReadFile(configFilePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read configs: %w", err)
		}
		if err = json.Unmarshal(configData, &config); err != nil {
			return Config{}, fmt.Errorf("failed to parse configs: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			config.ServerAddress = flags.ServerAddress
		case "b":
			config.BaseURL = flags.BaseURL
		case "f":
			config.FileStoragePath = flags.FileStoragePath
		case "d":
			config.DatabaseDSN = flags.DatabaseDSN
		case "r":
			config.RedisURL = flags.RedisURL
		case "s":
			config.EnableHTTPS = flags.EnableHTTPS
		case "host":
			config.TLSHost = flags.TLSHost
		case "g":
			config.GRPCServerAddress = flags.GRPCServerAddress
		case "t":
			config.TrustedSubnet = flags.TrustedSubnet
		case "l":
			config.LogLevel = flags.LogLevel
		case "rps":
			config.RateLimitRPS = flags.RateLimitRPS
		case "burst":
			config.RateLimitBurst = flags.RateLimitBurst
		}
	})

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

// Use database storage
func (c Config) UseDBStorage() bool {
	return c.DatabaseDSN != ""
}

// Use file storage
func (c Config) UseFileStorage() bool {
	return c.FileStoragePath != ""
}

// Use redis cache
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Use HTTPS
func (c Config) UseHTTPS() bool {
	return c.EnableHTTPS
}
