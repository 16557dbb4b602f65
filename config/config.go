package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Cache      CacheConfig      `json:"cache"`
	Redis      RedisConfig      `json:"redis"`
	MongoDB    MongoDBConfig    `json:"mongodb"`
	GeoIP      GeoIPConfig      `json:"geoip"`
	Discord    DiscordConfig    `json:"discord"`
	Rates      RatesConfig      `json:"rates"`
	Comparison ComparisonConfig `json:"comparison"`
}

type ServerConfig struct {
	Port           int      `json:"port"`
	Host           string   `json:"host"`
	AllowedOrigins []string `json:"allowed_origins"`
	RateLimit      float64  `json:"rate_limit_per_second"` // 0 disables limiting
	RateBurst      int      `json:"rate_burst"`
}

type CacheConfig struct {
	Enabled bool `json:"enabled"`
	TTL     int  `json:"ttl_seconds"`
}

type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Enabled  bool   `json:"enabled"`
	UseTLS   bool   `json:"use_tls"`
}

type MongoDBConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	Enabled  bool   `json:"enabled"`
}

type GeoIPConfig struct {
	DBPath string `json:"db_path"`
}

type DiscordConfig struct {
	Token     string `json:"token"`
	ChannelID string `json:"channel_id"`
}

type RatesConfig struct {
	SchedulePath  string `json:"schedule_path"` // YAML file, empty = built-in schedule
	CurrentStable string `json:"current_stable"`
	MinSupported  string `json:"min_supported"`
}

// ComparisonConfig scales recruiting assumptions for the scenario comparison
type ComparisonConfig struct {
	PessimisticFactor float64 `json:"pessimistic_factor"`
	OptimisticFactor  float64 `json:"optimistic_factor"`
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			AllowedOrigins: []string{"*"},
			RateLimit:      20,
			RateBurst:      40,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     300,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
			DB:      0,
			Enabled: false,
			UseTLS:  false,
		},
		MongoDB: MongoDBConfig{
			URI:      "mongodb://localhost:27017",
			Database: "sharecalc",
			Enabled:  false,
		},
		Rates: RatesConfig{
			CurrentStable: "1.0.0",
			MinSupported:  "1.0.0",
		},
		Comparison: ComparisonConfig{
			PessimisticFactor: 0.5,
			OptimisticFactor:  1.5,
		},
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config/config.json"
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err == nil {
			defer file.Close()
			if err := json.NewDecoder(file).Decode(cfg); err != nil {
				fmt.Printf("Warning: Failed to decode config file: %v\n", err)
			}
		}
	}

	// Environment overrides config file
	loadEnv(cfg)

	// Flags override everything
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var serverPort int
	var serverHost string
	var rates string

	fs.IntVar(&serverPort, "port", 0, "Server port")
	fs.StringVar(&serverHost, "host", "", "Server host")
	fs.StringVar(&rates, "rates", "", "Rate schedule YAML file")

	_ = fs.Parse(os.Args[1:])

	if isFlagPassed(fs, "port") {
		cfg.Server.Port = serverPort
	}
	if isFlagPassed(fs, "host") {
		cfg.Server.Host = serverHost
	}
	if isFlagPassed(fs, "rates") {
		cfg.Rates.SchedulePath = rates
	}

	return cfg, nil
}

func isFlagPassed(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func loadEnv(cfg *Config) {
	// Server
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = p
		}
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.Server.AllowedOrigins = parts
	}
	if val := os.Getenv("RATE_LIMIT"); val != "" {
		if p, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Server.RateLimit = p
		}
	}
	if val := os.Getenv("RATE_BURST"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Server.RateBurst = p
		}
	}

	// Cache
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		cfg.Cache.Enabled = val == "true" || val == "1"
	}
	if val := os.Getenv("CACHE_TTL"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Cache.TTL = p
		}
	}

	// Redis
	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = p
		}
	}
	if val := os.Getenv("REDIS_ENABLED"); val != "" {
		cfg.Redis.Enabled = val == "true" || val == "1"
	}
	if val := os.Getenv("REDIS_TLS"); val != "" {
		cfg.Redis.UseTLS = val == "true" || val == "1"
	}

	// MongoDB
	if val := os.Getenv("MONGODB_URI"); val != "" {
		cfg.MongoDB.URI = val
	}
	if val := os.Getenv("MONGODB_DATABASE"); val != "" {
		cfg.MongoDB.Database = val
	}
	if val := os.Getenv("MONGODB_ENABLED"); val != "" {
		cfg.MongoDB.Enabled = val == "true" || val == "1"
	}

	if val := os.Getenv("GEOIP_DB_PATH"); val != "" {
		cfg.GeoIP.DBPath = val
	}

	if val := os.Getenv("DISCORD_BOT_TOKEN"); val != "" {
		cfg.Discord.Token = val
	}
	if val := os.Getenv("DISCORD_CHANNEL_ID"); val != "" {
		cfg.Discord.ChannelID = val
	}

	// Rates
	if val := os.Getenv("RATE_SCHEDULE_PATH"); val != "" {
		cfg.Rates.SchedulePath = val
	}
	if val := os.Getenv("RATE_SCHEDULE_MIN_SUPPORTED"); val != "" {
		cfg.Rates.MinSupported = val
	}

	// Comparison
	if val := os.Getenv("COMPARISON_PESSIMISTIC_FACTOR"); val != "" {
		if p, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Comparison.PessimisticFactor = p
		}
	}
	if val := os.Getenv("COMPARISON_OPTIMISTIC_FACTOR"); val != "" {
		if p, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Comparison.OptimisticFactor = p
		}
	}
}

func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}
