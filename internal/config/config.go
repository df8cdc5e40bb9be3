package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

const (
	defaultFileStoreDir    = "files"
	defaultSessionCookie   = "wikid_session"
	defaultSessionTTLHours = 720
	defaultSessionMemSize  = 10000
	defaultStylesDir       = "styles"
)

type Config struct {
	Port             int              `json:"port"`
	LogConfig        logger.LogConfig `json:"log_config"`
	FileStore        FileStoreConfig  `json:"file_store"`
	Session          SessionConfig    `json:"session"`
	Styles           StylesConfig     `json:"styles"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
}

// FileStoreConfig selects a registered store backend; Data is decoded by
// the backend itself.
type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type SessionConfig struct {
	Type       string `json:"type"`
	Secret     string `json:"secret"`
	CookieName string `json:"cookie_name"`
	TTLHours   int    `json:"ttl_hours"`
	MemorySize int    `json:"memory_size"`
	Secure     bool   `json:"secure"`
}

type StylesConfig struct {
	Dir        string `json:"dir"`
	SassBinary string `json:"sass_binary"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.RateLimitSeconds < 0 {
		return fmt.Errorf("rate_limit_seconds must not be negative")
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	switch cfg.FileStore.Type {
	case "local":
		if cfg.FileStore.Data == nil {
			cfg.FileStore.Data = map[string]interface{}{"dir": defaultFileStoreDir}
		}
	case "s3":
		if cfg.FileStore.Data == nil {
			return fmt.Errorf("file_store.data is required for s3 store")
		}
	default:
		return fmt.Errorf("file_store.type must be local or s3")
	}
	if cfg.Session.Type == "" {
		cfg.Session.Type = "cookie"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultSessionCookie
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = defaultSessionTTLHours
	}
	switch cfg.Session.Type {
	case "cookie":
		if cfg.Session.Secret == "" {
			return fmt.Errorf("session.secret is required for cookie sessions")
		}
	case "memory":
		if cfg.Session.MemorySize == 0 {
			cfg.Session.MemorySize = defaultSessionMemSize
		}
	default:
		return fmt.Errorf("session.type must be cookie or memory")
	}
	if cfg.Styles.Dir == "" {
		cfg.Styles.Dir = defaultStylesDir
	}
	return nil
}
