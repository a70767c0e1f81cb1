package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database    DatabaseConfig   `json:"database"`
	JWTSecret   string           `json:"jwt_secret"`
	Port        int              `json:"port"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	WebURL      string           `json:"web_url"`
	CORSOrigins []string         `json:"cors_origins"`
	LogConfig   logger.LogConfig `json:"log_config"`
	FileStore   FileStoreConfig  `json:"file_store"`
	Mail        MailConfig       `json:"mail"`
	Jobs        JobsConfig       `json:"jobs"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type JobsConfig struct {
	ShareSweepSpec     string `json:"share_sweep_spec"`
	TrashPurgeSpec     string `json:"trash_purge_spec"`
	TrashRetentionDays int    `json:"trash_retention_days"`
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
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.WebURL == "" {
		cfg.WebURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/files"}
	}
	if cfg.Jobs.ShareSweepSpec == "" {
		cfg.Jobs.ShareSweepSpec = "*/30 * * * *"
	}
	if cfg.Jobs.TrashPurgeSpec == "" {
		cfg.Jobs.TrashPurgeSpec = "0 4 * * *"
	}
	if cfg.Jobs.TrashRetentionDays <= 0 {
		cfg.Jobs.TrashRetentionDays = 30
	}
	return &cfg, nil
}
