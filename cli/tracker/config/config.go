package config

/*
Описание конфигурационного файла
*/

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"gopkg.in/yaml.v2"
)

type Settings struct {
	ApiPort int32 `yaml:"api_port"`

	LogLevel      string `yaml:"log_level"`
	LogFilePath   string `yaml:"log_file_path"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`

	Store   map[string]string            `yaml:"storage"`
	Exports map[string]map[string]string `yaml:"exports"`

	ApiKeyRefreshCronExpression string `yaml:"api_key_refresh_cron"`
	MigrationsPath              string `yaml:"migrations_path"`

	ExportBuffer  int `yaml:"export_buffer"`
	ExportWorkers int `yaml:"export_workers"`
}

func New(confPath string) (Settings, error) {
	c := Settings{}
	data, err := os.ReadFile(confPath)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return c, err
	}

	if c.ApiPort == 0 {
		c.ApiPort = 8080
	}

	if c.ApiKeyRefreshCronExpression == "" {
		c.ApiKeyRefreshCronExpression = "0 3 * * *"
	}

	if c.MigrationsPath == "" {
		c.MigrationsPath = "file://migrations"
	}

	if c.ExportBuffer <= 0 {
		c.ExportBuffer = 1024
	}

	if len(c.Store) == 0 {
		return c, fmt.Errorf("в конфиге не задан раздел storage")
	}
	for _, key := range []string{"host", "user", "password", "database"} {
		if c.Store[key] == "" {
			return c, fmt.Errorf("в разделе storage не задан параметр %s", key)
		}
	}
	if c.Store["port"] == "" {
		c.Store["port"] = "5432"
	}
	if c.Store["sslmode"] == "" {
		c.Store["sslmode"] = "disable"
	}

	return c, nil
}

func (s *Settings) GetLogLevel() log.Level {
	var lvl log.Level

	switch s.LogLevel {
	case "DEBUG":
		lvl = log.DebugLevel
	case "INFO":
		lvl = log.InfoLevel
	case "WARN":
		lvl = log.WarnLevel
	case "ERROR":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return lvl
}

// GetStoreDSN возвращает строку подключения для gorm.
func (s *Settings) GetStoreDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.Store["host"], s.Store["user"], s.Store["password"], s.Store["database"], s.Store["port"], s.Store["sslmode"])
}

// GetMigrateDatabaseURL возвращает URL подключения для golang-migrate.
func (s *Settings) GetMigrateDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		s.Store["user"], s.Store["password"], s.Store["host"], s.Store["port"], s.Store["database"], s.Store["sslmode"])
}
