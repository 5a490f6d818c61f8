// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"personal-ledger/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config
}

// LoadConfig loads configuration from environment variables (LEDGER_
// prefix, e.g. LEDGER_DB_HOST) with an optional config.yaml alongside
// the binary. Every key has a development-friendly default, so a bare
// `go run` against a local PostgreSQL works out of the box.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ledger")
	v.SetDefault("db.password", "ledger")
	v.SetDefault("db.name", "ledgerdb")
	v.SetDefault("db.sslmode", "disable")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	dbPort := v.GetInt("db.port")
	if dbPort <= 0 || dbPort > 65535 {
		return nil, fmt.Errorf("invalid db.port: %d", dbPort)
	}

	return &AppConfig{
		ServerPort: v.GetString("server.port"),
		DB: db.Config{
			Host:     v.GetString("db.host"),
			Port:     dbPort,
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
	}, nil
}
