package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	MySQLHost string
	MySQLDB   string
	MySQLUser string
	MySQLPass string
}

// LoadEnv reads configuration from the process environment, with an optional
// .env file in the working directory as a fallback for local development.
func LoadEnv() Env {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional; real env vars always win
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("MYSQL_HOST", "127.0.0.1:3306")
	v.SetDefault("MYSQL_DB", "bestiary")
	v.SetDefault("MYSQL_USER", "root")
	v.SetDefault("MYSQL_PASS", "")

	return Env{
		AppAddr:   strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:   strings.TrimSpace(v.GetString("GIN_MODE")),
		MySQLHost: strings.TrimSpace(v.GetString("MYSQL_HOST")),
		MySQLDB:   strings.TrimSpace(v.GetString("MYSQL_DB")),
		MySQLUser: strings.TrimSpace(v.GetString("MYSQL_USER")),
		MySQLPass: v.GetString("MYSQL_PASS"),
	}
}
