// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Config is built once at startup and passed by reference into every
// component that needs it. Nothing reads the process environment after
// Setup has run.
type Config struct {
	LogLevel string

	Port    int
	BaseURL string

	MongoURI    string
	MongoDBName string

	JWTSecret string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	UploadDir   string
	CORSOrigins []string
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "PORT")
	v.BindEnv("host.base_url", "BASE_URL")
	v.BindEnv("host.cors_origins", "CORS_ORIGINS")

	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")

	v.BindEnv("jwt.secret", "JWT_SECRET")

	v.BindEnv("mail.host", "EMAIL_HOST")
	v.BindEnv("mail.port", "EMAIL_PORT")
	v.BindEnv("mail.user", "EMAIL_USER")
	v.BindEnv("mail.pass", "EMAIL_PASS")
	v.BindEnv("mail.from", "EMAIL_FROM")

	v.BindEnv("upload.dir", "UPLOAD_DIR")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8000)
	v.SetDefault("host.base_url", "http://localhost:8000")
	v.SetDefault("host.cors_origins", []string{"*"})

	v.SetDefault("mongo.database", "vidshare")

	v.SetDefault("mail.port", 587)

	v.SetDefault("upload.dir", "uploads")

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, env variables are enough to run
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("mongo.uri") == "" {
		return errors.New("mongo.uri is missing, set the MONGO_URI environment variable")
	}

	if v.GetString("jwt.secret") == "" {
		return errors.New("jwt.secret is missing, set the JWT_SECRET environment variable")
	}

	return nil
}

// New snapshots the parsed configuration into an immutable value.
// Call after Setup has succeeded.
func New() *Config {
	return &Config{
		LogLevel:    v.GetString("app.log_level"),
		Port:        v.GetInt("host.port"),
		BaseURL:     v.GetString("host.base_url"),
		MongoURI:    v.GetString("mongo.uri"),
		MongoDBName: v.GetString("mongo.database"),
		JWTSecret:   v.GetString("jwt.secret"),
		MailHost:    v.GetString("mail.host"),
		MailPort:    v.GetInt("mail.port"),
		MailUser:    v.GetString("mail.user"),
		MailPass:    v.GetString("mail.pass"),
		MailFrom:    v.GetString("mail.from"),
		UploadDir:   v.GetString("upload.dir"),
		CORSOrigins: v.GetStringSlice("host.cors_origins"),
	}
}
