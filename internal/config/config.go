package config

import (
	"os"
	"strconv"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
)

const (
	defaultSyncPageSize     = 500
	defaultSyncLookbackDays = 90
)

type Config struct {
	ProjectID        string
	Port             string
	LogLevel         string
	PlaidClientID    string
	PlaidSecret      string
	PlaidSecretName  string // Secret Manager resource name; overrides PLAIDSECRET when set
	PlaidEnvironment dto.PlaidEnvironment
	KMSKeyName       string
	SyncPageSize     int
	SyncLookbackDays int
}

func New() *Config {
	return &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Port:             getDefault("PORT", "8080"),
		LogLevel:         os.Getenv("LOGLEVEL"),
		PlaidClientID:    os.Getenv("PLAIDCLIENTID"),
		PlaidSecret:      os.Getenv("PLAIDSECRET"),
		PlaidSecretName:  os.Getenv("PLAIDSECRETNAME"),
		PlaidEnvironment: getPlaidEnvironment(os.Getenv("PLAIDENVIRONMENT")),
		KMSKeyName:       os.Getenv("KMSKEYNAME"),
		SyncPageSize:     getInt("SYNCPAGESIZE", defaultSyncPageSize),
		SyncLookbackDays: getInt("SYNCLOOKBACKDAYS", defaultSyncLookbackDays),
	}
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getPlaidEnvironment(env string) dto.PlaidEnvironment {
	switch env {
	case "sandbox":
		return dto.PlaidSandbox
	case "development":
		return dto.PlaidDev
	default: // "production"
		return dto.PlaidProduction
	}
}
