package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log          LogConfig
	Registration RegistrationConfig
	Audit        AuditConfig
	Catalog      CatalogConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// RegistrationConfig tunes the registration engine and student records.
type RegistrationConfig struct {
	// MaxCourseLoad caps how many courses a student record accepts.
	// Zero means unlimited.
	MaxCourseLoad int
}

// AuditConfig controls the in-memory registration audit trail.
type AuditConfig struct {
	Enabled bool
	// Capacity bounds the trail; oldest events are evicted first.
	Capacity int
}

// CatalogConfig points the seed loader at course definition files.
type CatalogConfig struct {
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Registration = RegistrationConfig{
		MaxCourseLoad: v.GetInt("MAX_COURSES_PER_STUDENT"),
	}

	auditCapacity := v.GetInt("AUDIT_CAPACITY")
	if auditCapacity <= 0 {
		auditCapacity = 1024
	}
	cfg.Audit = AuditConfig{
		Enabled:  v.GetBool("AUDIT_ENABLED"),
		Capacity: auditCapacity,
	}

	cfg.Catalog = CatalogConfig{
		Dir: v.GetString("CATALOG_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MAX_COURSES_PER_STUDENT", 0)

	v.SetDefault("AUDIT_ENABLED", true)
	v.SetDefault("AUDIT_CAPACITY", 1024)

	v.SetDefault("CATALOG_DIR", "")
}
