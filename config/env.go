// Package config loads application configuration from config/app.json and
// .env (later sources win) and exposes it as an explicit Config struct that
// is handed to whatever composes the application — no process-wide getters.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultMongoDB    = "omikunle"
	defaultRedisAddr  = "localhost:6379"
	defaultJWTSecret  = "change-me-in-production"
	defaultAppPort    = "8080"
	defaultAppEnv     = "local"
	defaultAPIPrefix  = "/api/v1"
	defaultStorageURL = "http://localhost:8080/public/uploads"
)

// Config holds every runtime setting the application needs.
// Build one with Load() and pass it to internal/server.Start.
type Config struct {
	AppPort   string
	AppEnv    string
	APIPrefix string

	MongoURI string
	MongoDB  string

	JWTSecret string

	RedisAddr     string
	RedisPassword string

	StorageDisk      string
	StorageLocalRoot string
	StorageURL       string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string

	extra map[string]string
}

// Load reads config/app.json and .env, merges them over the defaults, and
// returns the resulting Config. Missing files are not an error.
func Load() (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig("config/app.json", values); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := mergeDotEnv(".env", values); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		AppPort:   pick(values, "APP_PORT", defaultAppPort),
		AppEnv:    pick(values, "APP_ENV", defaultAppEnv),
		APIPrefix: pick(values, "API_PREFIX", defaultAPIPrefix),

		MongoURI: pick(values, "MONGO_URI", defaultMongoURI),
		MongoDB:  pick(values, "MONGO_DB", defaultMongoDB),

		JWTSecret: pick(values, "JWT_SECRET", defaultJWTSecret),

		RedisAddr:     pick(values, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword: pick(values, "REDIS_PASSWORD", ""),

		StorageDisk:      pick(values, "STORAGE_DISK", "local"),
		StorageLocalRoot: pick(values, "STORAGE_LOCAL_ROOT", "public/uploads"),
		StorageURL:       pick(values, "STORAGE_URL", defaultStorageURL),

		S3Bucket:   pick(values, "S3_BUCKET", ""),
		S3Region:   pick(values, "S3_REGION", "us-east-1"),
		S3Key:      pick(values, "S3_KEY", ""),
		S3Secret:   pick(values, "S3_SECRET", ""),
		S3Endpoint: pick(values, "S3_ENDPOINT", ""),
		S3URL:      pick(values, "S3_URL", ""),

		extra: values,
	}

	return cfg, nil
}

// Get reads any raw config key with an optional fallback. Keys from .env and
// app.json are available after Load().
func (c *Config) Get(key, fallback string) string {
	if c == nil || c.extra == nil {
		return fallback
	}
	if value := strings.TrimSpace(c.extra[strings.ToUpper(key)]); value != "" {
		return value
	}
	return fallback
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":   defaultAppPort,
		"APP_ENV":    defaultAppEnv,
		"API_PREFIX": defaultAPIPrefix,
		"MONGO_URI":  defaultMongoURI,
		"MONGO_DB":   defaultMongoDB,
		"JWT_SECRET": defaultJWTSecret,
		"REDIS_ADDR": defaultRedisAddr,
	}
}

func pick(values map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}
	return fallback
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}
