package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"sales-assistant/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	ObjectStoreType  string
	LocalStoreDir    string
	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	SSEKMSKeyID      string
	MinioEndpoint    string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioBucket      string
	MinioUseSSL      bool
	DatabaseURL      string
	OpenAIAPIKey     string
	LLMModel         string
	LLMMaxTokens     int
	LLMTimeout       time.Duration
	MaxUploadBytes   int64
	AnalyzeRateLimit float64
	AnalyzeBurst     int
	DashboardBaseURL string
}

// Load reads configuration from an optional YAML file and environment variables.
// Environment variables win over file values; file values win over defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		telemetry.Warn("config.file.ignored", map[string]any{"err": err.Error()})
	}

	env := normalizeEnv(getEnv("ENV", file.Env, "dev"))
	dbURL := getEnv("DATABASE_URL", file.Database.URL, "")
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url.missing", map[string]any{"env": env})
	}

	return Config{
		Port:             getEnv("PORT", file.Server.Port, "8000"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", strings.Join(file.Server.CORSOrigins, ","), "http://localhost:3000,http://127.0.0.1:3000")),
		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", file.Storage.Type, "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", file.Storage.LocalDir, "./uploads"),
		AWSRegion:        getEnv("AWS_REGION", file.Storage.S3.Region, ""),
		S3Bucket:         getEnv("S3_BUCKET", file.Storage.S3.Bucket, ""),
		S3Prefix:         getEnv("S3_PREFIX", file.Storage.S3.Prefix, "menus"),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", "", ""),
		MinioEndpoint:    getEnv("MINIO_ENDPOINT", file.Storage.Minio.Endpoint, ""),
		MinioAccessKey:   getEnv("MINIO_ACCESS_KEY", file.Storage.Minio.AccessKey, ""),
		MinioSecretKey:   getEnv("MINIO_SECRET_KEY", file.Storage.Minio.SecretKey, ""),
		MinioBucket:      getEnv("MINIO_BUCKET", file.Storage.Minio.Bucket, "menus"),
		MinioUseSSL:      getBool("MINIO_USE_SSL", file.Storage.Minio.UseSSL),
		DatabaseURL:      dbURL,
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", "", ""),
		LLMModel:         getEnv("LLM_MODEL", file.LLM.Model, "gpt-4o-mini"),
		LLMMaxTokens:     getInt("LLM_MAX_TOKENS", file.LLM.MaxTokens, 1000),
		LLMTimeout:       getDuration("LLM_TIMEOUT", 120*time.Second),
		MaxUploadBytes:   int64(getInt("MAX_UPLOAD_BYTES", 0, defaultMaxUploadBytes)),
		AnalyzeRateLimit: getFloat("ANALYZE_RATE_PER_SEC", 0),
		AnalyzeBurst:     getInt("ANALYZE_BURST", 0, 5),
		DashboardBaseURL: getEnv("DASHBOARD_BASE_URL", file.Dashboard.BaseURL, "http://localhost:8000"),
	}
}

func getEnv(key, fileVal, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	if strings.TrimSpace(fileVal) != "" {
		return fileVal
	}
	return def
}

func getInt(key string, fileVal, def int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
		telemetry.Warn("config.env.invalid", map[string]any{"key": key, "value": raw})
	}
	if fileVal > 0 {
		return fileVal
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			return v
		}
		telemetry.Warn("config.env.invalid", map[string]any{"key": key, "value": raw})
	}
	return def
}

func getBool(key string, fileVal bool) bool {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err == nil {
			return v
		}
	}
	return fileVal
}

func getDuration(key string, def time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}
