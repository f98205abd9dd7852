package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Env    string `yaml:"env"`
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Storage struct {
		Type     string `yaml:"type"`
		LocalDir string `yaml:"localDir"`
		S3       struct {
			Region string `yaml:"region"`
			Bucket string `yaml:"bucket"`
			Prefix string `yaml:"prefix"`
		} `yaml:"s3"`
		Minio struct {
			Endpoint  string `yaml:"endpoint"`
			AccessKey string `yaml:"accessKey"`
			SecretKey string `yaml:"secretKey"`
			Bucket    string `yaml:"bucket"`
			UseSSL    bool   `yaml:"useSSL"`
		} `yaml:"minio"`
	} `yaml:"storage"`
	LLM struct {
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"maxTokens"`
	} `yaml:"llm"`
	Dashboard struct {
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"dashboard"`
}

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment are not overwritten.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func loadFile(path string) (fileConfig, error) {
	var cfg fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s not found", path)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
