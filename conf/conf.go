package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFile  = "contactform.toml"
	DefaultHttpAddress = ":8080"
	DefaultExportDir   = "contact_leads"
)

// StorageConfig is everything needed to reach the submissions bucket.
type StorageConfig struct {
	Region   string
	Bucket   string
	Endpoint string // optional, for S3-compatible services

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

func (s StorageConfig) HasStaticCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// MissingForWrite lists the settings a writer cannot work without.
func (s StorageConfig) MissingForWrite() []string {
	var missing []string
	if s.Region == "" {
		missing = append(missing, "region")
	}
	if s.AccessKeyID == "" {
		missing = append(missing, "access key id")
	}
	if s.SecretAccessKey == "" {
		missing = append(missing, "secret access key")
	}
	if s.Bucket == "" {
		missing = append(missing, "bucket")
	}
	return missing
}

type ServerConfig struct {
	Address        string
	AllowedOrigins []string
	LogLevel       string
	LogJSON        bool
}

type ExportConfig struct {
	OutDir string
}

type Config struct {
	Server ServerConfig
	Writer StorageConfig
	Reader StorageConfig
	Export ExportConfig
}

// WriterConfigured reports whether ingestion can write to storage.
func (c *Config) WriterConfigured() bool {
	return len(c.Writer.MissingForWrite()) == 0
}

type LoadOptions struct {
	// DotEnvFiles are loaded into the process environment when they exist.
	DotEnvFiles []string
	// ConfigFile overrides CONTACT_CONFIG_FILE / DefaultConfigFile.
	ConfigFile string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

type fileConfig struct {
	Server struct {
		Address        string   `toml:"address"`
		AllowedOrigins []string `toml:"allowed_origins"`
		LogLevel       string   `toml:"log_level"`
		LogJSON        *bool    `toml:"log_json"`
	} `toml:"server"`
	Storage struct {
		Region   string `toml:"region"`
		Bucket   string `toml:"bucket"`
		Endpoint string `toml:"endpoint"`
	} `toml:"storage"`
	Export struct {
		OutDir string `toml:"out_dir"`
	} `toml:"export"`
}

// Load assembles the configuration once: optional .env files, then an
// optional TOML file, then environment variables on top.
func Load(opts LoadOptions) (*Config, error) {
	if err := LoadDotEnv(opts.DotEnvFiles...); err != nil {
		return nil, err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	path := opts.ConfigFile
	if path == "" {
		path = FirstEnv(getenv, "CONTACT_CONFIG_FILE")
	}
	if path == "" {
		path = DefaultConfigFile
	}
	file, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Address:        file.Server.Address,
			AllowedOrigins: file.Server.AllowedOrigins,
			LogLevel:       file.Server.LogLevel,
		},
		Export: ExportConfig{OutDir: file.Export.OutDir},
	}
	if file.Server.LogJSON != nil {
		cfg.Server.LogJSON = *file.Server.LogJSON
	}

	if v := FirstEnv(getenv, "CONTACT_HTTP_ADDR"); v != "" {
		cfg.Server.Address = v
	}
	if v := FirstEnv(getenv, "CONTACT_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := FirstEnv(getenv, "CONTACT_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := FirstEnv(getenv, "CONTACT_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CONTACT_LOG_JSON: %w", err)
		}
		cfg.Server.LogJSON = b
	}
	if v := FirstEnv(getenv, "CONTACT_EXPORT_DIR"); v != "" {
		cfg.Export.OutDir = v
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultHttpAddress
	}
	if cfg.Export.OutDir == "" {
		cfg.Export.OutDir = DefaultExportDir
	}

	shared := StorageConfig{
		Region:   orDefault(FirstEnv(getenv, "AWS_REGION"), file.Storage.Region),
		Bucket:   orDefault(FirstEnv(getenv, "AWS_S3_BUCKET"), file.Storage.Bucket),
		Endpoint: orDefault(FirstEnv(getenv, "AWS_ENDPOINT_URL_S3"), file.Storage.Endpoint),
	}

	cfg.Writer = shared
	cfg.Writer.AccessKeyID = FirstEnv(getenv, writerAccessKeyIDVars...)
	cfg.Writer.SecretAccessKey = FirstEnv(getenv, writerSecretAccessKeyVars...)
	cfg.Writer.SessionToken = FirstEnv(getenv, writerSessionTokenVars...)

	cfg.Reader = shared
	cfg.Reader.AccessKeyID = FirstEnv(getenv, readerAccessKeyIDVars...)
	cfg.Reader.SecretAccessKey = FirstEnv(getenv, readerSecretAccessKeyVars...)
	cfg.Reader.SessionToken = FirstEnv(getenv, readerSessionTokenVars...)

	return cfg, nil
}

// LoadDotEnv loads each file into the process environment. Files that do not
// exist are skipped; existing variables are not overwritten.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("failed to load %s: %w", f, err)
	}
	return nil
}

func readConfigFile(path string) (fileConfig, error) {
	var file fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return file, nil
	}
	if err != nil {
		return file, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
