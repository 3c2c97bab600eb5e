package config

import (
	"net"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	FilePath string `mapstructure:"file_path"`
}

const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoDBConfig struct {
	Database string      `mapstructure:"database"`
	CAPem    SecretValue `mapstructure:"ca_pem"`
	User     string      `mapstructure:"user"`
	Password SecretValue `mapstructure:"password"`
	Port     string      `mapstructure:"port"`
	Host     string      `mapstructure:"host"`
}

// URI builds the connection string. Credentials authenticate against admin.
func (c MongoDBConfig) URI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password.Value())
		u.RawQuery = "authSource=admin"
	}
	return u.String()
}

type TokenConfig struct {
	Enable           bool        `mapstructure:"enable"`
	RsaPrivateKeyPem SecretValue `mapstructure:"rsa_private_key_pem"`
	TokenDurationHr  int         `mapstructure:"token_duration_hr"` // in hours
}

type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
	TTLSec   int `mapstructure:"ttl_sec"`
}

type TracingConfig struct {
	Enable     bool   `mapstructure:"enable"`
	OutputFile string `mapstructure:"output_file"`
}

type SimulationConfig struct {
	DefaultQuantum float64 `mapstructure:"default_quantum"`
	MaxProcesses   int     `mapstructure:"max_processes"`
}

// ClientConfig points the submit commands at a remote simulator.
type ClientConfig struct {
	ServerURL    string      `mapstructure:"server_url"`
	ClientID     string      `mapstructure:"client_id"`
	PublicKeyPem SecretValue `mapstructure:"public_key_pem"`
}

type SimulatorConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Storage    StorageConfig    `mapstructure:"storage"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
	Token      TokenConfig      `mapstructure:"token"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Client     ClientConfig     `mapstructure:"client"`
}

var (
	simulatorCfg *SimulatorConfig
)

func GetConfig() *SimulatorConfig {
	return simulatorCfg
}

func setDefaults() {
	viper.SetDefault("server.host", ":8080")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.console", true)
	viper.SetDefault("logging.file_path", "")
	viper.SetDefault("storage.driver", StorageMemory)
	viper.SetDefault("mongodb.database", "schedsim")
	viper.SetDefault("mongodb.ca_pem", "")
	viper.SetDefault("mongodb.user", "")
	viper.SetDefault("mongodb.password", "")
	viper.SetDefault("mongodb.port", "27017")
	viper.SetDefault("mongodb.host", "localhost")
	viper.SetDefault("token.enable", false)
	viper.SetDefault("token.rsa_private_key_pem", "")
	viper.SetDefault("token.token_duration_hr", 24)
	viper.SetDefault("cache.capacity", 256)
	viper.SetDefault("cache.ttl_sec", 600)
	viper.SetDefault("tracing.enable", false)
	viper.SetDefault("tracing.output_file", "")
	viper.SetDefault("simulation.default_quantum", 2)
	viper.SetDefault("simulation.max_processes", 10000)
	viper.SetDefault("client.server_url", "http://localhost:8080")
	viper.SetDefault("client.client_id", "schedsim-cli")
	viper.SetDefault("client.public_key_pem", "")
}

// InitSimulatorConfig reads configName.toml from configPath or the project
// config directory. Every key can be overridden through SCHEDSIM_ prefixed
// environment variables, e.g. SCHEDSIM_STORAGE_DRIVER. A missing file leaves
// the defaults in place.
func InitSimulatorConfig(configName string, configPath string) (SimulatorConfig, error) {
	var cfg SimulatorConfig
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "simulator_config"
	}
	setDefaults()
	viper.AddConfigPath(GetAbsPath("config"))
	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("SCHEDSIM")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, errors.WithMessage(err, "read simulator config")
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return cfg, errors.WithMessage(err, "decode simulator config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	simulatorCfg = &cfg
	return cfg, nil
}

func (c SimulatorConfig) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageMongoDB:
	default:
		return errors.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Simulation.DefaultQuantum <= 0 {
		return errors.Errorf("simulation.default_quantum must be positive, got %v", c.Simulation.DefaultQuantum)
	}
	if c.Simulation.MaxProcesses <= 0 {
		return errors.Errorf("simulation.max_processes must be positive, got %d", c.Simulation.MaxProcesses)
	}
	if c.Cache.Capacity < 0 || c.Cache.TTLSec < 0 {
		return errors.New("cache capacity and ttl must not be negative")
	}
	return nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
