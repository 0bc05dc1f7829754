package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile   string = "./config.yml"
	ConfigEnv    string = "./config.env"
	ConfigPrefix string = "LIBR"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"LIBR_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"LIBR_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"LIBR_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"LIBR_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"LIBR_LOG_LEVEL"`
	LogFolder    string        `yaml:"log_folder" envconfig:"LIBR_LOG_FOLDER"`
	LogMaxSize   int           `yaml:"log_max_size" envconfig:"LIBR_LOG_MAX_SIZE"` // in megabytes
	Storage      string        `yaml:"storage" envconfig:"LIBR_STORAGE"`
	Redis        RedisConfig   `yaml:"redis"`
	BoltDB       BoltDBConfig  `yaml:"boltdb"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LIBR_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"LIBR_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LIBR_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LIBR_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LIBR_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LIBR_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LIBR_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"LIBR_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"LIBR_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LIBR_REDIS_DATABASE_INDEX"`
	ListKey       string        `yaml:"list_key" envconfig:"LIBR_REDIS_LIST_KEY"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LIBR_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LIBR_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LIBR_BOLTDB_BUCKET_NAME"`
}

// DefaultConfig provides the settings used when no configuration
// source is available: an in-memory library with logs on console.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   zapcore.InfoLevel,
		LogMaxSize: 10,
		Storage:    MemoryStorage,
		Redis: RedisConfig{
			Host:        "localhost",
			Port:        "6379",
			DialTimeout: 5 * time.Second,
			PoolSize:    2,
			ListKey:     DefaultBooksListKey,
		},
		BoltDB: BoltDBConfig{
			FilePath:   "./library.db",
			Timeout:    5 * time.Second,
			BucketName: "books",
		},
	}
}

// LoadConfigFile decodes the yaml configuration file on top of the given config.
func LoadConfigFile(configFile string, config *Config) error {
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()
	return yaml.NewDecoder(file).Decode(config)
}

// LoadConfigEnvs reads the environments variables into the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig configures build tags values to be used if provided
// and checks that the selected storage backend is usable.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if config.LogMaxSize <= 0 {
		return errors.New("make sure to set a positive log max size in configuration file")
	}

	switch config.Storage {
	case MemoryStorage:
	case BoltStorage:
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
		}
	case RedisStorage:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, config.Storage)
	}

	return nil
}

// LoadConfigs loads in order the configs from the defaults, the yaml file,
// the env file and the environment then builds the App configuration data.
// Missing files are skipped.
func LoadConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	config := DefaultConfig()

	err := LoadConfigFile(configFile, config)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to load configurations from file: %w", err)
	}

	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %w", err)
	}

	err = LoadConfigEnvs(ConfigPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %w", err)
	}
	return config, nil
}

// LoadAndInitConfigs builds the App configuration from the predefined sources.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	return LoadConfigs(ConfigFile, ConfigEnv, gitCommit, gitTag, buildTime)
}
