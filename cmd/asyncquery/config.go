package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/queryadapter"
)

const ErrInvalidConfig errorkit.Error = "invalid configuration"

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	Query QueryConfig `yaml:"query"`
}

type StoreConfig struct {
	// Driver is either bolt or badger.
	Driver string `yaml:"driver" validate:"required,oneof=bolt badger"`
	// Path of the database. Badger runs in memory when it is empty.
	Path string `yaml:"path" validate:"required_if=Driver bolt"`
	// Bucket names the bolt bucket, or the badger key prefix.
	Bucket string `yaml:"bucket" validate:"required"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type QueryConfig struct {
	Policy      string `yaml:"policy"`
	Concurrency int    `yaml:"concurrency" validate:"gte=0,lte=256"`
}

var validate = validator.New()

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{Bucket: "records"},
		Log:   LogConfig{Level: string(logging.LevelInfo)},
		Query: QueryConfig{Policy: queryadapter.DisallowAll.String(), Concurrency: 1},
	}
}

// LoadConfig reads the YAML configuration at path.
// Missing settings keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, ErrInvalidConfig.Wrap(err)
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, ErrInvalidConfig.Wrap(err)
	}
	if _, err := queryadapter.ParsePolicy(c.Query.Policy); err != nil {
		return Config{}, ErrInvalidConfig.Wrap(err)
	}
	return c, nil
}

func (c Config) Policy() queryadapter.Policy {
	p, _ := queryadapter.ParsePolicy(c.Query.Policy)
	return p
}

func (c Config) LogLevel() logging.Level {
	l, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return l
}
