// Package config provides configuration management for AgriAssist
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/chunkers"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/embedders"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/llm"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/vecstore"
)

// RetrievalConfig tunes the answer pipeline
type RetrievalConfig struct {
	// TopK is the number of chunks handed to the LLM
	TopK int `yaml:"top_k" json:"top_k" validate:"gt=0"`
	// CandidateLimit is the raw candidate count pulled from the store
	CandidateLimit int `yaml:"candidate_limit" json:"candidate_limit" validate:"gt=0"`
	// MinScore drops weak matches before ranking
	MinScore float32 `yaml:"min_score" json:"min_score" validate:"gte=0,lte=1"`
	// OwnerBoost multiplies scores of the asking farmer's own entries
	OwnerBoost float32 `yaml:"owner_boost" json:"owner_boost" validate:"gte=1"`
}

// NewRetrievalConfig returns retrieval defaults
func NewRetrievalConfig() *RetrievalConfig {
	return &RetrievalConfig{
		TopK:           4,
		CandidateLimit: 10,
		MinScore:       0.3,
		OwnerBoost:     1.15,
	}
}

// SchedulerConfig configures the background job runner
type SchedulerConfig struct {
	Backend       types.BackendType `yaml:"backend" json:"backend" validate:"required,oneof=local nats"`
	NATSUrl       string            `yaml:"nats_url,omitempty" json:"nats_url,omitempty"`
	QueueSize     int               `yaml:"queue_size,omitempty" json:"queue_size,omitempty"`
	RetryAttempts int               `yaml:"retry_attempts,omitempty" json:"retry_attempts,omitempty"`
	RetryDelay    time.Duration     `yaml:"retry_delay,omitempty" json:"retry_delay,omitempty"`
}

// NewSchedulerConfig returns scheduler defaults
func NewSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Backend:       types.BackendLocal,
		QueueSize:     64,
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
	}
}

// PersonalizeConfig locates per-farmer profile and insight files
type PersonalizeConfig struct {
	DataDir string `yaml:"data_dir" json:"data_dir" validate:"required"`
}

// NewPersonalizeConfig returns personalization defaults
func NewPersonalizeConfig() *PersonalizeConfig {
	return &PersonalizeConfig{
		DataDir: "data/farmers",
	}
}

// FarmersConfig configures the farmer registry database
type FarmersConfig struct {
	DBPath string `yaml:"db_path" json:"db_path" validate:"required"`
}

// NewFarmersConfig returns registry defaults
func NewFarmersConfig() *FarmersConfig {
	return &FarmersConfig{
		DBPath: "data/farmers.db",
	}
}

// AppConfig is the root AgriAssist configuration
type AppConfig struct {
	LogLevel    string                    `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Embedder    *embedders.EmbedderConfig `yaml:"embedder" json:"embedder" validate:"required"`
	Store       *vecstore.StoreConfig     `yaml:"store" json:"store" validate:"required"`
	Chunker     *chunkers.ChunkerConfig   `yaml:"chunker" json:"chunker" validate:"required"`
	ChatModel   *llm.LLMConfig            `yaml:"chat_model" json:"chat_model" validate:"required"`
	Retrieval   *RetrievalConfig          `yaml:"retrieval" json:"retrieval" validate:"required"`
	Scheduler   *SchedulerConfig          `yaml:"scheduler" json:"scheduler" validate:"required"`
	Personalize *PersonalizeConfig        `yaml:"personalize" json:"personalize" validate:"required"`
	Farmers     *FarmersConfig            `yaml:"farmers" json:"farmers" validate:"required"`

	mu        sync.RWMutex
	validator *validator.Validate
}

// NewAppConfig returns a configuration populated with defaults
func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    "info",
		Embedder:    embedders.DefaultEmbedderConfig(),
		Store:       vecstore.DefaultStoreConfig(),
		Chunker:     chunkers.DefaultChunkerConfig(),
		ChatModel:   llm.DefaultLLMConfig(),
		Retrieval:   NewRetrievalConfig(),
		Scheduler:   NewSchedulerConfig(),
		Personalize: NewPersonalizeConfig(),
		Farmers:     NewFarmersConfig(),
		validator:   validator.New(),
	}
}

// Validate validates the configuration tree
func (c *AppConfig) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.validator == nil {
		c.validator = validator.New()
	}
	if err := c.validator.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.Embedder.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Chunker.Validate(); err != nil {
		return err
	}
	if err := c.ChatModel.Validate(); err != nil {
		return err
	}
	return nil
}

// FromYAMLFile loads configuration from a YAML file, overlaying defaults
func (c *AppConfig) FromYAMLFile(path string) error {
	return c.fromFile(path, "yaml")
}

// FromJSONFile loads configuration from a JSON file, overlaying defaults
func (c *AppConfig) FromJSONFile(path string) error {
	return c.fromFile(path, "json")
}

func (c *AppConfig) fromFile(path, format string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(format)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return v.Unmarshal(c)
}

// ToYAMLFile saves configuration to a YAML file
func (c *AppConfig) ToYAMLFile(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadFromEnv returns a viper bound to AGRIASSIST_* environment variables
func LoadFromEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("AGRIASSIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// ApplyEnvOverrides overlays well-known environment variables onto the config
func (c *AppConfig) ApplyEnvOverrides() {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := LoadFromEnv()
	if key := v.GetString("openai_api_key"); key != "" {
		c.ChatModel.APIKey = key
		c.Embedder.APIKey = key
	}
	if model := v.GetString("chat_model"); model != "" {
		c.ChatModel.Model = model
	}
	if level := v.GetString("log_level"); level != "" {
		c.LogLevel = level
	}
	if path := v.GetString("store_path"); path != "" {
		c.Store.Path = path
	}
}

// Watch reloads the configuration file on change and invokes callback with
// the freshly loaded config. Invalid edits are reported and skipped.
func (c *AppConfig) Watch(path string, callback func(*AppConfig, error)) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next := NewAppConfig()
		if err := next.fromFile(path, strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
			callback(nil, err)
			return
		}
		if err := next.Validate(); err != nil {
			callback(nil, err)
			return
		}
		callback(next, nil)
	})
	v.WatchConfig()

	return nil
}
