// Package config 加载stackd的配置, 优先级: 命令行参数 > 环境变量 > 配置文件 > 默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "STACKD"
	configName = "stackd"
)

type Config struct {
	Addr  string `mapstructure:"addr"`
	Log   Log    `mapstructure:"log"`
	Stack Stack  `mapstructure:"stack"`
}

type Log struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Filename string `mapstructure:"filename"`
	Caller   bool   `mapstructure:"caller"`
}

type Stack struct {
	DefaultCapacity int `mapstructure:"default-capacity"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.filename", "")
	v.SetDefault("log.caller", false)
	v.SetDefault("stack.default-capacity", 1)
}

// BindFlags 注册命令行参数, 参数名与配置键一致
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to the config file (env "+EnvPrefix+"_CONFIG)")
	fs.String("addr", ":8000", "HTTP listen address")
	fs.String("log.level", "info", "Log level (debug, info, warn, error)")
	fs.String("log.encoding", "json", "Log encoding (json, console)")
	fs.String("log.filename", "", "Also write logs to this file, rotated")
	fs.Bool("log.caller", false, "Record caller in log entries")
	fs.Int("stack.default-capacity", 1, "Capacity of stacks created without an explicit capacity")
}

// Load 读取配置, fs为nil时只使用环境变量和配置文件
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	explicit := v.GetString("config")
	configureConfigFile(v, explicit)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || explicit != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Stack.DefaultCapacity < 0 {
		return fmt.Errorf("stack.default-capacity must not be negative, got %d", c.Stack.DefaultCapacity)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log.encoding %q (expected json or console)", c.Log.Encoding)
	}

	return nil
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+configName))
	}
}
