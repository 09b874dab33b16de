package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "MCQ_APP"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Generator GeneratorConfig `mapstructure:"generator"`
	PDF       PDFConfig       `mapstructure:"pdf"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port                   string `mapstructure:"port"`
	Mode                   string `mapstructure:"mode"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type GeneratorConfig struct {
	DefaultNumQuestions int    `mapstructure:"default_num_questions"`
	Placeholder         string `mapstructure:"placeholder"`
	Blank               string `mapstructure:"blank"`
	Seed                uint64 `mapstructure:"seed"`
}

type PDFConfig struct {
	Title    string  `mapstructure:"title"`
	FontSize float64 `mapstructure:"font_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("generator.default_num_questions", 5)
	v.SetDefault("generator.placeholder", "[Distractor]")
	v.SetDefault("generator.blank", "_____________")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("pdf.title", "MCQ Questions")
	v.SetDefault("pdf.font_size", 12)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// New returns a viper instance with defaults, env binding and the config
// search path in place. configFile overrides the search path when set.
func New(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if any) into v and decodes the result. found
// reports whether a config file was read.
func Load(v *viper.Viper) (cfg *Config, found bool, err error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, false, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		found = true
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, found, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, found, err
	}
	return cfg, found, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port 不能为空")
	}
	if c.Generator.DefaultNumQuestions < 0 {
		return fmt.Errorf("generator.default_num_questions 不能为负数: %d", c.Generator.DefaultNumQuestions)
	}
	if c.Generator.Blank == "" {
		return errors.New("generator.blank 不能为空")
	}
	if c.PDF.FontSize <= 0 {
		return fmt.Errorf("pdf.font_size 必须为正数: %v", c.PDF.FontSize)
	}
	return nil
}

// AllowAllOrigins reports whether the CORS list is empty or contains "*".
func (c CORSConfig) AllowAllOrigins() bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
