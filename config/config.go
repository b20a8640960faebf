package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	BasePath string `mapstructure:"base_path"`
}

// DatabaseConfig 数据库配置
// Driver 为 sqlite 时只使用 Path，为 mysql 时使用 Host/Port/Username 等连接参数
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	Path           string `mapstructure:"path"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	Charset        string `mapstructure:"charset"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	LogLevel       string `mapstructure:"log_level"`
	SeedCategories bool   `mapstructure:"seed_categories"`
}

// APIConfig 接口行为配置
type APIConfig struct {
	DefaultLimit int    `mapstructure:"default_limit"`
	MaxLimit     int    `mapstructure:"max_limit"`
	DefaultColor string `mapstructure:"default_color"`
}

// RateLimitConfig 按 IP 限流配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// GlobalConfig 最近一次加载的配置，仅供 SafeErrorMessage 判断运行模式
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	logrus.Debug("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configPath, err)
		}
		logrus.WithField("file", configPath).Info("已合并外部配置文件")
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/expensetracker")
		externalViper.AddConfigPath("$HOME/.expensetracker")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.WithError(err).Warn("合并外部配置失败")
			} else {
				logrus.WithField("file", externalViper.ConfigFileUsed()).Info("已合并外部配置文件")
			}
		}
	}

	// 3. 支持环境变量覆盖，如 EXPENSE_DATABASE_DRIVER=mysql
	v.SetEnvPrefix("EXPENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// normalize 补齐缺省值并校验取值范围
func (c *Config) normalize() error {
	if c.Server.Port != "" && !strings.Contains(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		c.Server.BasePath = "/" + c.Server.BasePath
	}
	c.Server.BasePath = strings.TrimSuffix(c.Server.BasePath, "/")

	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}

	if c.API.DefaultLimit <= 0 {
		c.API.DefaultLimit = 50
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		c.API.MaxLimit = c.API.DefaultLimit
	}
	if c.API.DefaultColor == "" {
		c.API.DefaultColor = "#3498db"
	}

	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 120
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	return nil
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	fields := logrus.Fields{
		"port":      cfg.Server.Port,
		"mode":      cfg.Server.Mode,
		"base_path": cfg.Server.BasePath,
		"driver":    cfg.Database.Driver,
	}
	if cfg.Database.Driver == "mysql" {
		fields["database"] = fmt.Sprintf("%s@%s:%s/%s",
			cfg.Database.Username,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName)
	} else {
		fields["database"] = cfg.Database.Path
	}
	fields["rate_limit"] = cfg.RateLimit.Enabled
	logrus.WithFields(fields).Info("当前配置")
}
