package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	DB     DatabaseConfig `mapstructure:"db"`
	Redis  RedisConfig    `mapstructure:"redis"`
	Auth   AuthConfig     `mapstructure:"auth"`
	Log    LogConfig      `mapstructure:"log"`
	Report ReportConfig   `mapstructure:"report"`
	Stats  StatsConfig    `mapstructure:"stats"`
	Alert  AlertConfig    `mapstructure:"alert"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig 统计口径配置
// Timezone 决定"今天"的日期边界（历史版本混用 UTC 和固定 +8 偏移，统一由此配置约束）
type ReportConfig struct {
	Timezone   string `mapstructure:"timezone"`
	WindowDays int    `mapstructure:"window_days"`
}

// StatsConfig 出勤折算系数配置
// 半天与短假的折算系数可调，不在代码中散落魔法数字
type StatsConfig struct {
	HalfDayCredit    float64 `mapstructure:"half_day_credit"`
	ShortLeaveCredit float64 `mapstructure:"short_leave_credit"`
}

// AlertConfig 缺勤预警阈值配置
// 连续缺勤天数达到对应阈值时生成 low / medium / high 级别预警
type AlertConfig struct {
	ConsecutiveLow    int `mapstructure:"consecutive_low"`
	ConsecutiveMedium int `mapstructure:"consecutive_medium"`
	ConsecutiveHigh   int `mapstructure:"consecutive_high"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "teachtrack")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Shanghai")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("report.timezone", "Asia/Shanghai")
	v.SetDefault("report.window_days", 30)

	v.SetDefault("stats.half_day_credit", 0.5)
	v.SetDefault("stats.short_leave_credit", 0.75)

	v.SetDefault("alert.consecutive_low", 3)
	v.SetDefault("alert.consecutive_medium", 5)
	v.SetDefault("alert.consecutive_high", 7)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("ATTEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("配置校验失败: report.timezone 无效: %w", err)
	}
	if c.Stats.HalfDayCredit < 0 || c.Stats.HalfDayCredit > 1 {
		return fmt.Errorf("配置校验失败: stats.half_day_credit 必须在 0-1 之间")
	}
	if c.Stats.ShortLeaveCredit < 0 || c.Stats.ShortLeaveCredit > 1 {
		return fmt.Errorf("配置校验失败: stats.short_leave_credit 必须在 0-1 之间")
	}
	if c.Report.WindowDays <= 0 {
		return fmt.Errorf("配置校验失败: report.window_days 必须大于 0")
	}
	return nil
}
