package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config exposes application settings loaded from config.yaml with environment
// overrides (MEETPUP_ prefix, dots replaced by underscores).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Logger LoggerConfig
	PG     PGConfig
	Redis  RedisConfig
	JWT    JWTConfig
	S3     S3Config
	SMTP   SMTPConfig
	v      *viper.Viper
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("MEETPUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{v: v}
	cfg.App = AppConfig{v}
	cfg.HTTP = HTTPConfig{v}
	cfg.Logger = LoggerConfig{v}
	cfg.PG = PGConfig{v}
	cfg.Redis = RedisConfig{v}
	cfg.JWT = JWTConfig{v}
	cfg.S3 = S3Config{v}
	cfg.SMTP = SMTPConfig{v}

	if cfg.JWT.Secret() == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.cookie_name", "token")
	v.SetDefault("logger.debug", false)
	v.SetDefault("logger.log_to_file", false)
	v.SetDefault("logger.logs_dir", "logs")
	v.SetDefault("pg.host", "localhost")
	v.SetDefault("pg.port", 5432)
	v.SetDefault("pg.user", "postgres")
	v.SetDefault("pg.password", "postgres")
	v.SetDefault("pg.name", "meetpup")
	v.SetDefault("pg.ssl_mode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("jwt.ttl", 7*24*time.Hour)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
}

type AppConfig struct{ v *viper.Viper }

func (c AppConfig) Env() string { return c.v.GetString("app.env") }

type HTTPConfig struct{ v *viper.Viper }

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.v.GetString("http.host"), c.v.GetInt("http.port"))
}
func (c HTTPConfig) CookieName() string { return c.v.GetString("http.cookie_name") }
func (c HTTPConfig) CookieSecure() bool { return c.v.GetBool("http.cookie_secure") }

type LoggerConfig struct{ v *viper.Viper }

func (c LoggerConfig) Debug() bool     { return c.v.GetBool("logger.debug") }
func (c LoggerConfig) LogToFile() bool { return c.v.GetBool("logger.log_to_file") }
func (c LoggerConfig) LogsDir() string { return c.v.GetString("logger.logs_dir") }

type PGConfig struct{ v *viper.Viper }

func (c PGConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.v.GetString("pg.host"),
		c.v.GetInt("pg.port"),
		c.v.GetString("pg.user"),
		c.v.GetString("pg.password"),
		c.v.GetString("pg.name"),
		c.v.GetString("pg.ssl_mode"),
	)
}

type RedisConfig struct{ v *viper.Viper }

func (c RedisConfig) Host() string     { return c.v.GetString("redis.host") }
func (c RedisConfig) Port() int        { return c.v.GetInt("redis.port") }
func (c RedisConfig) Password() string { return c.v.GetString("redis.password") }

type JWTConfig struct{ v *viper.Viper }

func (c JWTConfig) Secret() string     { return c.v.GetString("jwt.secret") }
func (c JWTConfig) TTL() time.Duration { return c.v.GetDuration("jwt.ttl") }

type S3Config struct{ v *viper.Viper }

func (c S3Config) Region() string    { return c.v.GetString("s3.region") }
func (c S3Config) Bucket() string    { return c.v.GetString("s3.bucket") }
func (c S3Config) PublicURL() string { return c.v.GetString("s3.public_url") }

type SMTPConfig struct{ v *viper.Viper }

func (c SMTPConfig) Enabled() bool    { return c.v.GetBool("smtp.enabled") }
func (c SMTPConfig) Host() string     { return c.v.GetString("smtp.host") }
func (c SMTPConfig) Port() int        { return c.v.GetInt("smtp.port") }
func (c SMTPConfig) Login() string    { return c.v.GetString("smtp.login") }
func (c SMTPConfig) Password() string { return c.v.GetString("smtp.password") }
func (c SMTPConfig) From() string     { return c.v.GetString("smtp.from") }
