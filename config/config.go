package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Required environment variables. Their names predate this code base and are
// bound verbatim, without the WEBSITE_ prefix used for everything else.
const (
	EnvDBUser     = "website_mysql_username"
	EnvDBPassword = "website_mysql_password"
	EnvPort       = "website_port"
)

const envPrefix = "WEBSITE"

type Config struct {
	App struct {
		Name         string   `mapstructure:"name"`
		Port         string   `mapstructure:"port"`
		Mode         string   `mapstructure:"mode"`
		TemplateDir  string   `mapstructure:"template_dir"`
		ArticleDir   string   `mapstructure:"article_dir"`
		StaticDir    string   `mapstructure:"static_dir"`
		AllowOrigins []string `mapstructure:"allow_origins"`
		SSL          bool     `mapstructure:"ssl"`
	} `mapstructure:"app"`
	Database struct {
		Driver          string        `mapstructure:"driver"`
		Host            string        `mapstructure:"host"`
		Port            string        `mapstructure:"port"`
		User            string        `mapstructure:"user"`
		Password        string        `mapstructure:"password"`
		Name            string        `mapstructure:"name"`
		Sslmode         string        `mapstructure:"sslmode"`
		Timezone        string        `mapstructure:"timezone"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
		AutoMigrate     bool          `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Addr is the listen address handed to http.Server.
func (c *Config) Addr() string {
	return ":" + c.App.Port
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "website")
	v.SetDefault("app.port", "")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.template_dir", "templates")
	v.SetDefault("app.article_dir", "articles")
	v.SetDefault("app.static_dir", "static")
	v.SetDefault("app.allow_origins", []string{})
	v.SetDefault("app.ssl", false)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "website")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load builds the configuration from defaults, an optional config/config.yaml,
// an optional .env file and the process environment, in increasing order of
// precedence. It does not touch the database.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	required := map[string]string{
		"database.user":     EnvDBUser,
		"database.password": EnvDBPassword,
		"app.port":          EnvPort,
	}
	for key, env := range required {
		if _, ok := os.LookupEnv(env); !ok {
			return nil, fmt.Errorf("required environment variable missing: %s", env)
		}
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", EnvPort, c.App.Port)
	}
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// InitConfig loads the configuration and opens the shared database handle and
// the optional Redis client. Any failure is fatal.
func InitConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg

	initLogger()
	initDB()
	initRedis()
}
