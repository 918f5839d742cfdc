package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Printer  PrinterConfig  `mapstructure:"printer"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LoggerConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres, mysql or sqlite
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	Path            string `mapstructure:"path"` // sqlite file
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  int    `mapstructure:"connect_timeout"`
	Migrate         bool   `mapstructure:"migrate"`
}

type HTTPConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type PrinterConfig struct {
	Backend    string  `mapstructure:"backend"` // lp or spool
	Name       string  `mapstructure:"name"`    // empty means the system default printer
	SpoolDir   string  `mapstructure:"spool_dir"`
	LeftMargin float64 `mapstructure:"left_margin"`
	TopMargin  float64 `mapstructure:"top_margin"`
	LineHeight float64 `mapstructure:"line_height"`
	FontSize   float64 `mapstructure:"font_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.disable_caller", false)
	v.SetDefault("logger.disable_stacktrace", true)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "billing")
	v.SetDefault("database.password", "billing")
	v.SetDefault("database.name", "billing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "billing.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.connect_timeout", 5)
	v.SetDefault("database.migrate", true)

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("printer.backend", "lp")
	v.SetDefault("printer.name", "")
	v.SetDefault("printer.spool_dir", "spool")
	v.SetDefault("printer.left_margin", 36)
	v.SetDefault("printer.top_margin", 36)
	v.SetDefault("printer.line_height", 14)
	v.SetDefault("printer.font_size", 10)
}

// Load reads defaults, then the optional config file at path, then the
// environment. DATABASE_HOST overrides database.host and so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.HTTP.AllowedOrigins = splitList(cfg.HTTP.AllowedOrigins)

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// splitList accepts both a yaml list and one comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
