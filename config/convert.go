package config

import (
	"time"

	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
)

// ZapLoggerConfig switches to console output at debug level in
// development, whatever the logger group says.
func (c *Config) ZapLoggerConfig() *logger.ZapLoggerConfig {
	lc := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          c.Logger.Encoding,
		Level:             c.Logger.Level,
		DisableCaller:     c.Logger.DisableCaller,
		DisableStacktrace: c.Logger.DisableStacktrace,
	}
	if c.IsDevelopment() {
		lc.IsDevelopment = true
		lc.Encoding = "console"
		lc.Level = "debug"
	}
	return lc
}

func (c *Config) StoreConfig() *database.Config {
	d := c.Database
	return &database.Config{
		Driver:          d.Driver,
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		DBName:          d.Name,
		SSLMode:         d.SSLMode,
		Path:            d.Path,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: time.Duration(d.ConnMaxLifetime) * time.Second,
		ConnectTimeout:  time.Duration(d.ConnectTimeout) * time.Second,
	}
}

func (c *Config) PrinterConfig() printer.Config {
	p := c.Printer
	return printer.Config{
		Backend:  p.Backend,
		Name:     p.Name,
		SpoolDir: p.SpoolDir,
		Layout: printer.Layout{
			LeftMargin: p.LeftMargin,
			Top:        p.TopMargin,
			LineHeight: p.LineHeight,
			FontSize:   p.FontSize,
		},
	}
}
