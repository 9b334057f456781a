// Package config loads the service configuration from the process
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the cronograma
// service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	FeriadosAnos int
	LogLevel     string
}

// Load parses configuration values from the current process environment.
//
// Optional fields get sensible defaults; invalid values are reported with
// localized error messages naming the offending variables.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:cronograma.db",
		FeriadosAnos: 5,
		LogLevel:     "info",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CRONOGRAMA_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "CRONOGRAMA_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CRONOGRAMA_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if anosValue := strings.TrimSpace(os.Getenv("CRONOGRAMA_FERIADOS_ANOS")); anosValue != "" {
		anos, err := strconv.Atoi(anosValue)
		if err != nil || anos <= 0 || anos > 50 {
			invalid = append(invalid, "CRONOGRAMA_FERIADOS_ANOS")
		} else {
			cfg.FeriadosAnos = anos
		}
	}

	if level := strings.TrimSpace(os.Getenv("CRONOGRAMA_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "CRONOGRAMA_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente com valores inválidos: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
