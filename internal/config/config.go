package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AuthScheme selects how the API key is presented to Xano.
type AuthScheme string

const (
	// AuthBearer sends "Authorization: Bearer <key>" plus an X-Workspace header (metadata API).
	AuthBearer AuthScheme = "bearer"
	// AuthAPIKey sends "X-Api-Key: <key>" with no workspace header (legacy API).
	AuthAPIKey AuthScheme = "api-key"
)

// Viper keys. Each maps to XANO_<KEY> in the environment.
const (
	KeyAPIKey     = "api_key"
	KeyWorkspace  = "workspace"
	KeyAPIBase    = "api_base"
	KeyAuthScheme = "auth_scheme"
	KeyTimeout    = "timeout"
	KeyHTTPAddr   = "mcp_http_addr"
	KeyLogFile    = "log_file"
	KeyLogLevel   = "log_level"
)

// ErrMissingConfig is returned when a required credential is absent.
var ErrMissingConfig = errors.New("missing required configuration")

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	APIKey     string
	Workspace  int
	BaseURL    string
	AuthScheme AuthScheme
	Timeout    time.Duration
	HTTPAddr   string
	LogFile    string
	LogLevel   string
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored; variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// NewViper returns a viper instance reading XANO_* variables with defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("XANO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAuthScheme, string(AuthBearer))
	v.SetDefault(KeyTimeout, "30s")
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// BindFlags wires command line flags onto viper keys; a flag that was set beats the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyAPIKey:     "api-key",
		KeyWorkspace:  "workspace",
		KeyAPIBase:    "api-base",
		KeyAuthScheme: "auth-scheme",
		KeyTimeout:    "timeout",
		KeyHTTPAddr:   "http",
		KeyLogFile:    "log-file",
		KeyLogLevel:   "log-level",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load validates and returns the configuration. Every missing credential is named in the error.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIKey:   strings.TrimSpace(v.GetString(KeyAPIKey)),
		BaseURL:  strings.TrimSuffix(strings.TrimSpace(v.GetString(KeyAPIBase)), "/"),
		HTTPAddr: strings.TrimSpace(v.GetString(KeyHTTPAddr)),
		LogFile:  strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel: strings.TrimSpace(v.GetString(KeyLogLevel)),
	}
	workspace := strings.TrimSpace(v.GetString(KeyWorkspace))

	var missing []string
	if cfg.APIKey == "" {
		missing = append(missing, "XANO_API_KEY")
	}
	if workspace == "" {
		missing = append(missing, "XANO_WORKSPACE")
	}
	if cfg.BaseURL == "" {
		missing = append(missing, "XANO_API_BASE")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	ws, err := strconv.Atoi(workspace)
	if err != nil || ws <= 0 {
		return Config{}, fmt.Errorf("XANO_WORKSPACE must be a positive integer, got %q", workspace)
	}
	cfg.Workspace = ws

	scheme := AuthScheme(strings.ToLower(strings.TrimSpace(v.GetString(KeyAuthScheme))))
	switch scheme {
	case "":
		scheme = AuthBearer
	case AuthBearer, AuthAPIKey:
	default:
		return Config{}, fmt.Errorf("XANO_AUTH_SCHEME must be %q or %q, got %q", AuthBearer, AuthAPIKey, scheme)
	}
	cfg.AuthScheme = scheme

	timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString(KeyTimeout)))
	if err != nil || timeout < 0 {
		return Config{}, fmt.Errorf("XANO_TIMEOUT must be a non-negative duration, got %q", v.GetString(KeyTimeout))
	}
	cfg.Timeout = timeout

	return cfg, nil
}
