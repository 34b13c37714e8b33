// Package config layers servio settings from defaults, an optional
// .servio.yaml, SERVIO_* environment variables (a .env file is honoured) and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "SERVIO"
	defaultFileName = ".servio"
)

// Keys double as flag names and config file keys.
const (
	KeyBaseURL              = "base-url"
	KeyCSRFToken            = "csrf-token"
	KeyDBPath               = "db"
	KeyLogLevel             = "log-level"
	KeyLogCalls             = "log-calls"
	KeyRedirectDelay        = "redirect-delay"
	KeyMinRoleBudget        = "min-role-budget"
	KeyMinDescriptionWords  = "min-description-words"
	KeyMaxDescriptionChars  = "max-description-chars"
	KeyDescriptionLimitUnit = "description-limit-unit"
	KeyReferenceTTL         = "reference-ttl"
	KeyDialTimeout          = "dial-timeout"
)

var (
	ErrInvalidBudget    = errors.New("invalid minimum role budget")
	ErrInvalidUnit      = errors.New("description limit unit must be chars or words")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrNonPositiveLimit = errors.New("limits must be positive")
)

type Config struct {
	BaseURL              string
	CSRFToken            string
	DBPath               string
	LogLevel             string
	LogCalls             bool
	RedirectDelay        time.Duration
	MinRoleBudget        decimal.Decimal
	MinDescriptionWords  int
	MaxDescriptionChars  int
	DescriptionLimitUnit domain.LimitUnit
	ReferenceTTL         time.Duration
	DialTimeout          time.Duration
}

func Default() Config {
	tc := transport.DefaultConfig()
	vo := validation.DefaultOptions()
	return Config{
		BaseURL:              tc.BaseURL,
		DBPath:               DefaultDBPath(),
		LogLevel:             "info",
		RedirectDelay:        2 * time.Second,
		MinRoleBudget:        vo.MinRoleBudget,
		MinDescriptionWords:  vo.MinDescriptionWords,
		MaxDescriptionChars:  vo.DescriptionLimit.Max,
		DescriptionLimitUnit: vo.DescriptionLimit.Unit,
		ReferenceTTL:         10 * time.Minute,
		DialTimeout:          tc.DialTimeout,
	}
}

// DefaultDBPath is ~/.servio/servio.db, or servio.db in the working directory
// when there is no home directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "servio.db"
	}
	return filepath.Join(home, defaultFileName, "servio.db")
}

// SetDefaults registers Default() on v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyCSRFToken, d.CSRFToken)
	v.SetDefault(KeyDBPath, d.DBPath)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogCalls, d.LogCalls)
	v.SetDefault(KeyRedirectDelay, d.RedirectDelay)
	v.SetDefault(KeyMinRoleBudget, d.MinRoleBudget.String())
	v.SetDefault(KeyMinDescriptionWords, d.MinDescriptionWords)
	v.SetDefault(KeyMaxDescriptionChars, d.MaxDescriptionChars)
	v.SetDefault(KeyDescriptionLimitUnit, string(d.DescriptionLimitUnit))
	v.SetDefault(KeyReferenceTTL, d.ReferenceTTL)
	v.SetDefault(KeyDialTimeout, d.DialTimeout)
}

// Load reads the resolved settings out of v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	budget, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(v.GetString(KeyMinRoleBudget)), "$"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidBudget, err)
	}
	unit := domain.LimitUnit(strings.ToLower(v.GetString(KeyDescriptionLimitUnit)))
	if unit != domain.LimitChars && unit != domain.LimitWords {
		return Config{}, fmt.Errorf("%w: got %q", ErrInvalidUnit, unit)
	}

	cfg := Config{
		BaseURL:              v.GetString(KeyBaseURL),
		CSRFToken:            v.GetString(KeyCSRFToken),
		DBPath:               v.GetString(KeyDBPath),
		LogLevel:             v.GetString(KeyLogLevel),
		LogCalls:             v.GetBool(KeyLogCalls),
		RedirectDelay:        v.GetDuration(KeyRedirectDelay),
		MinRoleBudget:        budget,
		MinDescriptionWords:  v.GetInt(KeyMinDescriptionWords),
		MaxDescriptionChars:  v.GetInt(KeyMaxDescriptionChars),
		DescriptionLimitUnit: unit,
		ReferenceTTL:         v.GetDuration(KeyReferenceTTL),
		DialTimeout:          v.GetDuration(KeyDialTimeout),
	}
	if cfg.MinDescriptionWords <= 0 || cfg.MaxDescriptionChars <= 0 || !cfg.MinRoleBudget.IsPositive() {
		return Config{}, ErrNonPositiveLimit
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Initialize wires v to the config file, the environment and the flags of
// cmd. cfgFile overrides the search for .servio.yaml.
func Initialize(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	if err := LoadDotEnv(".env"); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(defaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, defaultFileName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	BindFlags(v, cmd)
	return nil
}

// BindFlags binds every flag of cmd to v. Flags the user did not set take
// the value v already resolved from file or environment.
func BindFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "flag", f.Name, "err", err)
		}
	})
}

// LoadDotEnv loads path into the process environment. A missing file is fine.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return lvl, nil
}

func (c Config) Transport() transport.Config {
	return transport.Config{
		BaseURL:     c.BaseURL,
		CSRFToken:   c.CSRFToken,
		DialTimeout: c.DialTimeout,
		LogCalls:    c.LogCalls,
	}
}

// Validation returns the rule options. Now is left zero so each validation
// run reads the clock.
func (c Config) Validation() validation.Options {
	return validation.Options{
		MinRoleBudget:       c.MinRoleBudget,
		MinDescriptionWords: c.MinDescriptionWords,
		DescriptionLimit:    c.DescriptionLimit(),
		MinRoleWords:        c.MinDescriptionWords,
	}
}

func (c Config) DescriptionLimit() domain.TextLimit {
	return domain.TextLimit{Max: c.MaxDescriptionChars, Unit: c.DescriptionLimitUnit}
}
