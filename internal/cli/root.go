package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/servio/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the top-level "servio" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "servio",
		Short:         "Draft, validate and submit marketplace gigs and proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := config.Initialize(v, cmd, app.cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			level, _ := config.ParseLevel(cfg.LogLevel)
			logger := newLogger(cmd.ErrOrStderr(), level)
			slog.SetDefault(logger)
			app.setup(cfg, cmd.OutOrStdout(), logger)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}

	root.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default .servio.yaml in . or ~/.servio)")
	addConfigFlags(root)

	root.AddCommand(
		newGigCmd(app),
		newProposalCmd(app),
		newSandboxCmd(app),
	)
	return root
}

func addConfigFlags(root *cobra.Command) {
	d := config.Default()
	f := root.PersistentFlags()
	f.String(config.KeyBaseURL, d.BaseURL, "marketplace base URL")
	f.String(config.KeyCSRFToken, d.CSRFToken, "CSRF token sent with every submit")
	f.String(config.KeyDBPath, d.DBPath, "path of the local draft database")
	f.String(config.KeyLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	f.Bool(config.KeyLogCalls, d.LogCalls, "log every backend call")
	f.Duration(config.KeyRedirectDelay, d.RedirectDelay, "pause before following a redirect")
	f.String(config.KeyMinRoleBudget, d.MinRoleBudget.String(), "minimum budget of a role")
	f.Int(config.KeyMinDescriptionWords, d.MinDescriptionWords, "minimum words in a gig description")
	f.Int(config.KeyMaxDescriptionChars, d.MaxDescriptionChars, "maximum length of a gig description")
	f.String(config.KeyDescriptionLimitUnit, string(d.DescriptionLimitUnit), "unit of the description limit (chars or words)")
	f.Duration(config.KeyReferenceTTL, d.ReferenceTTL, "how long reference data is cached")
	f.Duration(config.KeyDialTimeout, d.DialTimeout, "backend dial timeout")
}

// newLogger writes tinted records to w. Colour is only used on a terminal.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
