package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/payload"
	"github.com/alexanderramin/servio/internal/sandbox"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newSandboxCmd(app *App) *cobra.Command {
	var addr string
	var seeds []string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local stand-in for the marketplace backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := seedStore(cmd, seeds)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := sandbox.NewRouter(store,
				sandbox.WithCSRFToken(app.cfg.CSRFToken),
				sandbox.WithLogger(app.logger),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Sandbox listening on %s\n", addr)
			return sandbox.Serve(ctx, addr, router, app.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8085", "listen address")
	cmd.Flags().StringArrayVar(&seeds, "seed", nil, "JSON gig draft to publish on start (repeatable)")
	return cmd
}

// seedStore publishes each seed gig, under its own slug when it has one.
func seedStore(cmd *cobra.Command, seeds []string) (*sandbox.Store, error) {
	store := sandbox.NewStore(sandbox.DefaultTaxonomy())
	for _, path := range seeds {
		g := domain.NewGigDraft()
		if err := readJSONFile(path, g); err != nil {
			return nil, err
		}
		seeded := store.SeedAs(g.Slug, domain.GigStatusPublished, payload.BuildGigPayload(g))
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s %s\n", formatter.Bold(seeded.Slug), formatter.Dim(path))
	}
	return store, nil
}
