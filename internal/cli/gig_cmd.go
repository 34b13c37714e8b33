package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/gig"
	"github.com/alexanderramin/servio/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newGigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gig",
		Short: "Create, edit and submit gig drafts",
	}
	cmd.AddCommand(
		newGigNewCmd(app),
		newGigListCmd(app),
		newGigShowCmd(app),
		newGigRmCmd(app),
		newGigRoleCmd(app),
		newGigBudgetCmd(app),
		newGigSubmitCmd(app),
	)
	return cmd
}

func newGigNewCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a gig draft with a wizard or from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := domain.NewGigDraft()
			switch {
			case file != "":
				if err := readJSONFile(file, g); err != nil {
					return err
				}
			case app.interactive():
				values := gigFormFrom(g)
				if err := gigForm(values, app.cfg.DescriptionLimit()).Run(); err != nil {
					return err
				}
				values.apply(g)
			default:
				return ErrNeedInput
			}

			// Imported roles go through the budget lock like typed ones.
			ctrl := app.gigController(g, gig.Config{})
			ctrl.SetDescription(g.Description)

			svc, err := app.drafts()
			if err != nil {
				return err
			}
			d, err := svc.SaveGig(cmd.Context(), "", ctrl.Draft())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved gig draft %s %s\n", formatter.TruncID(d.ID), formatter.Bold(d.Title))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON gig draft to import")
	return cmd
}

func newGigListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gig drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.drafts()
			if err != nil {
				return err
			}
			kind := domain.DraftGig
			if all {
				kind = ""
			}
			drafts, err := svc.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDraftList(drafts, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include proposal drafts")
	return cmd
}

func newGigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a gig draft and its submit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, g, err := app.loadGig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ctrl := app.gigController(g, gig.Config{})
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderBox(formatter.TruncID(d.ID), formatter.FormatGig(gigView(ctrl))))

			subs, err := app.Drafts.Submissions(cmd.Context(), d.ID)
			if err != nil {
				return err
			}
			if len(subs) > 0 {
				fmt.Fprintln(out, formatter.FormatSubmissions(subs, app.now()))
			}
			return nil
		},
	}
}

func newGigRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a gig draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.drafts()
			if err != nil {
				return err
			}
			d, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if d.Kind != domain.DraftGig {
				return fmt.Errorf("%w: %s is a %s draft", service.ErrKindMismatch, formatter.TruncID(d.ID), d.Kind)
			}
			if err := svc.Delete(cmd.Context(), d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted gig draft %s\n", formatter.TruncID(d.ID))
			return nil
		},
	}
}

func newGigRoleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Edit the roles of a gig draft",
	}
	cmd.AddCommand(newGigRoleAddCmd(app), newGigRoleRmCmd(app))
	return cmd
}

func newGigRoleAddCmd(app *App) *cobra.Command {
	var values roleFormValues
	var workload string
	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a role and re-run budget coordination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, g, err := app.loadGig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cat := app.catalog(cmd.Context())

			values.Workload = domain.Workload(workload)
			if !anyRoleFlag(cmd) {
				if !app.interactive() {
					return ErrNeedInput
				}
				if err := roleForm(&values, cat).Run(); err != nil {
					return err
				}
			}
			role, err := values.role(cat)
			if err != nil {
				return err
			}

			ctrl := app.gigController(g, gig.Config{})
			if err := ctrl.AddRole(role); err != nil {
				return err
			}
			return app.saveGig(cmd, d.ID, ctrl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&values.NicheID, "niche-id", "", "niche id of the role")
	f.StringVar(&values.ProfessionalID, "professional-id", "", "id of the professional")
	f.StringVar(&values.Professional, "professional", "", "name of the professional")
	f.StringVar(&values.Budget, "budget", "", "role budget")
	f.StringVar(&values.Description, "description", "", "role description")
	f.StringVar(&workload, "workload", string(domain.WorkloadFlexible), "workload (fixed_hours or flexible)")
	return cmd
}

var roleFlags = []string{"niche-id", "professional-id", "professional", "budget", "description"}

func anyRoleFlag(cmd *cobra.Command) bool {
	for _, name := range roleFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newGigRoleRmCmd(app *App) *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a role by its position and re-run budget coordination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, g, err := app.loadGig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if index < 1 || index > len(g.Roles) {
				return fmt.Errorf("role %d out of range (gig has %d)", index, len(g.Roles))
			}
			ctrl := app.gigController(g, gig.Config{})
			roles := append(append([]domain.RoleEntry(nil), g.Roles[:index-1]...), g.Roles[index:]...)
			if err := ctrl.SetRoles(roles); err != nil {
				return err
			}
			return app.saveGig(cmd, d.ID, ctrl)
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "1-based position of the role, as shown by gig show")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}

func newGigBudgetCmd(app *App) *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "budget ID",
		Short: "Edit the project budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, g, err := app.loadGig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ctrl := app.gigController(g, gig.Config{})

			if cmd.Flags().Changed("set") {
				if err := ctrl.SetProjectBudget(set); err != nil {
					return err
				}
				return app.saveGig(cmd, d.ID, ctrl)
			}
			if !app.interactive() {
				return ErrNeedInput
			}
			if g.Locked() {
				return gig.ErrDraftLocked
			}

			final, err := tea.NewProgram(newBudgetEditor(ctrl),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(*budgetEditor); !ok || !m.saved {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Budget unchanged."))
				return nil
			}
			return app.saveGig(cmd, d.ID, ctrl)
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "set the budget without the editor")
	return cmd
}

func newGigSubmitCmd(app *App) *cobra.Command {
	var action, endpoint string
	cmd := &cobra.Command{
		Use:   "submit ID",
		Short: "Validate a gig draft and send it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, g, err := app.loadGig(ctx, args[0])
			if err != nil {
				return err
			}

			opts := app.cfg.Validation()
			if cat := app.catalog(ctx); cat != nil {
				opts.Catalog = cat
			}
			ctrl := gig.NewController(g, app.gateway(), app.notifier, gig.Config{
				Endpoint:         endpoint,
				CSRFToken:        app.cfg.CSRFToken,
				RedirectDelay:    app.cfg.RedirectDelay,
				Redirector:       app.redirector(),
				DescriptionLimit: app.cfg.DescriptionLimit(),
				Validation:       opts,
				Now:              app.now,
			})

			stop := app.spin("Submitting gig…")
			out, submitErr := ctrl.Submit(ctx, action)
			stop()

			if errors.Is(submitErr, gig.ErrUnknownAction) {
				return submitErr
			}
			if err := app.record(ctx, d, action, out); err != nil {
				return err
			}
			if out != nil && len(out.Violations) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatViolations(out.Violations))
			}
			return submitErr
		},
	}
	cmd.Flags().StringVar(&action, "action", string(contract.ActionPublish), "publish or draft")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the create/modify endpoint")
	return cmd
}

// gigController builds a controller for local edits. It has no gateway.
func (a *App) gigController(g *domain.GigDraft, cfg gig.Config) *gig.Controller {
	if cfg.DescriptionLimit.Max == 0 {
		cfg.DescriptionLimit = a.cfg.DescriptionLimit()
	}
	return gig.NewController(g, nil, a.notifier, cfg)
}

func (a *App) loadGig(ctx context.Context, ref string) (*domain.Draft, *domain.GigDraft, error) {
	svc, err := a.drafts()
	if err != nil {
		return nil, nil, err
	}
	d, err := svc.Get(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	g, err := service.DecodeGig(d)
	if err != nil {
		return nil, nil, err
	}
	return d, g, nil
}

func (a *App) saveGig(cmd *cobra.Command, id string, ctrl *gig.Controller) error {
	if _, err := a.Drafts.SaveGig(cmd.Context(), id, ctrl.Draft()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGig(gigView(ctrl)))
	return nil
}

func gigView(ctrl *gig.Controller) formatter.GigView {
	g := ctrl.Draft()
	return formatter.GigView{
		Draft:      g,
		RolesTotal: domain.Amount(ctrl.RolesTotal()).Decimal(),
		Locked:     ctrl.BudgetLocked(),
	}
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
