package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/proposal"
	"github.com/alexanderramin/servio/internal/service"
	"github.com/spf13/cobra"
)

var ErrProposalSource = errors.New("pass exactly one of --gig or --from, or a --file that carries its gig")

func newProposalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Write and send proposals for published gigs",
	}
	cmd.AddCommand(
		newProposalNewCmd(app),
		newProposalListCmd(app),
		newProposalShowCmd(app),
		newProposalSubmitCmd(app),
	)
	return cmd
}

func newProposalNewCmd(app *App) *cobra.Command {
	var gigFile, fromID, file string
	var apply, deliverables []string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a proposal for a gig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := &domain.ProposalDraft{}
			if file != "" {
				if err := readJSONFile(file, p); err != nil {
					return err
				}
			}

			g, parentID, err := app.proposalGig(ctx, gigFile, fromID)
			if err != nil {
				return err
			}
			if g != nil {
				p.Gig = g
			}
			if p.Gig == nil {
				return ErrProposalSource
			}

			ctrl, err := proposal.FromDraft(p, nil, app.notifier, app.proposalConfig(ctx, ""))
			if err != nil {
				return err
			}

			switch {
			case len(apply) > 0 || len(deliverables) > 0:
				if err := deliverableFlags(ctrl, deliverables); err != nil {
					return err
				}
				if err := applyFlags(ctrl, apply); err != nil {
					return err
				}
			case file == "" && app.interactive():
				if err := runProposalForms(ctrl); err != nil {
					return err
				}
			case file == "":
				return ErrNeedInput
			}

			svc, err := app.drafts()
			if err != nil {
				return err
			}
			snap := ctrl.Snapshot()
			d, err := svc.SaveProposal(ctx, "", parentID, snap)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved proposal draft %s\n", formatter.TruncID(d.ID))
			fmt.Fprintln(out, formatter.FormatProposal(snap, ctrl.Summary()))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&gigFile, "gig", "", "JSON gig to answer")
	f.StringVar(&fromID, "from", "", "id of a stored gig draft to answer")
	f.StringVar(&file, "file", "", "JSON proposal draft with deliverables and roles")
	f.StringArrayVar(&deliverables, "deliverable", nil, "add a deliverable as TITLE|UNIT|VALUE|DUE")
	f.StringSliceVar(&apply, "apply", nil, "apply for a role as NICHE=PRICE[:PLAN]; use 0 as NICHE for a gig without roles")
	return cmd
}

func newProposalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List proposal drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.drafts()
			if err != nil {
				return err
			}
			drafts, err := svc.List(cmd.Context(), domain.DraftProposal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDraftList(drafts, app.now()))
			return nil
		},
	}
}

func newProposalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a proposal draft and its submit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, ctrl, err := app.loadProposal(ctx, args[0], "")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProposal(ctrl.Snapshot(), ctrl.Summary()))
			subs, err := app.Drafts.Submissions(ctx, d.ID)
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

func newProposalSubmitCmd(app *App) *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "submit ID",
		Short: "Validate a proposal draft and send it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, ctrl, err := app.loadProposal(ctx, args[0], endpoint)
			if err != nil {
				return err
			}

			stop := app.spin("Sending proposal…")
			out, submitErr := ctrl.Submit(ctx)
			stop()

			if err := app.record(ctx, d, "propose", out); err != nil {
				return err
			}
			if out != nil && len(out.Violations) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatViolations(out.Violations))
			}
			return submitErr
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the accept-offer endpoint")
	return cmd
}

// proposalGig resolves the gig a new proposal answers and, for a stored
// gig, the draft it links to.
func (a *App) proposalGig(ctx context.Context, gigFile, fromID string) (*domain.GigDraft, string, error) {
	switch {
	case gigFile != "" && fromID != "":
		return nil, "", ErrProposalSource
	case gigFile != "":
		g := domain.NewGigDraft()
		if err := readJSONFile(gigFile, g); err != nil {
			return nil, "", err
		}
		return g, "", nil
	case fromID != "":
		d, g, err := a.loadGig(ctx, fromID)
		if err != nil {
			return nil, "", err
		}
		return g, d.ID, nil
	}
	return nil, "", nil
}

func (a *App) proposalConfig(ctx context.Context, endpoint string) proposal.Config {
	cfg := proposal.Config{
		Endpoint:      endpoint,
		CSRFToken:     a.cfg.CSRFToken,
		RedirectDelay: a.cfg.RedirectDelay,
		Redirector:    a.redirector(),
		Now:           a.now,
	}
	if cat := a.catalog(ctx); cat != nil {
		cfg.IndustryOf = cat.IndustryOf
	}
	return cfg
}

func (a *App) loadProposal(ctx context.Context, ref, endpoint string) (*domain.Draft, *proposal.Controller, error) {
	svc, err := a.drafts()
	if err != nil {
		return nil, nil, err
	}
	d, err := svc.Get(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	p, err := service.DecodeProposal(d)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := proposal.FromDraft(p, a.gateway(), a.notifier, a.proposalConfig(ctx, endpoint))
	if err != nil {
		return nil, nil, err
	}
	return d, ctrl, nil
}

// deliverableFlags fills the first blank line, then appends one line per
// TITLE|UNIT|VALUE|DUE entry.
func deliverableFlags(ctrl *proposal.Controller, entries []string) error {
	e := ctrl.Deliverables()
	for i, raw := range entries {
		parts := strings.Split(raw, "|")
		if len(parts) != 4 {
			return fmt.Errorf("invalid --deliverable %q: want TITLE|UNIT|VALUE|DUE", raw)
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return fmt.Errorf("invalid --deliverable %q: %w", raw, err)
		}

		item := e.Items()[e.Len()-1]
		if i > 0 || item.Title != "" {
			item = e.Add()
		}
		if err := e.SetTitle(item.ID, strings.TrimSpace(parts[0])); err != nil {
			return err
		}
		if err := e.SetDuration(item.ID, domain.DurationUnit(strings.TrimSpace(parts[1])), value); err != nil {
			return err
		}
		if err := e.SetDueBy(item.ID, strings.TrimSpace(parts[3])); err != nil {
			return err
		}
	}
	return nil
}

// applyFlags parses NICHE=PRICE[:PLAN] entries into role applications.
func applyFlags(ctrl *proposal.Controller, entries []string) error {
	for _, raw := range entries {
		nicheText, rest, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid --apply %q: want NICHE=PRICE[:PLAN]", raw)
		}
		price, plan, _ := strings.Cut(rest, ":")
		niche, err := strconv.ParseInt(strings.TrimSpace(nicheText), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid --apply %q: %w", raw, err)
		}

		if pr := ctrl.ProjectRole(); pr != nil {
			if err := pr.SetProposedAmount(price); err != nil {
				return err
			}
			if plan != "" {
				if err := pr.SetPaymentPlan(domain.PaymentPlan(plan)); err != nil {
					return err
				}
			}
			continue
		}

		apps := ctrl.Applications()
		if err := apps.Touch(niche, domain.FieldProposedAmount, price); err != nil {
			return fmt.Errorf("role %d: %w", niche, err)
		}
		if plan != "" {
			if err := apps.Touch(niche, domain.FieldPaymentPlan, plan); err != nil {
				return fmt.Errorf("role %d: %w", niche, err)
			}
		}
	}
	return nil
}

func runProposalForms(ctrl *proposal.Controller) error {
	e := ctrl.Deliverables()
	for first := true; ; first = false {
		item := e.Items()[e.Len()-1]
		if !first {
			item = e.Add()
		}
		v := deliverableFormValues{Unit: item.Unit, Value: item.Value}
		if err := deliverableForm(&v).Run(); err != nil {
			return err
		}
		if err := e.SetTitle(item.ID, v.Title); err != nil {
			return err
		}
		if err := e.SetDuration(item.ID, v.Unit, v.Value); err != nil {
			return err
		}
		if err := e.SetDueBy(item.ID, v.DueBy); err != nil {
			return err
		}
		if !v.More {
			break
		}
	}

	if pr := ctrl.ProjectRole(); pr != nil {
		entry := pr.Entry()
		v := applicationFormValues{Apply: true, RoleName: entry.RoleName, Amount: string(entry.ProposedAmount), Plan: entry.PaymentPlan}
		if err := applicationForm(&v, entry.RoleAmount).Run(); err != nil {
			return err
		}
		if err := pr.SetProposedAmount(v.Amount); err != nil {
			return err
		}
		return pr.SetPaymentPlan(v.Plan)
	}

	apps := ctrl.Applications()
	for _, entry := range apps.Entries() {
		if !entry.CanApply {
			continue
		}
		v := applicationFormValues{RoleName: entry.RoleName, Amount: string(entry.ProposedAmount), Plan: entry.PaymentPlan}
		if err := applicationForm(&v, entry.RoleAmount).Run(); err != nil {
			return err
		}
		if !v.Apply {
			continue
		}
		if err := apps.Touch(entry.NicheID, domain.FieldProposedAmount, v.Amount); err != nil {
			return err
		}
		if err := apps.Touch(entry.NicheID, domain.FieldPaymentPlan, string(v.Plan)); err != nil {
			return err
		}
	}
	return nil
}
