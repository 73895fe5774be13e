package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// LeadsCmd tracks and manages captured leads.
type LeadsCmd struct {
	List   LeadsListCmd   `cmd:"" default:"1" help:"List leads"`
	Update LeadsUpdateCmd `cmd:"" help:"Update a lead's status or notes"`
	Stats  LeadsStatsCmd  `cmd:"" help:"Show aggregate lead statistics"`
	Export LeadsExportCmd `cmd:"" help:"Download the spreadsheet export"`
}

type LeadsListCmd struct {
	apiFlags
	Status string `help:"Filter by pipeline status"`
	Search string `help:"Search by email or name"`
	Page   int    `help:"Page number" default:"0"`
}

func (l *LeadsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	leads, err := env.client.ListLeads(ctx, api.LeadListParams{
		Status: l.Status,
		Search: l.Search,
		Page:   l.Page,
	})
	if err != nil {
		return err
	}

	if len(leads) == 0 {
		fmt.Println("No leads found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tSTATUS\tSOURCE\tAFFILIATE\tCREATED")
	for _, lead := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lead.ID,
			truncate(lead.Email, 30),
			truncate(lead.Name, 20),
			lead.Status,
			lead.UTMSource,
			lead.AffiliateCode,
			lead.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal leads on this page: %d\n", len(leads))
	return nil
}

type LeadsUpdateCmd struct {
	apiFlags
	ID     string `arg:"" help:"Lead ID"`
	Status string `help:"New pipeline status"`
	Notes  string `help:"Replace the lead notes"`
}

func (l *LeadsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(l.ID)
	if err != nil {
		return fmt.Errorf("invalid lead ID %q: %w", l.ID, err)
	}

	if l.Status == "" && l.Notes == "" {
		return fmt.Errorf("nothing to update: pass --status and/or --notes")
	}

	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	lead, err := env.client.UpdateLead(ctx, id, api.LeadUpdate{
		Status: l.Status,
		Notes:  l.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Updated lead %s (%s)\n", lead.Email, lead.Status)
	return nil
}

type LeadsStatsCmd struct {
	apiFlags
}

func (l *LeadsStatsCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	stats, err := env.client.LeadStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total leads: %d\n", stats.TotalLeads)
	fmt.Printf("Conversions: %d\n", stats.Conversions)
	return nil
}

type LeadsExportCmd struct {
	apiFlags
	Output string `help:"Output file" default:"leads_export.xlsx"`
}

func (l *LeadsExportCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	data, err := env.client.ExportLeads(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(l.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(data), l.Output)
	return nil
}
