package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/leadform/leadform/internal/api"
	"github.com/leadform/leadform/internal/client"
)

// DashboardCmd shows the role-shaped dashboard summary. Dashboard reads are
// GET-heavy and cacheable, so the HTTP cache is enabled here.
type DashboardCmd struct {
	apiFlags
}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := d.setup(ctx, client.WithCaching())
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	dash, err := env.client.Dashboard(ctx)
	if err != nil {
		return err
	}

	if dash.Error != "" {
		return fmt.Errorf("dashboard unavailable: %s", dash.Error)
	}

	fmt.Printf("Dashboard (%s)\n\n", dash.UserType)

	switch dash.UserType {
	case api.UserTypeAdmin:
		fmt.Printf("Forms:      %d\n", dash.TotalForms)
		fmt.Printf("Leads:      %d\n", dash.TotalLeads)
		fmt.Printf("Affiliates: %d\n", dash.TotalAffiliates)
	case api.UserTypeAffiliate:
		fmt.Printf("My leads:    %d\n", dash.MyLeads)
		fmt.Printf("Conversions: %d\n", dash.Conversions)
		fmt.Printf("Rate:        %.1f%%\n", dash.ConversionRate)
	case api.UserTypeOperations:
		fmt.Printf("Leads:     %d\n", dash.TotalLeads)
		fmt.Printf("Pending:   %d\n", dash.PendingLeads)
		fmt.Printf("Qualified: %d\n", dash.QualifiedLeads)
	}

	if len(dash.RecentLeads) > 0 {
		fmt.Println("\nRecent leads:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNAME\tSTATUS\tCREATED")
		for _, lead := range dash.RecentLeads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(lead.Email, 30),
				truncate(lead.Name, 20),
				lead.Status,
				lead.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	}

	return nil
}

// AnalyticsCmd shows the aggregated analytics series.
type AnalyticsCmd struct {
	apiFlags
}

func (a *AnalyticsCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := a.setup(ctx, client.WithCaching())
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	analytics, err := env.client.Analytics(ctx)
	if err != nil {
		return err
	}

	if len(analytics.DailySubmissions) > 0 {
		fmt.Println("Daily submissions:")
		for _, day := range analytics.DailySubmissions {
			fmt.Printf("  %s  %d\n", day.Date, day.Count)
		}
	}

	if len(analytics.TopForms) > 0 {
		fmt.Println("\nTop forms:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLEADS")
		for _, form := range analytics.TopForms {
			fmt.Fprintf(w, "%s\t%d\n", truncate(form.Name, 30), form.Leads)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(analytics.TopAffiliates) > 0 {
		fmt.Println("\nTop affiliates:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLEADS\tCONVERSIONS")
		for _, aff := range analytics.TopAffiliates {
			fmt.Fprintf(w, "%s\t%d\t%d\n", aff.AffiliateCode, aff.Leads, aff.Conversions)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(analytics.DailySubmissions) == 0 && len(analytics.TopForms) == 0 && len(analytics.TopAffiliates) == 0 {
		fmt.Println("No analytics data yet.")
	}

	return nil
}
