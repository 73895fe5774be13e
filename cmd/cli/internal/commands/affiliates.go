package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// AffiliatesCmd manages affiliate partners and their tracking links.
type AffiliatesCmd struct {
	List   AffiliatesListCmd   `cmd:"" default:"1" help:"List affiliates"`
	Create AffiliatesCreateCmd `cmd:"" help:"Register an affiliate"`
	Stats  AffiliatesStatsCmd  `cmd:"" help:"Show affiliate statistics"`
	Link   AffiliatesLinkCmd   `cmd:"" help:"Build a tracking link for a form"`
}

type AffiliatesListCmd struct {
	apiFlags
}

func (a *AffiliatesListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := a.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	affiliates, err := env.client.ListAffiliates(ctx)
	if err != nil {
		return err
	}

	if len(affiliates) == 0 {
		fmt.Println("No affiliates found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tUSER\tCOMPANY\tLEADS\tCONVERSIONS\tRATE\tACTIVE")
	for i := range affiliates {
		aff := &affiliates[i]
		active := ""
		if aff.IsActive {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f%%\t%s\n",
			aff.AffiliateCode,
			aff.UserName,
			truncate(aff.CompanyName, 25),
			aff.TotalLeads,
			aff.TotalConversions,
			aff.ConversionRate(),
			active)
	}
	return w.Flush()
}

type AffiliatesCreateCmd struct {
	apiFlags
	UserID  int64  `help:"ID of the user to attach" required:""`
	Code    string `help:"Unique affiliate code" required:""`
	Company string `help:"Company name"`
	Website string `help:"Company website"`
}

func (a *AffiliatesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := a.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	affiliate, err := env.client.CreateAffiliate(ctx, api.AffiliateCreate{
		User:          a.UserID,
		AffiliateCode: a.Code,
		CompanyName:   a.Company,
		Website:       a.Website,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created affiliate %s (%s)\n", affiliate.AffiliateCode, affiliate.ID)
	return nil
}

type AffiliatesStatsCmd struct {
	apiFlags
	ID string `arg:"" help:"Affiliate ID"`
}

func (a *AffiliatesStatsCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return fmt.Errorf("invalid affiliate ID %q: %w", a.ID, err)
	}

	env, err := a.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	stats, err := env.client.AffiliateStats(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Affiliate:   %s\n", id)
	fmt.Printf("Leads:       %d\n", stats.TotalLeads)
	fmt.Printf("Conversions: %d\n", stats.TotalConversions)
	fmt.Printf("Rate:        %.1f%%\n", stats.ConversionRate)
	return nil
}

// AffiliatesLinkCmd builds the tracking URL a partner shares: the embed URL
// for a form carrying the affiliate code and UTM attribution.
type AffiliatesLinkCmd struct {
	apiFlags
	FormID   string `arg:"" help:"Form ID"`
	Code     string `help:"Affiliate code" required:""`
	Source   string `help:"utm_source value"`
	Medium   string `help:"utm_medium value"`
	Campaign string `help:"utm_campaign value"`
	Term     string `help:"utm_term value"`
	Content  string `help:"utm_content value"`
}

func (a *AffiliatesLinkCmd) Run(ctx context.Context, globals *Globals) error {
	formID, err := uuid.Parse(a.FormID)
	if err != nil {
		return fmt.Errorf("invalid form ID %q: %w", a.FormID, err)
	}

	env, err := a.setup(ctx)
	if err != nil {
		return err
	}

	link := api.TrackingLink(siteURL(env.cfg.APIURL), formID, a.Code, api.UTMParams{
		Source:   a.Source,
		Medium:   a.Medium,
		Campaign: a.Campaign,
		Term:     a.Term,
		Content:  a.Content,
	})

	fmt.Println(link)
	return nil
}
