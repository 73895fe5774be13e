package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/leadform/leadform/internal/api"
)

// FormsCmd manages embeddable lead-capture forms.
type FormsCmd struct {
	List   FormsListCmd   `cmd:"" default:"1" help:"List forms"`
	Create FormsCreateCmd `cmd:"" help:"Create a form"`
	Update FormsUpdateCmd `cmd:"" help:"Update a form"`
	Delete FormsDeleteCmd `cmd:"" help:"Delete a form"`
	Stats  FormsStatsCmd  `cmd:"" help:"Show form statistics"`
	Embed  FormsEmbedCmd  `cmd:"" help:"Print the embed snippet for a form"`
}

type FormsListCmd struct {
	apiFlags
}

func (f *FormsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	forms, err := env.client.ListForms(ctx)
	if err != nil {
		return err
	}

	if len(forms) == 0 {
		fmt.Println("No forms found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tACTIVE\tCREATED")
	for _, form := range forms {
		active := ""
		if form.IsActive {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			form.ID,
			truncate(form.Name, 30),
			form.FormType,
			active,
			form.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

type FormsCreateCmd struct {
	apiFlags
	Name        string `arg:"" help:"Form name"`
	Description string `help:"Form description"`
	Type        string `help:"Form type (lead_capture, contact, newsletter)" default:"lead_capture"`
}

func (f *FormsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	form, err := env.client.CreateForm(ctx, api.FormCreate{
		Name:        f.Name,
		Description: f.Description,
		FormType:    f.Type,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created form %q (%s)\n", form.Name, form.ID)
	return nil
}

type FormsUpdateCmd struct {
	apiFlags
	ID          string `arg:"" help:"Form ID"`
	Name        string `help:"New form name"`
	Description string `help:"New description"`
	Type        string `help:"New form type (lead_capture, contact, newsletter)"`
	Active      *bool  `help:"Activate or deactivate the form" negatable:""`
}

func (f *FormsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(f.ID)
	if err != nil {
		return fmt.Errorf("invalid form ID %q: %w", f.ID, err)
	}

	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	existing, err := env.client.GetForm(ctx, id)
	if err != nil {
		return err
	}

	form, err := env.client.UpdateForm(ctx, id, f.payload(existing))
	if err != nil {
		return err
	}

	fmt.Printf("Updated form %q (%s)\n", form.Name, form.ID)
	return nil
}

// payload builds the full-replace body for the update. The server expects
// every field on a PUT, so flags the user did not pass carry the form's
// current values instead of zero values.
func (f *FormsUpdateCmd) payload(existing *api.Form) api.FormCreate {
	payload := api.FormCreate{
		Name:          existing.Name,
		Description:   existing.Description,
		FormType:      existing.FormType,
		FieldsConfig:  existing.FieldsConfig,
		StylingConfig: existing.StylingConfig,
		IsActive:      &existing.IsActive,
	}

	if f.Name != "" {
		payload.Name = f.Name
	}
	if f.Description != "" {
		payload.Description = f.Description
	}
	if f.Type != "" {
		payload.FormType = f.Type
	}
	if f.Active != nil {
		payload.IsActive = f.Active
	}

	return payload
}

type FormsDeleteCmd struct {
	apiFlags
	ID string `arg:"" help:"Form ID"`
}

func (f *FormsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(f.ID)
	if err != nil {
		return fmt.Errorf("invalid form ID %q: %w", f.ID, err)
	}

	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	if err := env.client.DeleteForm(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Deleted form %s\n", id)
	return nil
}

type FormsStatsCmd struct {
	apiFlags
	ID string `arg:"" help:"Form ID"`
}

func (f *FormsStatsCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(f.ID)
	if err != nil {
		return fmt.Errorf("invalid form ID %q: %w", f.ID, err)
	}

	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	stats, err := env.client.FormStats(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Form:        %s\n", id)
	fmt.Printf("Views:       %d\n", stats.Views)
	fmt.Printf("Submissions: %d\n", stats.Submissions)
	fmt.Printf("Conversion:  %.1f%%\n", stats.ConversionRate)
	return nil
}

type FormsEmbedCmd struct {
	apiFlags
	ID string `arg:"" help:"Form ID"`
}

func (f *FormsEmbedCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(f.ID)
	if err != nil {
		return fmt.Errorf("invalid form ID %q: %w", f.ID, err)
	}

	env, err := f.setup(ctx)
	if err != nil {
		return err
	}

	if _, err := env.requireUser(ctx); err != nil {
		return err
	}

	forms, err := env.client.ListForms(ctx)
	if err != nil {
		return err
	}

	for i := range forms {
		if forms[i].ID == id {
			fmt.Println(forms[i].EmbedSnippet(siteURL(env.cfg.APIURL)))
			return nil
		}
	}

	return fmt.Errorf("form %s not found", id)
}
