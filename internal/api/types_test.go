package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("form create requires a name and known type", func(t *testing.T) {
		err := Validate(FormCreate{FormType: FormTypeContact})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")

		err = Validate(FormCreate{Name: "Landing", FormType: "banner"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "formtype must be one of")

		assert.NoError(t, Validate(FormCreate{Name: "Landing", FormType: FormTypeLeadCapture}))
	})

	t.Run("lead update rejects unknown statuses", func(t *testing.T) {
		err := Validate(LeadUpdate{Status: "archived"})
		require.Error(t, err)

		assert.NoError(t, Validate(LeadUpdate{Status: LeadStatusClosedWon}))
		assert.NoError(t, Validate(LeadUpdate{Notes: "called twice"}))
	})

	t.Run("affiliate create validates website URL", func(t *testing.T) {
		err := Validate(AffiliateCreate{User: 1, AffiliateCode: "AFF1", Website: "not a url"})
		require.Error(t, err)

		assert.NoError(t, Validate(AffiliateCreate{User: 1, AffiliateCode: "AFF1", Website: "https://example.com"}))
	})

	t.Run("profile update validates email when present", func(t *testing.T) {
		assert.Error(t, Validate(ProfileUpdate{Email: "nope"}))
		assert.NoError(t, Validate(ProfileUpdate{Email: "a@b.com"}))
		assert.NoError(t, Validate(ProfileUpdate{}))
	})
}

func TestTrackingLink(t *testing.T) {
	formID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	t.Run("carries affiliate code and UTM params", func(t *testing.T) {
		link := TrackingLink("https://forms.example.com/", formID, "AFF42", UTMParams{
			Source:   "newsletter",
			Medium:   "email",
			Campaign: "spring",
		})
		assert.Equal(t,
			"https://forms.example.com/embed/11111111-2222-3333-4444-555555555555/?affiliate=AFF42&utm_campaign=spring&utm_medium=email&utm_source=newsletter",
			link)
	})

	t.Run("bare link when nothing is set", func(t *testing.T) {
		link := TrackingLink("https://forms.example.com", formID, "", UTMParams{})
		assert.Equal(t, "https://forms.example.com/embed/11111111-2222-3333-4444-555555555555/", link)
	})
}

func TestForm_EmbedSnippet(t *testing.T) {
	form := Form{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555")}
	snippet := form.EmbedSnippet("https://forms.example.com/")
	assert.Equal(t,
		`<iframe src="https://forms.example.com/embed/11111111-2222-3333-4444-555555555555/" width="100%" height="600px" frameborder="0"></iframe>`,
		snippet)
}

func TestAffiliate_ConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, (&Affiliate{}).ConversionRate())
	assert.Equal(t, 25.0, (&Affiliate{TotalLeads: 40, TotalConversions: 10}).ConversionRate())
}

func TestLeadListParams_Query(t *testing.T) {
	q := LeadListParams{Status: LeadStatusNew, Search: "jane", Page: 2}.Query()
	assert.Equal(t, "new", q.Get("status"))
	assert.Equal(t, "jane", q.Get("search"))
	assert.Equal(t, "2", q.Get("page"))

	assert.Empty(t, LeadListParams{}.Query())
}
