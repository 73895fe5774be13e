// Package api defines the wire types exchanged with the form builder REST
// API, plus the error-body decoding rules shared by every client call.
package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User types recognised by the API.
const (
	UserTypeAdmin      = "admin"
	UserTypeAffiliate  = "affiliate"
	UserTypeOperations = "operations"
)

// User is the authenticated principal as returned by the profile endpoint.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	UserType    string    `json:"user_type"`
	AffiliateID string    `json:"affiliate_id,omitempty"`
	DateJoined  time.Time `json:"date_joined"`
}

// ProfileUpdate carries the writable profile fields. Zero-value fields are
// omitted so the server only sees what the caller intends to change.
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// LoginResponse is the body returned by POST /auth/login/.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PasswordChangeResponse is the body returned by POST /auth/change-password/.
// Token is present when the server rotated the credential.
type PasswordChangeResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// MessageResponse is the generic `{"message": ...}` success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Form types recognised by the API.
const (
	FormTypeLeadCapture = "lead_capture"
	FormTypeContact     = "contact"
	FormTypeNewsletter  = "newsletter"
)

// Form is an embeddable lead-capture form.
type Form struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	FormType      string         `json:"form_type"`
	FieldsConfig  map[string]any `json:"fields_config"`
	StylingConfig map[string]any `json:"styling_config"`
	EmbedCode     string         `json:"embed_code"`
	IsActive      bool           `json:"is_active"`
	Fields        []FormField    `json:"fields,omitempty"`
	CreatedBy     int64          `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// EmbedSnippet builds the iframe snippet for embedding the form on an
// external site. baseURL is the public origin the API is served from.
func (f *Form) EmbedSnippet(baseURL string) string {
	return fmt.Sprintf(`<iframe src="%s/embed/%s/" width="100%%" height="600px" frameborder="0"></iframe>`,
		strings.TrimSuffix(baseURL, "/"), f.ID)
}

// FormField is a single configurable input on a form.
type FormField struct {
	ID          int64     `json:"id"`
	Form        uuid.UUID `json:"form"`
	FieldType   string    `json:"field_type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	IsRequired  bool      `json:"is_required"`
	Options     []string  `json:"options,omitempty"`
	Order       int       `json:"order"`
}

// FormCreate is the payload for creating or updating a form.
type FormCreate struct {
	Name          string         `json:"name" validate:"required"`
	Description   string         `json:"description,omitempty"`
	FormType      string         `json:"form_type" validate:"required,oneof=lead_capture contact newsletter"`
	FieldsConfig  map[string]any `json:"fields_config,omitempty"`
	StylingConfig map[string]any `json:"styling_config,omitempty"`
	IsActive      *bool          `json:"is_active,omitempty"`
}

// FormStats is the per-form statistics payload.
type FormStats struct {
	FormID         uuid.UUID `json:"form_id"`
	Views          int       `json:"views"`
	Submissions    int       `json:"submissions"`
	ConversionRate float64   `json:"conversion_rate"`
}

// Lead status pipeline.
const (
	LeadStatusNew           = "new"
	LeadStatusContacted     = "contacted"
	LeadStatusQualified     = "qualified"
	LeadStatusDemoScheduled = "demo_scheduled"
	LeadStatusDemoCompleted = "demo_completed"
	LeadStatusProposalSent  = "proposal_sent"
	LeadStatusNegotiating   = "negotiating"
	LeadStatusClosedWon     = "closed_won"
	LeadStatusClosedLost    = "closed_lost"
)

// Lead is a captured form submission with its attribution data.
type Lead struct {
	ID            uuid.UUID      `json:"id"`
	Form          uuid.UUID      `json:"form"`
	FormName      string         `json:"form_name,omitempty"`
	Affiliate     *uuid.UUID     `json:"affiliate,omitempty"`
	AffiliateCode string         `json:"affiliate_code,omitempty"`
	FormData      map[string]any `json:"form_data,omitempty"`
	Email         string         `json:"email"`
	Name          string         `json:"name,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	UTMSource     string         `json:"utm_source,omitempty"`
	UTMMedium     string         `json:"utm_medium,omitempty"`
	UTMCampaign   string         `json:"utm_campaign,omitempty"`
	UTMTerm       string         `json:"utm_term,omitempty"`
	UTMContent    string         `json:"utm_content,omitempty"`
	ReferrerURL   string         `json:"referrer_url,omitempty"`
	IPAddress     string         `json:"ip_address,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	Status        string         `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	AssignedTo    *int64         `json:"assigned_to,omitempty"`
	LeadNotes     []LeadNote     `json:"lead_notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// LeadNote is a timestamped note attached to a lead.
type LeadNote struct {
	ID        int64     `json:"id"`
	Lead      uuid.UUID `json:"lead"`
	UserName  string    `json:"user_name,omitempty"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadUpdate is the payload for updating a lead's pipeline state.
type LeadUpdate struct {
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified demo_scheduled demo_completed proposal_sent negotiating closed_won closed_lost"`
	Notes      string `json:"notes,omitempty"`
	AssignedTo *int64 `json:"assigned_to,omitempty"`
}

// LeadListParams filters the lead listing server-side.
type LeadListParams struct {
	Status string
	Search string
	Page   int
}

// Query encodes the non-zero params as a URL query string.
func (p LeadListParams) Query() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", p.Page))
	}
	return q
}

// LeadStats is the aggregate lead statistics payload.
type LeadStats struct {
	TotalLeads  int `json:"total_leads"`
	Conversions int `json:"conversions"`
}

// Affiliate is a partner earning attribution via tracking links.
type Affiliate struct {
	ID               uuid.UUID `json:"id"`
	User             int64     `json:"user"`
	UserName         string    `json:"user_name,omitempty"`
	AffiliateCode    string    `json:"affiliate_code"`
	CompanyName      string    `json:"company_name,omitempty"`
	Website          string    `json:"website,omitempty"`
	TotalLeads       int       `json:"total_leads"`
	TotalConversions int       `json:"total_conversions"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ConversionRate returns the percentage of leads that converted.
func (a *Affiliate) ConversionRate() float64 {
	if a.TotalLeads == 0 {
		return 0
	}
	return float64(a.TotalConversions) / float64(a.TotalLeads) * 100
}

// AffiliateCreate is the payload for registering a new affiliate.
type AffiliateCreate struct {
	User          int64  `json:"user" validate:"required"`
	AffiliateCode string `json:"affiliate_code" validate:"required"`
	CompanyName   string `json:"company_name,omitempty"`
	Website       string `json:"website,omitempty" validate:"omitempty,url"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// AffiliateStats is the per-affiliate statistics payload.
type AffiliateStats struct {
	AffiliateID      uuid.UUID `json:"affiliate_id"`
	TotalLeads       int       `json:"total_leads"`
	TotalConversions int       `json:"total_conversions"`
	ConversionRate   float64   `json:"conversion_rate"`
}

// UTMParams are the campaign attribution parameters carried on tracking links.
type UTMParams struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

// TrackingLink builds the embeddable form URL carrying the affiliate code and
// UTM parameters, matching the links the dashboard hands to partners.
func TrackingLink(baseURL string, formID uuid.UUID, affiliateCode string, utm UTMParams) string {
	q := url.Values{}
	if affiliateCode != "" {
		q.Set("affiliate", affiliateCode)
	}
	if utm.Source != "" {
		q.Set("utm_source", utm.Source)
	}
	if utm.Medium != "" {
		q.Set("utm_medium", utm.Medium)
	}
	if utm.Campaign != "" {
		q.Set("utm_campaign", utm.Campaign)
	}
	if utm.Term != "" {
		q.Set("utm_term", utm.Term)
	}
	if utm.Content != "" {
		q.Set("utm_content", utm.Content)
	}

	link := fmt.Sprintf("%s/embed/%s/", strings.TrimSuffix(baseURL, "/"), formID)
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}

// Dashboard is the role-shaped payload from GET /core/dashboard/. Which
// fields are populated depends on the caller's user type.
type Dashboard struct {
	UserType        string       `json:"user_type"`
	TotalForms      int          `json:"total_forms,omitempty"`
	TotalLeads      int          `json:"total_leads,omitempty"`
	TotalAffiliates int          `json:"total_affiliates,omitempty"`
	MyLeads         int          `json:"my_leads,omitempty"`
	Conversions     int          `json:"conversions,omitempty"`
	ConversionRate  float64      `json:"conversion_rate,omitempty"`
	PendingLeads    int          `json:"pending_leads,omitempty"`
	QualifiedLeads  int          `json:"qualified_leads,omitempty"`
	RecentLeads     []RecentLead `json:"recent_leads,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// RecentLead is the abbreviated lead entry on the dashboard payload.
type RecentLead struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Status    string    `json:"status"`
	FormName  string    `json:"form__name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Analytics is the payload from GET /core/analytics/.
type Analytics struct {
	DailySubmissions []DailyCount        `json:"daily_submissions"`
	ConversionRates  []DailyRate         `json:"conversion_rates"`
	TopForms         []TopFormEntry      `json:"top_forms"`
	TopAffiliates    []TopAffiliateEntry `json:"top_affiliates"`
}

// DailyCount is one day's submission count.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyRate is one day's conversion rate.
type DailyRate struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// TopFormEntry ranks a form by lead volume.
type TopFormEntry struct {
	FormID uuid.UUID `json:"form_id"`
	Name   string    `json:"name"`
	Leads  int       `json:"leads"`
}

// TopAffiliateEntry ranks an affiliate by lead volume.
type TopAffiliateEntry struct {
	AffiliateCode string `json:"affiliate_code"`
	Leads         int    `json:"leads"`
	Conversions   int    `json:"conversions"`
}
