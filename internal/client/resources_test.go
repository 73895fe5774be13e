package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadform/leadform/internal/api"
)

// recordingServer captures the last request and serves canned JSON.
type recordingServer struct {
	*httptest.Server
	method string
	path   string
	query  string
	body   []byte
}

func newRecordingServer(t *testing.T, status int, respond any) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.method = r.Method
		rs.path = r.URL.Path
		rs.query = r.URL.RawQuery
		rs.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		if respond != nil {
			json.NewEncoder(w).Encode(respond)
		}
	}))
	t.Cleanup(rs.Server.Close)
	return rs
}

func TestClient_Forms(t *testing.T) {
	formID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	t.Run("list", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, []api.Form{{ID: formID, Name: "Landing"}})
		c := New(srv.URL, newTestStore(t))

		forms, err := c.ListForms(context.Background())
		require.NoError(t, err)
		require.Len(t, forms, 1)
		assert.Equal(t, "Landing", forms[0].Name)
		assert.Equal(t, http.MethodGet, srv.method)
		assert.Equal(t, "/forms/forms/", srv.path)
	})

	t.Run("get", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.Form{ID: formID, Name: "Landing", FormType: api.FormTypeContact})
		c := New(srv.URL, newTestStore(t))

		form, err := c.GetForm(context.Background(), formID)
		require.NoError(t, err)
		assert.Equal(t, api.FormTypeContact, form.FormType)
		assert.Equal(t, http.MethodGet, srv.method)
		assert.Equal(t, "/forms/forms/11111111-2222-3333-4444-555555555555/", srv.path)
	})

	t.Run("create", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusCreated, api.Form{ID: formID, Name: "Landing"})
		c := New(srv.URL, newTestStore(t))

		form, err := c.CreateForm(context.Background(), api.FormCreate{
			Name:     "Landing",
			FormType: api.FormTypeLeadCapture,
		})
		require.NoError(t, err)
		assert.Equal(t, formID, form.ID)
		assert.Equal(t, http.MethodPost, srv.method)
		assert.JSONEq(t, `{"name":"Landing","form_type":"lead_capture"}`, string(srv.body))
	})

	t.Run("delete", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusNoContent, nil)
		c := New(srv.URL, newTestStore(t))

		require.NoError(t, c.DeleteForm(context.Background(), formID))
		assert.Equal(t, http.MethodDelete, srv.method)
		assert.Equal(t, "/forms/forms/11111111-2222-3333-4444-555555555555/", srv.path)
	})

	t.Run("stats", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.FormStats{Submissions: 7})
		c := New(srv.URL, newTestStore(t))

		stats, err := c.FormStats(context.Background(), formID)
		require.NoError(t, err)
		assert.Equal(t, 7, stats.Submissions)
		assert.Equal(t, "/forms/forms/11111111-2222-3333-4444-555555555555/stats/", srv.path)
	})
}

func TestClient_Leads(t *testing.T) {
	leadID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("list forwards filters as query params", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, []api.Lead{{ID: leadID, Email: "jane@x.com", Status: api.LeadStatusNew}})
		c := New(srv.URL, newTestStore(t))

		leads, err := c.ListLeads(context.Background(), api.LeadListParams{Status: "new", Search: "jane", Page: 2})
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "/leads/leads/", srv.path)
		assert.Equal(t, "page=2&search=jane&status=new", srv.query)
	})

	t.Run("update", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.Lead{ID: leadID, Status: api.LeadStatusQualified})
		c := New(srv.URL, newTestStore(t))

		lead, err := c.UpdateLead(context.Background(), leadID, api.LeadUpdate{Status: api.LeadStatusQualified})
		require.NoError(t, err)
		assert.Equal(t, api.LeadStatusQualified, lead.Status)
		assert.Equal(t, http.MethodPut, srv.method)
		assert.Equal(t, "/leads/leads/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/", srv.path)
	})

	t.Run("export downloads raw bytes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/leads/export/", r.URL.Path)
			w.Write([]byte("spreadsheet-bytes"))
		}))
		defer srv.Close()
		c := New(srv.URL, newTestStore(t))

		data, err := c.ExportLeads(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("spreadsheet-bytes"), data)
	})
}

func TestClient_Affiliates(t *testing.T) {
	affID := uuid.MustParse("99999999-8888-7777-6666-555555555555")

	t.Run("list", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, []api.Affiliate{{ID: affID, AffiliateCode: "AFF42"}})
		c := New(srv.URL, newTestStore(t))

		affiliates, err := c.ListAffiliates(context.Background())
		require.NoError(t, err)
		require.Len(t, affiliates, 1)
		assert.Equal(t, "AFF42", affiliates[0].AffiliateCode)
		assert.Equal(t, "/affiliates/affiliates/", srv.path)
	})

	t.Run("stats", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.AffiliateStats{TotalLeads: 12, ConversionRate: 25})
		c := New(srv.URL, newTestStore(t))

		stats, err := c.AffiliateStats(context.Background(), affID)
		require.NoError(t, err)
		assert.Equal(t, 12, stats.TotalLeads)
		assert.Equal(t, "/affiliates/affiliates/99999999-8888-7777-6666-555555555555/stats/", srv.path)
	})
}

func TestClient_Core(t *testing.T) {
	t.Run("dashboard", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.Dashboard{
			UserType:   api.UserTypeAdmin,
			TotalForms: 3,
			TotalLeads: 40,
		})
		c := New(srv.URL, newTestStore(t))

		dash, err := c.Dashboard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, api.UserTypeAdmin, dash.UserType)
		assert.Equal(t, 3, dash.TotalForms)
		assert.Equal(t, "/core/dashboard/", srv.path)
	})

	t.Run("analytics", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusOK, api.Analytics{
			DailySubmissions: []api.DailyCount{{Date: "2026-08-27", Count: 4}},
		})
		c := New(srv.URL, newTestStore(t))

		analytics, err := c.Analytics(context.Background())
		require.NoError(t, err)
		require.Len(t, analytics.DailySubmissions, 1)
		assert.Equal(t, 4, analytics.DailySubmissions[0].Count)
		assert.Equal(t, "/core/analytics/", srv.path)
	})
}
