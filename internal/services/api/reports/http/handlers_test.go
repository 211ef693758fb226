package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"reportsmith/internal/core/registry"
	phttp "reportsmith/internal/platform/net/http"
	"reportsmith/internal/services/api/reports/domain"
	reportshttp "reportsmith/internal/services/api/reports/http"
	"reportsmith/internal/services/api/reports/service"
)

func TestListReports(t *testing.T) {
	t.Parallel()

	reg := registry.MustNew([]registry.Spec{
		{ID: "ballistic", DisplayName: "Ballistic Report", Description: "velocity tables", Keywords: []string{"velocity", "ballistic"}},
		{ID: "bump_test", DisplayName: "Bump Test", Keywords: []string{"bump test"}},
	})

	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/reports", func(rr phttp.Router) {
		reportshttp.Register(rr, service.New(reg))
	})
	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)

	resp, err := stdhttp.Get(srv.URL + "/reports/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close() // nolint:errcheck
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var env phttp.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	raw, _ := json.Marshal(env.Data)
	var out domain.ListResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}

	if len(out.Reports) != 2 {
		t.Fatalf("reports = %+v", out.Reports)
	}
	if out.Reports[0].ID != "ballistic" || out.Reports[1].ID != "bump_test" {
		t.Fatalf("order = %q, %q", out.Reports[0].ID, out.Reports[1].ID)
	}
	if out.Reports[0].Description != "velocity tables" {
		t.Fatalf("description = %q", out.Reports[0].Description)
	}
	if len(out.Reports[0].Keywords) != 2 {
		t.Fatalf("keywords = %v", out.Reports[0].Keywords)
	}
}
