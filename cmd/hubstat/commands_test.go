package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hubstat/internal/api"
	"hubstat/internal/testsupport"
)

func TestFetchPrintsPublishedTable(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, testsupport.RichPayload)
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"fetch"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "dataset_status")
	requireContains(t, out, "Stanford TMC")
	requireContains(t, out, "4 published datasets (2 primary, 2 derived)")
	if strings.Contains(out, "lymph") || strings.Contains(out, "Lymph Node") {
		t.Fatalf("expected QA row to be filtered, got %q", out)
	}
}

func TestFetchLimitAndAllColumns(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, testsupport.RichPayload)
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"fetch", "--limit", "1", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "uuid")
	requireContains(t, out, "showing first 1")
	if strings.Contains(out, "a3") {
		t.Fatalf("expected only the first row, got %q", out)
	}

	if _, _, err := runCLI(t, []string{"fetch", "--limit", "-1"}, env.configPath); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestFetchJSONFromInputFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ClosedEndpoint(t))
	input := testsupport.WriteFeedFile(t, "feed.json", testsupport.PublishedPayload)

	out, _, err := runCLI(t, []string{"fetch", "--input", input, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var resp api.DatasetsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if !resp.Run.OK || resp.Count != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Rows[0]["dataset_status"] != "Derived" || resp.Rows[1]["dataset_status"] != "Primary" {
		t.Fatalf("unexpected rows: %+v", resp.Rows)
	}
}

func TestFetchFailOpenOnNetworkError(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ClosedEndpoint(t))

	out, _, err := runCLI(t, []string{"fetch"}, env.configPath)
	if err != nil {
		t.Fatalf("expected fail-open, got error: %v", err)
	}
	requireContains(t, out, "Feed unavailable (network failure)")
}

func TestFetchEmptyFeed(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, `{"data":[{"status":"QA","dataset_type":"A"}]}`)
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"fetch"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "No published datasets.")
}

func TestSummaryTables(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, testsupport.RichPayload)
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"summary"}, env.configPath)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"At a Glance", "Published datasets", "Data access level", "Public", "75.0%", "Contributor attribution"} {
		requireContains(t, out, want)
	}
}

func TestSummaryJSONReportsFailure(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusServiceUnavailable, "")
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"summary", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var resp api.SummaryResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if resp.Run.OK || resp.Run.ErrorKind != "http" || resp.Run.StatusCode != 0 {
		t.Fatalf("unexpected run status: %+v", resp.Run)
	}
}

func TestReportWritesFile(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, testsupport.RichPayload)
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "Wrote report for 4 published datasets")

	content, err := os.ReadFile(env.cfg.Report.OutputPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	requireContains(t, string(content), "Assessment of published data")

	custom := filepath.Join(env.baseDir, "custom.html")
	if _, _, err := runCLI(t, []string{"report", "--output", custom}, env.configPath); err != nil {
		t.Fatalf("report --output: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("expected custom report: %v", err)
	}
}

func TestReportStdoutOnFailure(t *testing.T) {
	feedServer := testsupport.NewFeedServer(t, http.StatusOK, "not json")
	env := setupCLITestEnv(t, feedServer.URL)

	out, _, err := runCLI(t, []string{"report", "--stdout"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "<!DOCTYPE html>")
	requireContains(t, out, "Dataset feed unavailable (parse failure)")
}

func TestInvalidLogLevelFlagFails(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ClosedEndpoint(t))

	if _, _, err := runCLI(t, []string{"--log-level", "loud", "fetch"}, env.configPath); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestServeRejectsBadBind(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.ClosedEndpoint(t))

	if _, _, err := runCLI(t, []string{"serve", "--bind", "256.0.0.1:99999"}, env.configPath); err == nil {
		t.Fatal("expected listen error for invalid bind address")
	}
}
