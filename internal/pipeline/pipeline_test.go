package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hubstat/internal/dataset"
	"hubstat/internal/feed"
	"hubstat/internal/logging"
	"hubstat/internal/pipeline"
	"hubstat/internal/testsupport"
)

type recordedRun struct {
	outcome   string
	published int
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (r *fakeRecorder) ObserveRun(outcome string, _ time.Duration, published int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{outcome: outcome, published: published})
}

func newHTTPPipeline(t *testing.T, endpoint string, opts ...pipeline.Option) *pipeline.Pipeline {
	t.Helper()
	client, err := feed.New(endpoint, feed.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("feed.New: %v", err)
	}
	p, err := pipeline.New(client, opts...)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return p
}

func TestRunEndToEnd(t *testing.T) {
	server := testsupport.NewFeedServer(t, http.StatusOK, testsupport.PublishedPayload)
	recorder := &fakeRecorder{}
	p := newHTTPPipeline(t, server.URL, pipeline.WithRecorder(recorder))

	result := p.Run(context.Background())
	if !result.OK() {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if result.Kind != pipeline.KindNone || result.Status() != "ok" {
		t.Fatalf("unexpected kind/status: %q %q", result.Kind, result.Status())
	}
	if diff := cmp.Diff([]string{"Derived", "Primary"}, result.Table.Strings(dataset.ColumnDatasetStatus)); diff != "" {
		t.Fatalf("dataset_status mismatch (-want +got):\n%s", diff)
	}
	if result.StatusCode != http.StatusOK || result.Source != server.URL {
		t.Fatalf("unexpected metadata: %+v", result)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
	if diff := cmp.Diff([]recordedRun{{outcome: "success", published: 2}}, recorder.runs, cmp.AllowUnexported(recordedRun{})); diff != "" {
		t.Fatalf("recorded runs mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFailuresYieldEmptyTable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   pipeline.ErrorKind
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, pipeline.KindHTTP},
		{"not found", http.StatusNotFound, ``, pipeline.KindHTTP},
		{"malformed json", http.StatusOK, `{"data":[{"status":`, pipeline.KindParse},
		{"missing data key", http.StatusOK, `{"rows":[]}`, pipeline.KindSchema},
		{"data not array", http.StatusOK, `{"data":"nope"}`, pipeline.KindSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testsupport.NewFeedServer(t, tt.status, tt.body)
			recorder := &fakeRecorder{}
			p := newHTTPPipeline(t, server.URL, pipeline.WithRecorder(recorder))

			result := p.Run(context.Background())
			if result.OK() {
				t.Fatal("expected failure")
			}
			if result.Kind != tt.kind {
				t.Fatalf("expected kind %q, got %q (%v)", tt.kind, result.Kind, result.Err)
			}
			if result.Table == nil || !result.Table.Empty() {
				t.Fatalf("expected empty non-nil table, got %+v", result.Table)
			}
			if len(recorder.runs) != 1 || recorder.runs[0].outcome != string(tt.kind) {
				t.Fatalf("unexpected recorded runs: %+v", recorder.runs)
			}
		})
	}
}

func TestRunHTTPErrorCarriesStatus(t *testing.T) {
	server := testsupport.NewFeedServer(t, http.StatusBadGateway, "bad gateway")
	result := newHTTPPipeline(t, server.URL).Run(context.Background())

	var httpErr *feed.HTTPError
	if !errors.As(result.Err, &httpErr) || httpErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected HTTPError 502, got %v", result.Err)
	}
	if result.Status() != "failed: http" {
		t.Fatalf("unexpected status %q", result.Status())
	}
}

func TestTableConnectionRefused(t *testing.T) {
	p := newHTTPPipeline(t, testsupport.ClosedEndpoint(t))

	table := p.Table(context.Background())
	if table == nil || !table.Empty() {
		t.Fatalf("expected empty table, got %+v", table)
	}
	if result := p.Run(context.Background()); result.Kind != pipeline.KindNetwork {
		t.Fatalf("expected network kind, got %q", result.Kind)
	}
}

func TestTableMalformedJSON(t *testing.T) {
	server := testsupport.NewFeedServer(t, http.StatusOK, "not json at all")
	if table := newHTTPPipeline(t, server.URL).Table(context.Background()); table == nil || !table.Empty() {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	server := testsupport.NewFeedServer(t, http.StatusOK, testsupport.RichPayload)
	p := newHTTPPipeline(t, server.URL)

	first := p.Table(context.Background())
	second := p.Table(context.Background())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("tables differ (-first +second):\n%s", diff)
	}
	if first == second {
		t.Fatal("expected a fresh table per run")
	}
	if server.Hits() != 2 {
		t.Fatalf("expected two fetches, got %d", server.Hits())
	}
}

func TestRunLogsFailureKind(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pipeline.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	server := testsupport.NewFeedServer(t, http.StatusInternalServerError, "")
	result := newHTTPPipeline(t, server.URL, pipeline.WithLogger(logger)).Run(context.Background())

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"WARN pipeline:", "event_type=pipeline_failed", "error_kind=http", "correlation_id=" + result.RunID} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %q in log %q", want, content)
		}
	}
}

func TestRunWarnsOnUnclassifiedRows(t *testing.T) {
	server := testsupport.NewFeedServer(t, http.StatusOK, `{"data":[{"status":"Published"},{"status":"Published","dataset_type":"A[b]"}]}`)
	result := newHTTPPipeline(t, server.URL).Run(context.Background())
	if !result.OK() {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 0 {
		t.Fatalf("unexpected warnings: %+v", result.Warnings)
	}
}

func TestFileSource(t *testing.T) {
	path := testsupport.WriteFeedFile(t, "feed.json", testsupport.PublishedPayload)
	p, err := pipeline.New(pipeline.NewFileSource(path))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	result := p.Run(context.Background())
	if !result.OK() || result.Table.Len() != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(p.Endpoint(), "file://") {
		t.Fatalf("unexpected endpoint %q", p.Endpoint())
	}

	missing, err := pipeline.New(pipeline.NewFileSource(filepath.Join(t.TempDir(), "absent.json")))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	if result := missing.Run(context.Background()); result.Kind != pipeline.KindUnknown {
		t.Fatalf("expected unknown kind for missing file, got %q", result.Kind)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := pipeline.New(nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want pipeline.ErrorKind
	}{
		{nil, pipeline.KindNone},
		{errors.Join(errors.New("ctx"), feed.ErrNetwork), pipeline.KindNetwork},
		{&feed.HTTPError{StatusCode: 500}, pipeline.KindHTTP},
		{feed.ErrParse, pipeline.KindParse},
		{dataset.ErrSchema, pipeline.KindSchema},
		{errors.New("other"), pipeline.KindUnknown},
	}
	for _, tt := range tests {
		if got := pipeline.KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
	if pipeline.KindNone.Outcome() != "success" || pipeline.KindSchema.Outcome() != "schema" {
		t.Fatal("unexpected outcome labels")
	}
}
