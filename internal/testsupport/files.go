package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// PublishedPayload is the three-row feed used across package tests: two
// published rows (one Derived, one Primary) and one QA row.
const PublishedPayload = `{"data":[{"status":"Published","dataset_type":"X[1]"},{"status":"QA","dataset_type":"Y"},{"status":"Published","dataset_type":"Z"}]}`

// RichPayload carries every presentation column.
const RichPayload = `{"data":[
{"uuid":"a1","status":"Published","dataset_type":"RNAseq","group_name":"Stanford TMC","has_data":true,"has_contributors":true,"data_access_level":"public","organ":"Kidney"},
{"uuid":"a2","status":"Published","dataset_type":"RNAseq [Salmon]","group_name":"Stanford TMC","has_data":true,"has_contributors":false,"data_access_level":"public","organ":"Kidney"},
{"uuid":"a3","status":"Published","dataset_type":"CODEX","group_name":"University of Florida TMC","has_data":false,"has_contributors":true,"data_access_level":"protected","organ":"Spleen"},
{"uuid":"a4","status":"QA","dataset_type":"CODEX","group_name":"University of Florida TMC","has_data":true,"has_contributors":true,"data_access_level":"consortium","organ":"Lymph Node"},
{"uuid":"a5","status":"Published","dataset_type":"CODEX [Cytokit + SPRM]","group_name":"Stanford TMC","has_data":null,"has_contributors":true,"data_access_level":"public","organ":null}
]}`

// WriteFeedFile writes body to name under a fresh temp directory and
// returns the path.
func WriteFeedFile(t testing.TB, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
