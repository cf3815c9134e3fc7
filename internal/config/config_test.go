package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFromFile_Valid(t *testing.T) {
	path := writeFile(t, "config.yaml",
		"base_url: https://ooinet-dev-01.example.org\nnetrc: /home/op/.netrc\nout_dir: /tmp/results\n")

	fv, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if fv.BaseURL != "https://ooinet-dev-01.example.org" {
		t.Errorf("base_url = %q", fv.BaseURL)
	}
	if fv.Netrc != "/home/op/.netrc" || fv.OutDir != "/tmp/results" {
		t.Errorf("unexpected file values: %+v", fv)
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromFile_BadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "base_url: [unterminated\n")
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	sheet := writeFile(t, "ingest.csv", "filename_mask,reference_designator,data_source,parser\n")

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid telemetered", Config{CSVFile: sheet, IngestType: "telemetered"}, false},
		{"valid recovered", Config{CSVFile: sheet, IngestType: "recovered"}, false},
		{"missing csvfile", Config{IngestType: "telemetered"}, true},
		{"nonexistent csvfile", Config{CSVFile: "/nonexistent.csv", IngestType: "telemetered"}, true},
		{"bad ingest type", Config{CSVFile: sheet, IngestType: "streamed"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
