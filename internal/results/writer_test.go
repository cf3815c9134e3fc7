package results

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

func sampleRecord(id, refDes string, deployment int) model.ResultRecord {
	return model.ResultRecord{
		Response: []model.ResponseField{
			{Name: "id", Value: id},
			{Name: "status", Value: "RECEIVED"},
		},
		ReferenceDesignator: refDes,
		State:               model.StateRun,
		Type:                model.TypeTelemetered,
		Deployment:          deployment,
		Username:            "wingard",
		Priority:            model.DefaultPriority,
		RefDesFinal:         "true",
		FileMask:            "/omc_data/whoi/OMC/GI01SUMO/D00005/cg_data/*.log",
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := Filename(at); got != "20240102_030405_ingested.csv" {
		t.Errorf("Filename = %q", got)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []model.ResultRecord{
		sampleRecord("4261", "GI01SUMO-RID16-03-CTDBPF000", 5),
		sampleRecord("4262", "CE01ISSM-MFD35-04-ADCPTM000", 3),
	}

	path, err := Write(records, dir, at)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "20240102_030405_ingested.csv" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open result file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{
		"id", "status",
		"ReferenceDesignator", "state", "type", "deployment",
		"username", "priority", "refDesFinal", "fileMask",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	if rows[1][0] != "4261" || rows[1][2] != "GI01SUMO-RID16-03-CTDBPF000" || rows[1][5] != "5" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "4262" || rows[2][5] != "3" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestWrite_UnionColumns(t *testing.T) {
	dir := t.TempDir()
	first := sampleRecord("1", "GI01SUMO-RID16-03-CTDBPF000", 1)
	second := sampleRecord("2", "CE01ISSM-MFD35-04-ADCPTM000", 2)
	second.Response = append(second.Response, model.ResponseField{Name: "message", Value: "queued"})

	path, err := Write([]model.ResultRecord{first, second}, dir, time.Now().UTC())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}

	// "message" appears after the first record's columns and is empty for
	// the record that lacks it.
	if rows[0][2] != "message" {
		t.Errorf("header = %v, want message at index 2", rows[0])
	}
	if rows[1][2] != "" || rows[2][2] != "queued" {
		t.Errorf("message column values: %q, %q", rows[1][2], rows[2][2])
	}
}

func TestWrite_EmptyAccumulator(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(nil, dir, time.Now().UTC())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header-only file, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(metaColumns[:], ",") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, []model.ResultRecord{sampleRecord("4261", "GI01SUMO-RID16-03-CTDBPF000", 5)})

	out := buf.String()
	for _, want := range []string{"id", "ReferenceDesignator", "4261", "GI01SUMO-RID16-03-CTDBPF000"} {
		if !strings.Contains(out, want) {
			t.Errorf("console dump missing %q:\n%s", want, out)
		}
	}
}
