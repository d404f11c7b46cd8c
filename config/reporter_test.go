package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReportFinalize(t *testing.T) {
	reportFile, err := os.CreateTemp("", "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}
	defer os.Remove(reportFile.Name())

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	stored := filepath.Join(t.TempDir(), "input.xml")
	if err := os.WriteFile(stored, []byte("<document/>"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("input/input.xml", stored)
	r.StoreData("config/config.yaml", []byte("version: 1"))
	r.Store("missing", filepath.Join(t.TempDir(), "never-created"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	arc, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("report is not a readable zip: %v", err)
	}
	defer arc.Close()

	want := map[string]bool{
		"MANIFEST":           false,
		"input/input.xml":    false,
		"config/config.yaml": false,
	}
	for _, f := range arc.File {
		if f.Name == "missing" {
			t.Fatalf("absent file ended up in the report")
		}
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("report is missing entry %q", name)
		}
	}
}

func TestReportNilIsSilent(t *testing.T) {
	var r *Report

	// all operations on an unrequested report must be no-ops
	r.Store("a", "b")
	r.StoreData("c", []byte("d"))
	if r.Name() != "" {
		t.Errorf("nil report has a name")
	}
	if err := r.Close(); err != nil {
		t.Errorf("nil report Close() error = %v", err)
	}
}
