package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/sweep"
)

func sampleCurve(v physics.Variant) sweep.Curve {
	return sweep.Sweep(physics.NewWaterModel(), sweep.DefaultConfig(), v, physics.DefaultParameters())
}

func TestStoreSaveLoadCurve(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	curve := sampleCurve(physics.AllCorrections)
	path, err := st.SaveCurve(physics.AllCorrections, curve)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "fstopping_all_corrections.txt" {
		t.Errorf("unexpected file name %s", path)
	}

	got, err := st.LoadCurve(physics.AllCorrections)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(curve) {
		t.Fatalf("expected %d points, got %d", len(curve), len(got))
	}

	for i := range curve {
		if math.Abs(got[i].EnergyMeV-curve[i].EnergyMeV) > 0.05 {
			t.Errorf("point %d: energy %v, want %v", i, got[i].EnergyMeV, curve[i].EnergyMeV)
		}
		if got[i].StoppingPower != curve[i].StoppingPower {
			t.Errorf("point %d: dE/dx %v, want %v", i, got[i].StoppingPower, curve[i].StoppingPower)
		}
	}
}

func TestWriteCurveFormat(t *testing.T) {
	var buf bytes.Buffer
	curve := sweep.Curve{
		{EnergyMeV: 10, StoppingPower: 4.5e-28},
		{EnergyMeV: 20.04, StoppingPower: 1.25e-28},
	}
	if err := WriteCurve(&buf, curve); err != nil {
		t.Fatal(err)
	}

	want := "10.0\t4.5e-28\n20.0\t1.25e-28\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestReadCurveErrors(t *testing.T) {
	tests := []string{
		"10.0\n",
		"10.0\t1e-28\textra\n",
		"ten\t1e-28\n",
		"10.0\tx\n",
	}
	for _, in := range tests {
		if _, err := ReadCurve(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}

	curve, err := ReadCurve(strings.NewReader("\n10.0 1e-28\n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve) != 1 {
		t.Errorf("expected blank lines skipped, got %d points", len(curve))
	}
}

func TestLoadCurveMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.LoadCurve(physics.NoCorrection)
	if !errors.Is(err, ErrNoCurve) {
		t.Errorf("expected ErrNoCurve, got %v", err)
	}
}

func TestSaveCurveUnwritable(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing", "dir"))
	if _, err := st.SaveCurve(physics.NoCorrection, sweep.Curve{}); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestStoreMetadata(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta := NewRunMetadata(physics.DefaultParameters(), sweep.DefaultConfig())
	meta.Variants = append(meta.Variants, VariantRecord{
		Variant: physics.NoCorrection.String(),
		File:    CurveFile(physics.NoCorrection),
		Metrics: map[string]float64{"min_dedx": 1.5},
	})

	if err := st.SaveMetadata(meta); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != meta.ID {
		t.Errorf("expected id %s, got %s", meta.ID, got.ID)
	}
	if got.Parameters != physics.DefaultParameters() {
		t.Errorf("unexpected parameters %+v", got.Parameters)
	}
	if got.Points != 1000 || got.StepMeV != 10 {
		t.Errorf("unexpected sweep %d/%f", got.Points, got.StepMeV)
	}
	if diff := cmp.Diff(meta.Variants, got.Variants); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
	if !got.Timestamp.Equal(meta.Timestamp) {
		t.Errorf("expected timestamp %v, got %v", meta.Timestamp, got.Timestamp)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}

	for _, name := range []string{"plot10.png", "plot2.png", "plot1.png"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"plot1.png", "plot2.png", "plot10.png"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i].Name != want[i] {
			t.Errorf("entry %d: got %s, want %s", i, entries[i].Name, want[i])
		}
	}
}

func TestLoadAll(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for _, v := range []physics.Variant{physics.ShellCorrection, physics.NoCorrection} {
		if _, err := st.SaveCurve(v, sampleCurve(v)); err != nil {
			t.Fatal(err)
		}
	}

	results, err := st.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 curves, got %d", len(results))
	}
	if results[0].Variant != physics.NoCorrection || results[1].Variant != physics.ShellCorrection {
		t.Errorf("unexpected order %v, %v", results[0].Variant, results[1].Variant)
	}
}

func TestExportCSV(t *testing.T) {
	results := []sweep.Result{
		{Variant: physics.NoCorrection, Curve: sweep.Curve{{EnergyMeV: 10, StoppingPower: 2e-28}, {EnergyMeV: 20, StoppingPower: 1e-28}}},
		{Variant: physics.AllCorrections, Curve: sweep.Curve{{EnergyMeV: 10, StoppingPower: 3e-28}}},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, results); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][1] != "no_corrections" || records[0][2] != "all_corrections" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "10.0" || records[1][2] != "3e-28" {
		t.Errorf("unexpected row %v", records[1])
	}
	if records[2][2] != "" {
		t.Errorf("expected empty cell for short curve, got %q", records[2][2])
	}
}

func TestExportJSON(t *testing.T) {
	results := []sweep.Result{
		{Variant: physics.DensityCorrection, Curve: sweep.Curve{{EnergyMeV: 10, StoppingPower: 2e-28}}},
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, nil, results); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	curve := data.Curves["density_corrections"]
	if len(curve) != 1 || curve[0].StoppingPower != 2e-28 {
		t.Errorf("unexpected curve %+v", curve)
	}
}

func TestSaveMetadataNonFiniteMetrics(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	meta := NewRunMetadata(physics.DefaultParameters(), sweep.DefaultConfig())
	meta.Variants = append(meta.Variants, VariantRecord{
		Variant: physics.AllCorrections.String(),
		File:    CurveFile(physics.AllCorrections),
		Metrics: map[string]float64{
			"min_dedx":          1.5,
			"mean_dedx":         math.NaN(),
			"max_rel_deviation": math.Inf(1),
		},
	})

	if err := st.SaveMetadata(meta); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := map[string]float64{"min_dedx": 1.5}
	if diff := cmp.Diff(want, got.Variants[0].Metrics); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if _, ok := meta.Variants[0].Metrics["mean_dedx"]; !ok {
		t.Error("saving should not modify the in-memory record")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "metadata.json" {
		t.Errorf("expected only metadata.json, got %v", entries)
	}
}

func TestSaveMetadataMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	meta := NewRunMetadata(physics.DefaultParameters(), sweep.DefaultConfig())
	if err := st.SaveMetadata(meta); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCurveFileNames(t *testing.T) {
	want := map[physics.Variant]string{
		physics.NoCorrection:      "fstopping_no_corrections.txt",
		physics.DensityCorrection: "fstopping_density_corrections.txt",
		physics.ShellCorrection:   "fstopping_layer_corrections.txt",
		physics.AllCorrections:    "fstopping_all_corrections.txt",
	}
	for v, name := range want {
		if got := CurveFile(v); got != name {
			t.Errorf("%s: expected %s, got %s", v, name, got)
		}
	}
}

func TestListSkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".metadata-123.json", "fstopping_no_corrections.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "fstopping_no_corrections.txt" {
		t.Errorf("unexpected entries %+v", entries)
	}
}
