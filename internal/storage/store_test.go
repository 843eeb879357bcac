package storage

import (
	"context"
	"testing"

	"github.com/san-kum/orrery/internal/nbody"
	"github.com/san-kum/orrery/internal/sim"
)

func makeResult(t *testing.T) *sim.Result {
	t.Helper()

	runner := sim.New()
	result, err := runner.Run(context.Background(), nbody.New(), sim.Config{
		Dt:          0.01,
		Steps:       20,
		SampleEvery: 5,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := makeResult(t)

	runID, err := st.Save(0.01, 20, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Steps != 20 || meta.Dt != 0.01 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if len(meta.Bodies) != 5 || meta.Bodies[0] != "sun" {
		t.Errorf("unexpected body names: %v", meta.Bodies)
	}
	if meta.InitialEnergy != result.InitialEnergy {
		t.Errorf("initial energy mismatch: %v vs %v", meta.InitialEnergy, result.InitialEnergy)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != len(result.Frames) {
		t.Errorf("expected %d rows, got %d", len(result.Frames), len(states))
	}
	if len(times) != len(states) {
		t.Errorf("times/states length mismatch: %d vs %d", len(times), len(states))
	}
	// energy column + 3 position columns per body
	if len(states[0]) != 1+3*5 {
		t.Errorf("expected 16 columns, got %d", len(states[0]))
	}

	columns, err := st.Columns(runID)
	if err != nil {
		t.Fatalf("columns failed: %v", err)
	}
	if len(columns) != 16 || columns[0] != "energy" || columns[1] != "sun_x" {
		t.Errorf("unexpected columns: %v", columns)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(0.01, 20, makeResult(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir should not fail: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
