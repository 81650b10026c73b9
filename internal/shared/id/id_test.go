package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestTypedIDs(t *testing.T) {
	run := NewRunID()
	if !strings.HasPrefix(run.String(), RunPrefix+"_") {
		t.Errorf("run ID should start with %q, got %s", RunPrefix+"_", run)
	}

	job := NewJobID()
	if !strings.HasPrefix(job.String(), JobPrefix+"_") {
		t.Errorf("job ID should start with %q, got %s", JobPrefix+"_", job)
	}

	req := NewRequestID()
	if !strings.HasPrefix(req.String(), RequestPrefix+"_") {
		t.Errorf("request ID should start with %q, got %s", RequestPrefix+"_", req)
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	run := NewRunID()

	ts, err := Timestamp(run.String())
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("timestamp %v out of range", ts)
	}

	if _, err := Timestamp("run_not-a-ulid"); err == nil {
		t.Error("expected parse error")
	}
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 64)
	a := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()

	if a.Entropy()[0] != b.Entropy()[0] {
		t.Error("same entropy source should yield same random component")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.GenerateWithPrefix(RunPrefix)
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique IDs, got %d", n, len(seen))
	}
}
