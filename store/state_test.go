package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestStateClientRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traytime.state")

	c, err := NewStateClient(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loaded, err := c.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if loaded != nil {
		t.Errorf("Expected no snapshot in a fresh store, but got: %q", loaded)
	}

	snapshot := []byte(`{"is_out":true}`)

	err = c.Save(snapshot)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loaded, err = c.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !bytes.Equal(loaded, snapshot) {
		t.Errorf("Expected snapshot to be: %q, but got: %q", snapshot, loaded)
	}

	err = c.Close()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The snapshot survives a reopen.
	c, err = NewStateClient(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defer c.Close()

	loaded, err = c.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !bytes.Equal(loaded, snapshot) {
		t.Errorf("Expected snapshot to be: %q, but got: %q", snapshot, loaded)
	}
}

func TestStateClientSingleInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traytime.state")

	c, err := NewStateClient(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defer c.Close()

	_, err = NewStateClient(path)
	if err == nil {
		t.Fatal("Expected opening a second instance to fail")
	}
}
