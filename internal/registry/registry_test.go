package registry

import (
	"context"
	"testing"
)

type stubBackend struct{ id string }

func (s stubBackend) ID() string                     { return s.id }
func (s stubBackend) Title() string                  { return "Stub " + s.id }
func (s stubBackend) Run(context.Context, Env) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Backend { return stubBackend{"stub-b"} })
	Register("stub-a", func() Backend { return stubBackend{"stub-a"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Error("Exists() reported the wrong set")
	}

	b, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if b.ID() != "stub-b" {
		t.Errorf("ID() = %q, expected stub-b", b.ID())
	}

	if _, err := Create("stub-missing"); err == nil {
		t.Error("Create() of an unknown backend should fail")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	// Sorted by ID.
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("List() not sorted: %v", ids)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "stub-a" && info.Title == "Stub stub-a" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, missing stub-a", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Backend { return stubBackend{"stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("stub-dup", func() Backend { return stubBackend{"stub-dup"} })
}
