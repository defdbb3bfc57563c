package dispatch

import (
	"errors"
	"testing"

	"github.com/danmuck/spinesniff/internal/skeleton"
	"github.com/danmuck/spinesniff/internal/testutil/testlog"
)

func TestRegisterResolveAndDuplicate(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	rt := &fakeRuntime{version: skeleton.V4}

	if err := r.Register(rt); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&fakeRuntime{version: skeleton.V4}); !errors.Is(err, ErrRuntimeExists) {
		t.Fatalf("expected ErrRuntimeExists, got %v", err)
	}
	got, ok := r.Resolve(skeleton.V4)
	if !ok || got != Runtime(rt) {
		t.Fatalf("resolve failed: ok=%v", ok)
	}
	if _, ok := r.Resolve(skeleton.V2); ok {
		t.Fatalf("expected missing runtime to return ok=false")
	}
}

func TestRegisterRejectsNilAndInvalidVersions(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrRuntimeNil) {
		t.Fatalf("expected ErrRuntimeNil, got %v", err)
	}
	if err := r.Register(&fakeRuntime{version: skeleton.SchemaVersion(3)}); !errors.Is(err, ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestVersionsSorted(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	_ = r.Register(&fakeRuntime{version: skeleton.V4})
	_ = r.Register(&fakeRuntime{version: skeleton.V2})

	got := r.Versions()
	if len(got) != 2 || got[0] != skeleton.V2 || got[1] != skeleton.V4 {
		t.Fatalf("versions not sorted: %v", got)
	}
}
