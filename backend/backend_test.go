package backend

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	withRegistered(t, "alpha")

	if !IsRegistered("alpha") {
		t.Fatal("alpha should be registered")
	}
	b := Get("alpha")
	if b == nil {
		t.Fatal("Get(alpha) returned nil")
	}
	if b.Name() != "alpha" {
		t.Errorf("Name() = %q, want %q", b.Name(), "alpha")
	}
	if !slices.Contains(Available(), "alpha") {
		t.Errorf("Available() = %v, missing alpha", Available())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	if b := Get("does-not-exist"); b != nil {
		t.Errorf("Get(unknown) = %v, want nil", b)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	Register("temp", func() Backend { return &fakeBackend{name: "temp"} })
	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("temp should be unregistered")
	}
}

func TestRegistry_AvailableSorted(t *testing.T) {
	withRegistered(t, "zeta", "beta", "gamma")
	names := Available()
	if !slices.IsSorted(names) {
		t.Errorf("Available() = %v, want sorted", names)
	}
}

func TestRegistry_DefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
	}{
		{"software wins", []string{NameRecorder, NameWGPU, NameSoftware}, NameSoftware},
		{"wgpu over recorder", []string{NameRecorder, NameWGPU}, NameWGPU},
		{"recorder only", []string{NameRecorder}, NameRecorder},
		{"unlisted fallback", []string{"custom"}, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistered(t, tt.registered...)
			if got := DefaultName(); got != tt.want {
				t.Errorf("DefaultName() = %q, want %q", got, tt.want)
			}
			if b := Default(); b == nil || b.Name() != tt.want {
				t.Errorf("Default() = %v, want %q", b, tt.want)
			}
		})
	}
}

func TestNewDevice(t *testing.T) {
	withRegistered(t, "alpha")

	dev, err := NewDevice("alpha", 64, 32)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	if vp := dev.Viewport(); vp.Width != 64 || vp.Height != 32 {
		t.Errorf("Viewport() = %+v, want 64x32", vp)
	}
}

func TestNewDevice_Errors(t *testing.T) {
	boom := errors.New("boom")
	Register("broken", func() Backend { return &fakeBackend{name: "broken", err: boom} })
	t.Cleanup(func() { Unregister("broken") })

	tests := []struct {
		name    string
		backend string
		w, h    int
		want    error
	}{
		{"unknown", "does-not-exist", 10, 10, ErrBackendNotAvailable},
		{"zero width", "broken", 0, 10, ErrInvalidSize},
		{"negative height", "broken", 10, -1, ErrInvalidSize},
		{"factory error", "broken", 10, 10, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDevice(tt.backend, tt.w, tt.h)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewDevice() error = %v, want %v", err, tt.want)
			}
		})
	}
}
