package backend

import (
	"testing"

	"github.com/gogpu/shapebatch"
)

// fakeBackend is a Backend used to exercise the registry without importing
// the backend packages, which import this one.
type fakeBackend struct {
	name string
	err  error
}

func (b *fakeBackend) Name() string {
	return b.name
}

func (b *fakeBackend) NewDevice(width, height int) (shapebatch.Device, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &fakeDevice{vp: shapebatch.Viewport{Width: width, Height: height}}, nil
}

type fakeDevice struct {
	shapebatch.Device
	vp shapebatch.Viewport
}

func (d *fakeDevice) Viewport() shapebatch.Viewport {
	return d.vp
}

// withRegistered registers factories for the duration of the test.
func withRegistered(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		Register(name, func() Backend { return &fakeBackend{name: name} })
	}
	t.Cleanup(func() {
		for _, name := range names {
			Unregister(name)
		}
	})
}
