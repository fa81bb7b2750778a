package overlay

import (
	"errors"
	"testing"

	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/gfxtest"
)

func TestBind(t *testing.T) {
	rec := gfxtest.NewRecorder()
	sc := gfxtest.NewSwapChain(rec, 1280, 720)

	b, err := Bind(sc)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Resolution != [2]uint32{1280, 720} {
		t.Errorf("Resolution = %v", b.Resolution)
	}
	if b.Identity() != sc.Ptr() {
		t.Errorf("Identity() = %#x, want %#x", b.Identity(), sc.Ptr())
	}
	if b.Window() != 0xc0de {
		t.Errorf("Window() = %#x", b.Window())
	}
	if b.Device.Get() != gfx.Device(sc.Device) || b.Context.Get() != gfx.Context(sc.Device.Context) {
		t.Error("device family does not match the surface")
	}
	for name, own := range map[string]gfx.Ownership{
		"device":     b.Device.Ownership(),
		"context":    b.Context.Ownership(),
		"backbuffer": b.BackBuffer.Ownership(),
		"dxgi":       b.DXGIDevice.Ownership(),
		"adapter":    b.Adapter.Ownership(),
		"surface":    b.Surface.Ownership(),
	} {
		if own != gfx.Borrowed {
			t.Errorf("%s ownership = %v, want borrowed", name, own)
		}
	}
}

func TestBindFailures(t *testing.T) {
	steps := []string{
		"GetDevice",
		"GetImmediateContext",
		"GetBuffer",
		"GetDesc",
		"DXGIDevice",
		"GetAdapter",
		"Surface",
	}
	for i, step := range steps {
		t.Run(step, func(t *testing.T) {
			rec := gfxtest.NewRecorder()
			sc := gfxtest.NewSwapChain(rec, 800, 600)
			rec.Fail(step, nil)

			b, err := Bind(sc)
			if b != nil {
				t.Fatal("Bind() published a partial binding")
			}
			if !errors.Is(err, gfx.ErrResolution) {
				t.Fatalf("Bind() error = %v, want resolution error", err)
			}
			if !errors.Is(err, gfxtest.ErrInjected) {
				t.Fatalf("Bind() error = %v, want the injected cause", err)
			}
			// Steps after the failing one are never attempted.
			for _, later := range steps[i+1:] {
				if n := rec.Count(later + " "); n != 0 {
					t.Errorf("%s called %d times after %s failed", later, n, step)
				}
			}
		})
	}
}

func TestBindNil(t *testing.T) {
	if _, err := Bind(nil); !errors.Is(err, gfx.ErrResolution) {
		t.Fatalf("Bind(nil) error = %v", err)
	}
}
