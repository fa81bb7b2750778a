package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kirides/d3doverlay/d3d"
	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/config"
	"github.com/kirides/d3doverlay/internal/hud"
	"github.com/kirides/d3doverlay/internal/preview"
	"github.com/kirides/d3doverlay/overlay"
	"github.com/kirides/d3doverlay/vtable"
	"github.com/kirides/d3doverlay/win"
)

// host plays the application that owns the swap chain: it creates the
// device family, keeps its own render target bound and clears it every
// frame.
type host struct {
	window *win.Window
	sc     *d3d.SwapChain
	ctx    gfx.Context
	rtv    gfx.Handle[gfx.RenderTargetView]
	width  int
	height int
}

func newHost(window *win.Window) (*host, error) {
	w, h, err := window.ClientSize()
	if err != nil {
		return nil, err
	}
	sc, err := d3d.CreateDeviceAndSwapChain(window.Handle(), uint32(w), uint32(h))
	if err != nil {
		return nil, err
	}
	hst := &host{window: window, sc: sc, width: w, height: h}
	if err := hst.bindTarget(); err != nil {
		sc.Release()
		return nil, err
	}
	return hst, nil
}

func (h *host) bindTarget() error {
	dev, err := h.sc.GetDevice()
	if err != nil {
		return err
	}
	h.ctx, err = dev.GetImmediateContext()
	if err != nil {
		return err
	}
	bb, err := h.sc.GetBuffer(0)
	if err != nil {
		return err
	}
	rtv, err := dev.CreateRenderTargetView(bb)
	if err != nil {
		return err
	}
	h.rtv = gfx.Own(rtv)
	h.ctx.OMSetRenderTargets(rtv, nil)
	return nil
}

func (h *host) frame() { h.ctx.ClearRenderTargetView(h.rtv.Get(), gfx.RGBA(0x18, 0x1c, 0x28, 0xff)) }

// resized reports whether the window's client area changed since the swap
// chain was created.
func (h *host) resized() bool {
	w, hh, err := h.window.ClientSize()
	return err == nil && w > 0 && hh > 0 && (w != h.width || hh != h.height)
}

func (h *host) release() {
	if h.ctx != nil {
		h.ctx.OMSetRenderTargets(nil, nil)
	}
	h.rtv.Release()
	h.sc.Release()
}

func logDispatchTables(log logrus.FieldLogger, sc *d3d.SwapChain) error {
	dev, err := sc.GetDevice()
	if err != nil {
		return err
	}
	ctx, err := dev.GetImmediateContext()
	if err != nil {
		return err
	}
	table, err := vtable.Snapshot(sc, dev, ctx)
	if err != nil {
		return err
	}
	defer table.Free()
	factory, err := vtable.Factory(sc)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"table":         fmt.Sprintf("%#x", table.Base()),
		"slots":         table.Len(),
		"present":       fmt.Sprintf("%#x", table.SwapChain()[vtable.SwapChainPresent]),
		"resizeBuffers": fmt.Sprintf("%#x", table.SwapChain()[vtable.SwapChainResizeBuffers]),
		"createBuffer":  fmt.Sprintf("%#x", table.Device()[vtable.DeviceCreateBuffer]),
		"drawIndexed":   fmt.Sprintf("%#x", table.Context()[vtable.ContextDrawIndexed]),
		"omSetTargets":  fmt.Sprintf("%#x", table.Context()[vtable.ContextOMSetTargets]),
		"factory":       fmt.Sprintf("%#x", factory),
		"featureLevel":  fmt.Sprintf("%#x", sc.FeatureLevel()),
	}).Info("dispatch tables")
	return nil
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Windows and the D3D11 immediate context belong to this thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := win.EnablePerMonitorDPI(); err != nil {
		log.WithError(err).Debug("per monitor DPI awareness unavailable")
	}
	window, err := win.CreateWindow("d3doverlay", cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer window.Destroy()

	hst, err := newHost(window)
	if err != nil {
		return err
	}
	defer func() {
		if hst != nil {
			hst.release()
		}
	}()

	if err := logDispatchTables(log, hst.sc); err != nil {
		log.WithError(err).Warn("failed to read dispatch tables")
	}

	lc, err := overlay.New(hst.sc, d3d.Compiler{}, overlay.WithLogger(log), overlay.WithWindowSizer(win.Sizer{}))
	if err != nil {
		log.WithError(err).Warn("overlay not bound")
	}
	defer lc.Close()

	var srv *preview.Server
	if cfg.Listen != "" {
		srv = preview.NewServer(preview.NewEncoder(cfg.Quality, cfg.PreviewWidth), time.Second/time.Duration(cfg.FPS), log)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				log.WithError(err).Error("preview server stopped")
			}
		}()
	}
	var (
		reader *d3d.BackBufferReader
		shot   *image.RGBA
	)
	defer func() {
		if reader != nil {
			reader.Release()
		}
	}()

	style := hud.DefaultStyle()
	style.Background = cfg.BackgroundColor()
	style.Thickness = cfg.Thickness

	limiter := rate.NewLimiter(rate.Limit(cfg.FPS), 1)
	for frame := 0; ; frame++ {
		if err := window.PumpMessages(); errors.Is(err, win.ErrQuit) {
			return nil
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}

		if hst.resized() {
			// Like a host switching modes: a new swap chain on a new device.
			// The overlay notices the new identity on its next Update.
			log.Info("window resized, recreating swap chain")
			if hst, err = recreate(lc, hst, &reader); err != nil {
				return err
			}
		}

		hst.frame()
		if err := lc.Frame(hst.sc, func(r *overlay.Renderer) { hud.Draw(r, style, frame) }); err != nil {
			log.WithError(err).Debug("overlay skipped")
		}

		if srv != nil {
			if reader == nil {
				if reader, err = d3d.NewBackBufferReader(hst.sc); err != nil {
					return err
				}
			}
			// DISCARD swap chains lose the back-buffer on Present.
			if shot, err = reader.GetImage(shot); err == nil {
				if err := srv.Publish(shot); err != nil {
					log.WithError(err).Debug("failed to publish frame")
				}
			}
		}

		if err := hst.sc.Present(1); err != nil {
			if !d3d.IsDeviceLost(err) {
				return err
			}
			log.WithError(err).Warn("device lost, recreating")
			if hst, err = recreate(lc, hst, &reader); err != nil {
				return err
			}
		}
	}
}

// recreate drops everything tied to the host's swap chain and builds a new
// one for the same window.
func recreate(lc *overlay.Lifecycle, hst *host, reader **d3d.BackBufferReader) (*host, error) {
	lc.Release()
	if *reader != nil {
		(*reader).Release()
		*reader = nil
	}
	hst.release()
	return newHost(hst.window)
}
