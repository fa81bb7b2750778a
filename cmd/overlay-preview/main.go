// Command overlay-preview composes the overlay onto desktop screenshots with
// the software device and streams the result as MJPEG.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kirides/d3doverlay/internal/config"
	"github.com/kirides/d3doverlay/internal/hud"
	"github.com/kirides/d3doverlay/internal/logging"
	"github.com/kirides/d3doverlay/internal/preview"
	"github.com/kirides/d3doverlay/internal/soft"
	"github.com/kirides/d3doverlay/overlay"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	cmd := &cobra.Command{
		Use:           "overlay-preview",
		Short:         "Stream the overlay composed onto the desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./overlay.yaml)")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

// source yields host frames: the configured display, or a test pattern
// when no display can be captured.
type source struct {
	display int
	size    image.Point
	log     logrus.FieldLogger
	blank   *image.RGBA
}

func newSource(cfg *config.Config, log logrus.FieldLogger) *source {
	s := &source{display: cfg.Display, size: image.Pt(cfg.Width, cfg.Height), log: log}
	if n := screenshot.NumActiveDisplays(); cfg.Display >= n {
		log.WithFields(logrus.Fields{"display": cfg.Display, "displays": n}).Warn("display not available, using a test pattern")
		s.display = -1
	}
	return s
}

// bounds is the current size of the source.
func (s *source) bounds() image.Rectangle {
	if s.display >= 0 {
		return screenshot.GetDisplayBounds(s.display)
	}
	return image.Rectangle{Max: s.size}
}

func (s *source) capture(bounds image.Rectangle) image.Image {
	if s.display >= 0 {
		img, err := screenshot.CaptureRect(bounds)
		if err == nil {
			return img
		}
		s.log.WithError(err).Warn("capture failed, using a test pattern")
		s.display = -1
		bounds = image.Rectangle{Max: s.size}
	}
	if s.blank == nil || s.blank.Rect.Size() != bounds.Size() {
		s.blank = image.NewRGBA(image.Rectangle{Max: bounds.Size()})
		draw.Draw(s.blank, s.blank.Rect, image.NewUniform(color.RGBA{0x20, 0x24, 0x30, 0xff}), image.Point{}, draw.Src)
	}
	return s.blank
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	src := newSource(cfg, log)
	bounds := src.bounds()

	sc, err := soft.NewSwapChain(uint32(bounds.Dx()), uint32(bounds.Dy()), 0)
	if err != nil {
		return err
	}
	defer func() { sc.Release() }()

	lc, err := overlay.New(sc, soft.Compiler{}, overlay.WithLogger(log))
	if err != nil {
		return err
	}
	defer lc.Close()

	style := hud.DefaultStyle()
	style.Background = cfg.BackgroundColor()
	style.Thickness = cfg.Thickness

	g, ctx := errgroup.WithContext(ctx)
	var srv *preview.Server
	if cfg.Listen != "" {
		srv = preview.NewServer(preview.NewEncoder(cfg.Quality, cfg.PreviewWidth), time.Second/time.Duration(cfg.FPS), log)
		g.Go(func() error { return srv.ListenAndServe(ctx, cfg.Listen) })
	}

	g.Go(func() error {
		limiter := rate.NewLimiter(rate.Limit(cfg.FPS), 1)
		for frame := 0; ; frame++ {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}

			if b := src.bounds(); b.Size() != bounds.Size() {
				log.WithFields(logrus.Fields{"width": b.Dx(), "height": b.Dy()}).Info("display resized, recreating surface")
				next, err := resize(lc, sc, b.Size())
				if err != nil {
					return err
				}
				sc, bounds = next, b
			}
			sc.SetHostFrame(src.capture(bounds))

			if err := lc.Frame(sc, func(r *overlay.Renderer) { hud.Draw(r, style, frame) }); err != nil {
				log.WithError(err).Warn("overlay skipped")
			}
			if err := sc.Present(); err != nil {
				return err
			}
			if srv != nil {
				if err := srv.Publish(sc.Frame()); err != nil {
					log.WithError(err).Debug("failed to publish frame")
				}
			}
		}
	})
	return g.Wait()
}

// resize replaces sc with a surface of the given size. The lifecycle lets go
// of everything tied to sc first.
func resize(lc *overlay.Lifecycle, sc *soft.SwapChain, size image.Point) (*soft.SwapChain, error) {
	lc.Release()
	return sc.Recreate(uint32(size.X), uint32(size.Y))
}
