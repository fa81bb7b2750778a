// Package preview streams composited frames as MJPEG over HTTP.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/mattn/go-mjpeg"
	"github.com/sirupsen/logrus"
)

var watchPage = template.Must(template.New("watch").Parse(`<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.}}</title>
</head>
<body style="margin:0">
	<img src="/mjpeg" style="max-width: 100vw; max-height: 100vh;object-fit: contain;display: block;margin: 0 auto;" />
</body>`))

// Server publishes the latest frame to every connected viewer.
type Server struct {
	Title string

	log    logrus.FieldLogger
	stream *mjpeg.Stream
	mux    *http.ServeMux

	mu  sync.Mutex
	enc *Encoder
}

// NewServer returns a server that pushes a frame to viewers every interval.
func NewServer(enc *Encoder, interval time.Duration, log logrus.FieldLogger) *Server {
	s := &Server{
		Title:  "Overlay preview",
		log:    log,
		stream: mjpeg.NewStreamWithInterval(interval),
		mux:    http.NewServeMux(),
		enc:    enc,
	}
	s.mux.HandleFunc("/watch", s.watch)
	s.mux.Handle("/mjpeg", s.stream)
	s.mux.Handle("/", http.RedirectHandler("/watch", http.StatusFound))
	return s
}

func (s *Server) watch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := watchPage.Execute(w, s.Title); err != nil {
		s.log.WithError(err).Debug("failed to write watch page")
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Publish encodes img and makes it the current frame.
func (s *Server) Publish(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.enc.Encode(img)
	if err != nil {
		return err
	}
	// The stream keeps the slice for its viewers, the encoder reuses it.
	if err := s.stream.Update(bytes.Clone(b)); err != nil {
		return fmt.Errorf("failed to update stream. %w", err)
	}
	return nil
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.stream.Close()
		srv.Shutdown(shutdown)
	}()
	s.log.WithField("addr", addr).Info("serving preview on /watch")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve preview. %w", err)
	}
	return nil
}

func (s *Server) Close() error { return s.stream.Close() }
