package webpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-shatter/internal/assets"
	"go-shatter/internal/defs"
)

// Server отдаёт размеченную страницу и её изображения.
type Server struct {
	page   *defs.PageDefinition
	doc    []byte
	images *assets.ImageManager
	router *chi.Mux
	http   *http.Server
	addr   string
}

// NewServer готовит документ и маршруты. Изображения, которых нет на
// диске, отдаются процедурными заглушками.
func NewServer(page *defs.PageDefinition, images *assets.ImageManager) (*Server, error) {
	doc, err := Render(page)
	if err != nil {
		return nil, err
	}
	s := &Server{page: page, doc: doc, images: images}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/img/{file}", s.handleImage)
	s.router = r
	return s, nil
}

// Handler — маршрутизатор, например для httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start слушает addr (":0" — любой свободный порт) в фоне.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("webpage: listen %s: %w", addr, err)
	}
	s.addr = "http://" + ln.Addr().String()
	s.http = &http.Server{Handler: s.router}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[WebPage] serve: %v", err)
		}
	}()
	log.Printf("[WebPage] Serving page %q at %s", s.page.ID, s.addr)
	return s.addr, nil
}

// URL — адрес запущенного сервера.
func (s *Server) URL() string {
	return s.addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.doc)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(chi.URLParam(r, "file"), ".png")
	var def *defs.ImageDefinition
	for i := range s.page.Images {
		if s.page.Images[i].ID == id {
			def = &s.page.Images[i]
			break
		}
	}
	if def == nil {
		http.NotFound(w, r)
		return
	}
	img, ok := s.images.Image(id)
	if !ok {
		img = assets.Placeholder(def.Slug, int(def.Width), int(def.Height))
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
