package http

import (
	"bytes"
	"log"
	"net/http"

	"GalleryStudio/internal/gallery"
)

// Home рендерит главную страницу с избранными проектами
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	projects, err := h.svc.Projects.List(r.Context(), true)
	if err != nil {
		log.Printf("home: failed to list projects: %v", err)
		http.Error(w, "failed to load projects", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Pages.RenderHome(&buf, projects); err != nil {
		log.Printf("home: render failed: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// Gallery рендерит страницу галереи: ?cat=&q=&sort=
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.List(r.Context(), false)
	if err != nil {
		log.Printf("gallery: failed to list projects: %v", err)
		http.Error(w, "failed to load projects", http.StatusInternalServerError)
		return
	}
	qs := r.URL.Query()
	q := gallery.ParseQuery(qs.Get("cat"), qs.Get("q"), qs.Get("sort"))
	var buf bytes.Buffer
	if err := h.svc.Pages.RenderGallery(&buf, projects, q); err != nil {
		log.Printf("gallery: render failed: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
