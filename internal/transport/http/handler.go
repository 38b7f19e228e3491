package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"GalleryStudio/internal/cart"
	"GalleryStudio/internal/gallery"
	"GalleryStudio/internal/model"
	"GalleryStudio/internal/repository"
	"GalleryStudio/internal/service"
	"GalleryStudio/pkg/storage"
)

// ProjectsService чтение и администрирование проектов
type ProjectsService interface {
	List(ctx context.Context, featuredOnly bool) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, req service.ProjectRequest) (*model.Project, error)
	Update(ctx context.Context, req service.ProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

// ContactService приём сообщений формы обратной связи
type ContactService interface {
	Submit(ctx context.Context, req service.ContactRequest, remoteIP string) (*model.ContactMessage, error)
}

// Importer импорт репозиториев GitHub
type Importer interface {
	Import(ctx context.Context, req service.ImportRequest) (*model.Project, error)
}

// Uploader выдача подписанных ссылок на загрузку
type Uploader interface {
	IssueUploadURL(ctx context.Context, filename string) (*storage.SignedUpload, error)
}

// CartService корзины посетителей
type CartService interface {
	Load(ctx context.Context, session string) (*cart.Cart, error)
	Add(ctx context.Context, session string, item cart.Item) (*cart.Cart, error)
	Remove(ctx context.Context, session string, index int) (*cart.Cart, error)
	Clear(ctx context.Context, session string) error
}

// PageRenderer серверный рендеринг страниц витрины
type PageRenderer interface {
	RenderHome(w io.Writer, list []model.Project) error
	RenderGallery(w io.Writer, list []model.Project, q gallery.Query) error
}

// ReadyCheck проверка зависимости для /readyz
type ReadyCheck func(ctx context.Context) error

// Services зависимости HTTP-слоя; Uploader, Cart и Pages могут отсутствовать
type Services struct {
	Projects ProjectsService
	Contact  ContactService
	Importer Importer
	Uploader Uploader
	Cart     CartService
	Pages    PageRenderer
	AdminKey string
	Checks   []ReadyCheck
}

// Handler реализует HTTP-эндпоинты API и страниц
type Handler struct {
	svc Services
}

// NewHandler создаёт новый HTTP Handler
func NewHandler(s Services) *Handler {
	return &Handler{svc: s}
}

// RegisterRoutes регистрирует маршруты. Методы API разбираются внутри обработчиков,
// чтобы admin-эндпоинты проверяли ключ до ответа 405
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/readyz", h.Readyz).Methods("GET")

	r.HandleFunc("/api/projects", h.ListProjects)
	r.HandleFunc("/api/contact", h.Contact)

	admin := AdminAuth(h.svc.AdminKey)
	r.Handle("/api/admin-project", admin(http.HandlerFunc(h.AdminProject)))
	r.Handle("/api/import-github", admin(http.HandlerFunc(h.ImportGitHub)))
	r.Handle("/api/upload-url", admin(http.HandlerFunc(h.UploadURL)))

	r.HandleFunc("/api/cart", h.Cart)
	r.HandleFunc("/api/cart/{index:[0-9]+}", h.RemoveCartItem)

	r.HandleFunc("/", h.Home).Methods("GET")
	r.HandleFunc("/gallery", h.Gallery).Methods("GET")
}

// envelope общий формат ответа {ok, ...}
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["ok"] = true
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"ok": false, "error": msg})
}

// writeServiceError сопоставляет ошибку со статусом; сообщение передаётся как есть
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotHuman), errors.Is(err, cart.ErrNoSession):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, cart.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "Unsupported method")
}

// decodeBody читает JSON; пустое тело допускается и оставляет значения по умолчанию
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Healthz возвращает статус работы сервиса
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Readyz проверяет зависимости (Postgres, Redis)
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.svc.Checks {
		if err := check(r.Context()); err != nil {
			log.Printf("readiness check failed: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// ListProjects обрабатывает GET /api/projects[?featured=1]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	featured := r.URL.Query().Get("featured")
	projects, err := h.svc.Projects.List(r.Context(), featured == "1" || featured == "true")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, envelope{"projects": projects})
}

// AdminProject обрабатывает /api/admin-project: GET список или один проект,
// POST создание, PUT/PATCH обновление, DELETE удаление
func (h *Handler) AdminProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		if id := r.URL.Query().Get("id"); id != "" {
			p, err := h.svc.Projects.Get(ctx, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeOK(w, envelope{"project": p})
			return
		}
		projects, err := h.svc.Projects.List(ctx, false)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeOK(w, envelope{"projects": projects})
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		var req service.ProjectRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var p *model.Project
		var err error
		if r.Method == http.MethodPost {
			p, err = h.svc.Projects.Create(ctx, req)
		} else {
			if req.ID == "" {
				req.ID = r.URL.Query().Get("id")
			}
			p, err = h.svc.Projects.Update(ctx, req)
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeOK(w, envelope{"project": p})
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			var req struct {
				ID string `json:"id"`
			}
			if err := decodeBody(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			id = req.ID
		}
		if err := h.svc.Projects.Delete(ctx, id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeOK(w, nil)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// Contact обрабатывает POST /api/contact
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req service.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	msg, err := h.svc.Contact.Submit(r.Context(), req, clientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, envelope{"id": msg.ID})
}

// ImportGitHub обрабатывает POST /api/import-github
func (h *Handler) ImportGitHub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req service.ImportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Importer.Import(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, envelope{"project": p})
}

// UploadURL обрабатывает POST /api/upload-url
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if h.svc.Uploader == nil {
		writeError(w, http.StatusInternalServerError, "storage is not configured")
		return
	}
	var req struct {
		Filename string `json:"filename"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	up, err := h.svc.Uploader.IssueUploadURL(r.Context(), req.Filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, envelope{"path": up.Path, "token": up.Token, "signedUrl": up.SignedURL, "publicUrl": up.PublicURL})
}
