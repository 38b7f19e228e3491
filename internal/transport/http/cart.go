package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"GalleryStudio/internal/cart"
)

// CartSessionHeader заголовок с идентификатором корзины
const CartSessionHeader = "X-Cart-Session"

// cartSession берёт идентификатор из заголовка или выдаёт новый
func cartSession(w http.ResponseWriter, r *http.Request) string {
	session := r.Header.Get(CartSessionHeader)
	if session == "" {
		session = cart.NewSessionID()
	}
	w.Header().Set(CartSessionHeader, session)
	return session
}

func writeCart(w http.ResponseWriter, c *cart.Cart) {
	writeOK(w, envelope{"items": c.Items, "count": c.Count()})
}

// Cart обрабатывает /api/cart: GET содержимое, POST добавление, DELETE очистка
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	if h.svc.Cart == nil {
		writeError(w, http.StatusInternalServerError, "cart is not configured")
		return
	}
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		c, err := h.svc.Cart.Load(ctx, cartSession(w, r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeCart(w, c)
	case http.MethodPost:
		var item cart.Item
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c, err := h.svc.Cart.Add(ctx, cartSession(w, r), item)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeCart(w, c)
	case http.MethodDelete:
		if err := h.svc.Cart.Clear(ctx, cartSession(w, r)); err != nil {
			writeServiceError(w, err)
			return
		}
		writeCart(w, &cart.Cart{Items: []cart.Item{}})
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// RemoveCartItem обрабатывает DELETE /api/cart/{index}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	if h.svc.Cart == nil {
		writeError(w, http.StatusInternalServerError, "cart is not configured")
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}
	c, err := h.svc.Cart.Remove(r.Context(), cartSession(w, r), index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCart(w, c)
}
