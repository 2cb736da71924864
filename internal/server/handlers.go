package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crmstock/internal/records"
)

// API holds the HTTP handlers. Routing lives in Routes; main mounts the
// result together with the static file server.
type API struct {
	Store Store
	Auth  *Authenticator
	Log   *slog.Logger
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

// writeError maps domain errors to responses. Store failures get a
// generic message; the real error goes to the log only.
func (a *API) writeError(w http.ResponseWriter, op, generic string, err error) {
	var validation *records.ValidationError
	var notFound *records.NotFoundError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": validation.Message})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"message": notFound.Message})
	case errors.Is(err, records.ErrBadCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": records.ErrBadCredentials.Error()})
	default:
		a.Log.Error("request failed", "op", op, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": generic})
	}
}

// Register attaches the API endpoints to r. The caller may add a static
// file handler afterwards; chi matches these routes before any catch-all.
func (a *API) Register(r chi.Router) {
	r.Post("/customers", a.CreateCustomer)
	r.Get("/customers", a.ListCustomers)
	r.Get("/customers/search", a.SearchCustomers)
	r.Delete("/customers/{id}", a.DeleteCustomer)

	r.Post("/products", a.CreateProduct)
	r.Get("/products", a.ListProducts)
	r.Get("/products/search", a.SearchProducts)
	r.Delete("/products/{id}", a.DeleteProduct)

	r.Post("/login", a.Login)
}

func (a *API) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad body"})
		return
	}
	c, err := records.DecodeCustomer(body)
	if err != nil {
		a.writeError(w, "create customer", "failed to register customer", err)
		return
	}

	id, err := a.Store.AllocateID(r.Context(), Customers)
	if err != nil {
		a.writeError(w, "allocate customer id", "failed to register customer", err)
		return
	}
	if err := a.Store.InsertCustomer(r.Context(), id, c); err != nil {
		a.writeError(w, "insert customer", "failed to register customer", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "message": "customer registered"})
}

func (a *API) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := a.Store.ListCustomers(r.Context(), r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))
	if err != nil {
		a.writeError(w, "list customers", "failed to list customers", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := a.Store.SearchCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.writeError(w, "search customers", "failed to search customers", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return
	}

	changes, err := a.Store.DeleteCustomer(r.Context(), id)
	if err != nil {
		a.writeError(w, "delete customer", "failed to delete customer", err)
		return
	}
	if changes == 0 {
		a.writeError(w, "delete customer", "", records.ErrNotFound("customer not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "customer deleted", "changes": changes})
}

func (a *API) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad body"})
		return
	}
	p, err := records.DecodeProduct(body)
	if err != nil {
		a.writeError(w, "create product", "failed to register product", err)
		return
	}

	id, err := a.Store.AllocateID(r.Context(), Products)
	if err != nil {
		a.writeError(w, "allocate product id", "failed to register product", err)
		return
	}
	if err := a.Store.InsertProduct(r.Context(), id, p); err != nil {
		a.writeError(w, "insert product", "failed to register product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "message": "product registered"})
}

func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := a.Store.ListProducts(r.Context(), r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))
	if err != nil {
		a.writeError(w, "list products", "failed to list products", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) SearchProducts(w http.ResponseWriter, r *http.Request) {
	list, err := a.Store.SearchProductsByCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		a.writeError(w, "search products", "failed to search products", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return
	}

	changes, err := a.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		a.writeError(w, "delete product", "failed to delete product", err)
		return
	}
	if changes == 0 {
		a.writeError(w, "delete product", "", records.ErrNotFound("product not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "product deleted", "changes": changes})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad body"})
		return
	}
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	if err := a.Auth.Verify(r.Context(), req.Username, req.Password); err != nil {
		a.writeError(w, "login", "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "login ok"})
}
