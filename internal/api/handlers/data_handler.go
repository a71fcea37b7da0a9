package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"github.com/profilehub/backend/internal/api/middleware"
	"github.com/profilehub/backend/internal/api/types"
	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/repository"
	"github.com/profilehub/backend/pkg/utils"
)

const (
	maxKeyLen       = 128
	defaultPageSize = 20
	maxPageSize     = 100
)

// DataHandler serves the caller's key/value JSON documents under /user/data.
type DataHandler struct {
	repo repository.UserDataRepository
}

func NewDataHandler(repo repository.UserDataRepository) *DataHandler {
	return &DataHandler{repo: repo}
}

// Routes returns the /user/data router; every route requires requireAuth.
func (h *DataHandler) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requireAuth)
	r.Get("/", middleware.HandleErr(h.List))
	r.Post("/", middleware.HandleErr(h.Create))
	r.Get("/{key}", middleware.HandleErr(h.Get))
	r.Put("/{key}", middleware.HandleErr(h.Put))
	r.Delete("/{key}", middleware.HandleErr(h.Delete))
	return r
}

func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}

	items, total, err := h.repo.ListByUser(r.Context(), middleware.GetUserID(r.Context()), size, (page-1)*size)
	if err != nil {
		return respondErr(w, r, err)
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    &types.Meta{Page: page, PageSize: size, Total: total},
	})
	return nil
}

func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) error {
	key, ok := h.key(w, r)
	if !ok {
		return nil
	}
	var entry models.UserData
	if err := h.repo.GetByKey(r.Context(), middleware.GetUserID(r.Context()), key, &entry); err != nil {
		return respondErr(w, r, err)
	}
	etag := utils.ETag(entry.Value)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: entry})
	return nil
}

func (h *DataHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req types.DataCreateRequest
	if err := bind(r, &req); err != nil {
		return respondErr(w, r, err)
	}
	entry := models.UserData{
		UserID: middleware.GetUserID(r.Context()),
		Key:    req.Key,
		Value:  datatypes.JSON(req.Value),
	}
	if err := h.repo.Create(r.Context(), &entry); err != nil {
		return respondErr(w, r, err)
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: entry})
	return nil
}

// Put stores the whole request body as the value for key.
func (h *DataHandler) Put(w http.ResponseWriter, r *http.Request) error {
	key, ok := h.key(w, r)
	if !ok {
		return nil
	}
	raw := middleware.RawBody(r.Context())
	if raw == nil {
		writeErrorStr(w, r, http.StatusBadRequest, "a JSON body is required")
		return nil
	}
	entry := models.UserData{
		UserID: middleware.GetUserID(r.Context()),
		Key:    key,
		Value:  datatypes.JSON(raw),
	}
	if err := h.repo.Upsert(r.Context(), &entry); err != nil {
		return respondErr(w, r, err)
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: entry})
	return nil
}

func (h *DataHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	key, ok := h.key(w, r)
	if !ok {
		return nil
	}
	if err := h.repo.DeleteByKey(r.Context(), middleware.GetUserID(r.Context()), key); err != nil {
		return respondErr(w, r, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *DataHandler) key(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if key == "" || len(key) > maxKeyLen {
		writeErrorStr(w, r, http.StatusBadRequest, "key must be 1-128 characters")
		return "", false
	}
	return key, true
}
