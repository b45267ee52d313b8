package collections

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/shared/server/respond"
)

// Handler serves the CRUD routes for one collection kind.
type Handler struct {
	Store *Store
	Kind  Kind
}

// NewHandler constructs a Handler.
func NewHandler(store *Store, kind Kind) *Handler {
	return &Handler{Store: store, Kind: kind}
}

// RegisterRoutes attaches the collection's routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	base := "/" + h.Kind.Name
	rg.GET(base, h.list)
	rg.POST(base, h.create)
	rg.GET(base+"/:id", h.get)
	rg.PUT(base+"/:id", h.update)
	rg.DELETE(base+"/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Store.List(c.Request.Context(), h.Kind)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, records)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Store.Get(c.Request.Context(), h.Kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", h.Kind.Label+" not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}

func (h *Handler) create(c *gin.Context) {
	var draft map[string]any
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "Invalid JSON body", nil)
		return
	}

	rec, err := h.Store.Insert(c.Request.Context(), h.Kind, draft)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.Created(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "Invalid JSON body", nil)
		return
	}

	rec, err := h.Store.Update(c.Request.Context(), h.Kind, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", h.Kind.Label+" not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}

func (h *Handler) remove(c *gin.Context) {
	removed, err := h.Store.Delete(c.Request.Context(), h.Kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", h.Kind.Label+" not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"message": h.Kind.Label + " deleted",
		"item":    removed,
	})
}
