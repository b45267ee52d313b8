package documents

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/collections"
	"hr-blob-backend/internal/shared/server/respond"
	"hr-blob-backend/internal/shared/storage/blob"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the documents service. Create is the
// multipart dual-write path; the remaining routes are plain collection CRUD
// against the metadata records.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents", h.upload)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/download", h.download)
	rg.PUT("/documents/:id", h.update)
	rg.DELETE("/documents/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	fields := make(map[string]string)
	if form, err := c.MultipartForm(); err == nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	}

	rec, err := h.Svc.Upload(c.Request.Context(), UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Fields:      fields,
	})
	if err != nil {
		var vErr *collections.ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}

	respond.Created(c, rec)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.Collections.List(c.Request.Context(), collections.Documents)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, records)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Collections.Get(c.Request.Context(), collections.Documents, c.Param("id"))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}

func (h *Handler) download(c *gin.Context) {
	data, mimeType, fileName, err := h.Svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, collections.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		case errors.Is(err, blob.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document payload not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		}
		return
	}

	if fileName != "" {
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	}
	c.Data(http.StatusOK, mimeType, data)
}

func (h *Handler) update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "Invalid JSON body", nil)
		return
	}

	rec, err := h.Svc.Collections.Update(c.Request.Context(), collections.Documents, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}

// remove deletes the metadata record only. The stored payload is left in
// the asset bucket; see Service for the orphaning trade-off.
func (h *Handler) remove(c *gin.Context) {
	removed, err := h.Svc.Collections.Delete(c.Request.Context(), collections.Documents, c.Param("id"))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"message": "Document deleted",
		"item":    removed,
	})
}
