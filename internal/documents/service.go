package documents

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"hr-blob-backend/internal/collections"
	"hr-blob-backend/internal/shared/metrics"
	"hr-blob-backend/internal/shared/storage/blob"
	"hr-blob-backend/internal/shared/telemetry"
	"hr-blob-backend/internal/shared/util"
)

// Service coordinates the two writes behind a document: the binary payload
// in the asset bucket, then the metadata record in the documents collection.
// The order is fixed. A failed upload leaves the collection untouched; a
// failed metadata write after a successful upload leaves the asset orphaned
// in storage, which is logged and surfaced but never rolled back.
type Service struct {
	Collections *collections.Store
	Assets      blob.Store
	Bucket      string
}

// UploadInput carries the file payload and the metadata form fields of a
// document create request.
type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
	Fields      map[string]string
}

// Upload stores the payload and appends the metadata record, returning it.
func (s *Service) Upload(ctx context.Context, in UploadInput) (collections.Record, error) {
	var missing []string
	if len(in.Data) == 0 {
		missing = append(missing, "file")
	}
	title := strings.TrimSpace(in.Fields["title"])
	employeeID := strings.TrimSpace(in.Fields["employee_id"])
	if title == "" {
		missing = append(missing, "title")
	}
	if employeeID == "" {
		missing = append(missing, "employee_id")
	}
	if len(missing) > 0 {
		return nil, &collections.ValidationError{Missing: missing}
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = "upload"
	}
	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		safeName = "upload"
	}
	ownerKey, err := util.SanitizeFileName(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee_id %q", employeeID)
	}

	docID := uuid.NewString()
	assetKey := ownerKey + "/" + docID + path.Ext(safeName)

	contentType := in.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(safeName))
	}
	if contentType == "" {
		contentType = http.DetectContentType(in.Data)
	}

	if err := s.Assets.Put(ctx, s.Bucket, assetKey, in.Data, contentType); err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}

	draft := make(map[string]any, len(in.Fields)+6)
	for k, v := range in.Fields {
		draft[k] = v
	}
	draft["employee_id"] = employeeID
	draft["file_name"] = fileName
	draft["file_size"] = len(in.Data)
	draft["mime_type"] = contentType
	draft["blob_name"] = assetKey
	draft["blob_url"] = s.Assets.URL(s.Bucket, assetKey)

	rec, err := s.Collections.InsertWithID(ctx, collections.Documents, docID, draft)
	if err != nil {
		// The payload is already in storage with no record referencing
		// it. Leave it; a reconciliation sweep can collect unreferenced
		// assets later.
		telemetry.Error("documents.orphaned_asset", map[string]any{
			"bucket": s.Bucket,
			"key":    assetKey,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("record metadata: %w", err)
	}

	metrics.IncDocumentUploaded()
	metrics.ObserveUploadSizeBytes(float64(len(in.Data)))
	return rec, nil
}

// Download returns the stored payload of a document along with its mime
// type and original file name.
func (s *Service) Download(ctx context.Context, id string) ([]byte, string, string, error) {
	rec, err := s.Collections.Get(ctx, collections.Documents, id)
	if err != nil {
		return nil, "", "", err
	}

	assetKey, _ := rec["blob_name"].(string)
	if assetKey == "" {
		return nil, "", "", collections.ErrNotFound
	}

	data, err := s.Assets.Get(ctx, s.Bucket, assetKey)
	if err != nil {
		return nil, "", "", fmt.Errorf("fetch asset %s: %w", assetKey, err)
	}

	mimeType, _ := rec["mime_type"].(string)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	fileName, _ := rec["file_name"].(string)

	return data, mimeType, fileName, nil
}
