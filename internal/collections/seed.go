package collections

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/shared/server/respond"
	"hr-blob-backend/internal/shared/storage/blob"
)

// Seeder provisions the data bucket and seeds an empty array object for
// every collection that does not have one yet. Running it repeatedly is
// safe: existing arrays are reported, never overwritten.
type Seeder struct {
	Blob   blob.Store
	Bucket string
}

// SeedResult reports what the seeder created versus found in place.
type SeedResult struct {
	Container        string   `json:"container"`
	ContainerCreated bool     `json:"container_created"`
	CreatedFiles     []string `json:"created_files"`
	ExistingFiles    []string `json:"existing_files"`
}

// Run ensures the bucket exists and seeds missing collection arrays.
func (s *Seeder) Run(ctx context.Context) (SeedResult, error) {
	created, err := s.Blob.EnsureBucket(ctx, s.Bucket)
	if err != nil {
		return SeedResult{}, fmt.Errorf("ensure bucket %s: %w", s.Bucket, err)
	}

	result := SeedResult{
		Container:        s.Bucket,
		ContainerCreated: created,
		CreatedFiles:     []string{},
		ExistingFiles:    []string{},
	}

	for _, kind := range All {
		key := kind.StorageKey()
		exists, err := s.Blob.Exists(ctx, s.Bucket, key)
		if err != nil {
			return SeedResult{}, fmt.Errorf("check %s: %w", key, err)
		}
		if exists {
			result.ExistingFiles = append(result.ExistingFiles, key)
			continue
		}
		if err := s.Blob.Put(ctx, s.Bucket, key, []byte("[]"), "application/json"); err != nil {
			return SeedResult{}, fmt.Errorf("seed %s: %w", key, err)
		}
		result.CreatedFiles = append(result.CreatedFiles, key)
	}

	return result, nil
}

// RegisterRoutes attaches the bootstrap endpoint to the router group.
func (s *Seeder) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bootstrap", s.handle)
	rg.POST("/bootstrap", s.handle)
}

func (s *Seeder) handle(c *gin.Context) {
	result, err := s.Run(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "store_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
