package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/services"
	"github.com/shashiranjanraj/omikunle/pkg/bind"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
	"github.com/shashiranjanraj/omikunle/pkg/response"
	"github.com/shashiranjanraj/omikunle/pkg/router"
	"github.com/shashiranjanraj/omikunle/pkg/storage"
)

// maxGalleryUpload bounds the multipart form size for gallery uploads.
const maxGalleryUpload = 20 << 20 // 20 MB

type ProductController struct {
	products *services.ProductService
	storage  *storage.Manager
}

func NewProductController(products *services.ProductService, storage *storage.Manager) *ProductController {
	return &ProductController{products: products, storage: storage}
}

// List returns the catalog, optionally filtered by ?categories=id1,id2.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	var categoryIDs []primitive.ObjectID
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(part))
			if err != nil {
				response.Fail(w, http.StatusBadRequest, "invalid category filter")
				return
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	details, err := c.products.List(r.Context(), categoryIDs)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, details)
}

// Get returns one product with its category resolved.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	detail, err := c.products.Get(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if detail == nil {
		response.NotFound(w, "product not found!")
		return
	}
	response.Success(w, detail)
}

// Create adds a product to the catalog.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ProductInput
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			response.Fail(w, http.StatusBadRequest, "Invalid Category")
			return
		}
		response.FailErr(w, err)
		return
	}
	response.Created(w, product)
}

// Update replaces a product's fields.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	var req services.ProductInput
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			response.Fail(w, http.StatusBadRequest, "Invalid Category")
			return
		}
		response.FailErr(w, err)
		return
	}
	if product == nil {
		response.NotFound(w, "product not found!")
		return
	}
	response.Success(w, product)
}

// Delete removes a product from the catalog.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	deleted, err := c.products.Delete(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if !deleted {
		response.NotFound(w, "product not found!")
		return
	}
	response.OK(w, "the product is deleted!")
}

// Count reports the catalog size.
func (c *ProductController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := c.products.Count(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, map[string]int64{"productCount": count})
}

// Featured returns up to {count} featured products.
func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.ParseInt(router.Param(r, "count"), 10, 64)
	if err != nil || limit < 0 {
		limit = 0
	}

	products, err := c.products.Featured(r.Context(), limit)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, products)
}

// UploadGallery stores uploaded image files on the configured disk and points
// the product's gallery at their public URLs.
func (c *ProductController) UploadGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxGalleryUpload); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Fail(w, http.StatusBadRequest, "no image files in request")
		return
	}

	disk := c.storage.Disk()
	urls := make([]string, 0, len(files))
	for i, header := range files {
		f, err := header.Open()
		if err != nil {
			response.FailErr(w, err)
			return
		}

		path := galleryPath(id, i, header.Filename)
		err = disk.PutStream(path, f)
		f.Close()
		if err != nil {
			logger.WithCtx(r.Context()).Error("gallery upload failed", "path", path, "error", err)
			response.FailErr(w, err)
			return
		}
		urls = append(urls, disk.URL(path))
	}

	product, err := c.products.UpdateImages(r.Context(), id, urls)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if product == nil {
		response.NotFound(w, "product not found!")
		return
	}
	response.Success(w, product)
}

func galleryPath(id primitive.ObjectID, n int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("products/%s/%d-%d%s", id.Hex(), time.Now().UnixNano(), n, ext)
}
