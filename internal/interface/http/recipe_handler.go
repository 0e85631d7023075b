package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/internal/application"
	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	"github.com/oksasatya/go-recipe-platform/pkg/response"
	"github.com/oksasatya/go-recipe-platform/pkg/validation"
)

type RecipeHandler struct {
	Svc           *application.RecipeService
	Logger        *logrus.Logger
	MaxImageBytes int64
}

func NewRecipeHandler(svc *application.RecipeService, logger *logrus.Logger, maxImageBytes int64) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger, MaxImageBytes: maxImageBytes}
}

// recipeRequest is used for both create and full-replace update; absent fields become empty.
type recipeRequest struct {
	Title        string   `json:"title" binding:"max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	Ingredients  []string `json:"ingredients" binding:"max=200,dive,max=500"`
	Instructions []string `json:"instructions" binding:"max=200,dive,max=2000"`
}

func (r recipeRequest) input() application.RecipeInput {
	return application.RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

type recipeResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toRecipeResponse(r *entity.Recipe) recipeResponse {
	r.Normalize()
	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeList(in []*entity.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(in))
	for _, r := range in {
		out = append(out, toRecipeResponse(r))
	}
	return out
}

func (h *RecipeHandler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, application.ErrRecipeNotFound) {
		response.Error[any](c, http.StatusNotFound, "recipe not found", nil)
		return
	}
	internalError(c, h.Logger, msg, err)
}

// List GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list recipes failed", err)
		return
	}
	response.Success(c, http.StatusOK, toRecipeList(recs), "recipes", nil)
}

// Get GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get recipe failed", err)
		return
	}
	response.Success(c, http.StatusOK, toRecipeResponse(rec), "recipe", nil)
}

// Create POST /recipes (auth required)
func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, "create recipe failed", err)
		return
	}
	response.Success(c, http.StatusCreated, toRecipeResponse(rec), "recipe created successfully", nil)
}

// Update PUT /recipes/:id (auth required)
func (h *RecipeHandler) Update(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, "update recipe failed", err)
		return
	}
	response.Success(c, http.StatusOK, toRecipeResponse(rec), "recipe updated successfully", nil)
}

// Delete DELETE /recipes/:id (auth required)
func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete recipe failed", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "recipe deleted successfully", nil)
}

// UploadImage PUT /recipes/:id/image (auth required, multipart field "image")
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.MaxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxImageBytes+1<<10)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	if h.MaxImageBytes > 0 && fh.Size > h.MaxImageBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !isImage(contentType) {
		response.Error[any](c, http.StatusBadRequest, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		internalError(c, h.Logger, "open upload failed", err)
		return
	}
	defer func() { _ = f.Close() }()

	rec, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), fh.Filename, contentType, f)
	if errors.Is(err, application.ErrImagesUnavailable) {
		internalError(c, h.Logger, "image upload unavailable", err)
		return
	}
	if err != nil {
		h.fail(c, "image upload failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": rec.ImageURL}, "image uploaded", nil)
}

func isImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// Search GET /search/recipes?q=&size=
func (h *RecipeHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	recs, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, "search recipes failed", err)
		return
	}
	response.Success(c, http.StatusOK, toRecipeList(recs), "recipes", map[string]any{"query": c.Query("q")})
}
