package handler

import (
	catalogapp "github.com/zanco/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles product review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterPublicRoutes registers the storefront review routes
func (h *ReviewHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id/reviews", h.ListByProduct)
}

// RegisterProtectedRoutes registers routes requiring a signed-in user
func (h *ReviewHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/reviews", h.Create)
}

// RegisterAdminRoutes registers the review moderation routes
func (h *ReviewHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.List)
	rg.DELETE("/reviews/:id", h.Delete)
}

// ListByProduct returns a product's reviews, newest first
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Create submits the signed-in user's review of a product
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), productID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// List returns reviews across all products (moderation view)
func (h *ReviewHandler) List(c *gin.Context) {
	var filter catalogapp.ListReviewsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reviewService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete removes a review
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
