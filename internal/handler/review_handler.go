package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/kudagama/job-portal/internal/model"
	"github.com/kudagama/job-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review related requests
type ReviewHandler struct {
	service service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrRevieweeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrReviewNotAllowed) || errors.Is(err, service.ErrDuplicateReview) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error creating review: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReviewsForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	reviews, err := h.service.GetReviewsForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting reviews for user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// RegisterReviewRoutes registers review routes
func (h *ReviewHandler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reviewRoutes := rg.Group("/reviews")
	{
		reviewRoutes.POST("", authMW, h.CreateReview)
		reviewRoutes.GET("/user/:userId", h.GetReviewsForUser)
	}
}
