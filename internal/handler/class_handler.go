package handler

import (
	"net/http"
	"strconv"

	"ebdadmin/internal/models"
	"ebdadmin/internal/repository"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	repo *repository.ClassRepository
}

func NewClassHandler(repo *repository.ClassRepository) *ClassHandler {
	return &ClassHandler{repo: repo}
}

func (h *ClassHandler) List(c *gin.Context) {
	list, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": list})
}

type classRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	class := &models.Class{Name: req.Name}
	if err := h.repo.Create(class); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	class, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	class.Name = req.Name
	if err := h.repo.Update(class); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, class)
}
