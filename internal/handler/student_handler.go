package handler

import (
	"net/http"
	"strconv"

	"ebdadmin/internal/models"
	"ebdadmin/internal/repository"
	"ebdadmin/internal/service"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	repo       *repository.StudentRepository
	attendance *service.AttendanceService
}

func NewStudentHandler(repo *repository.StudentRepository, attendance *service.AttendanceService) *StudentHandler {
	return &StudentHandler{repo: repo, attendance: attendance}
}

func (h *StudentHandler) List(c *gin.Context) {
	classID, _ := strconv.ParseUint(c.DefaultQuery("class_id", "0"), 10, 64)
	activeOnly := c.DefaultQuery("active", "") == "true"
	list, err := h.repo.List(uint(classID), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": list})
}

type studentRequest struct {
	Name      string `json:"name" binding:"required"`
	ClassID   uint   `json:"class_id" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and class_id required"})
		return
	}
	s := &models.Student{
		Name:      req.Name,
		ClassID:   req.ClassID,
		Active:    true,
		Address:   req.Address,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
	}
	if err := h.repo.Create(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	s, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and class_id required"})
		return
	}
	s.Name = req.Name
	s.ClassID = req.ClassID
	s.Address = req.Address
	s.Phone = req.Phone
	s.BirthDate = req.BirthDate
	if err := h.repo.Update(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive flips enrollment. Deactivated students drop out of enrollment
// counts but keep their history.
func (h *StudentHandler) SetActive(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active required"})
		return
	}
	if err := h.repo.SetActive(uint(id), *req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// History reconstructs the student's recent presence from their class's
// registrations.
func (h *StudentHandler) History(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	history, err := h.attendance.History(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, history)
}
