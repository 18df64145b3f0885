package handler

import (
	"net/http"

	"ebdadmin/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	lock *service.LockGate
}

func NewSettingHandler(lock *service.LockGate) *SettingHandler {
	return &SettingHandler{lock: lock}
}

// LockStatus reports the write gate as seen right now; a failed settings
// read reports locked.
func (h *SettingHandler) LockStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locked": h.lock.IsLocked()})
}

type lockRequest struct {
	Allow *bool `json:"allow" binding:"required"`
}

// SetLock stores the admin's toggle of the system-wide write gate.
func (h *SettingHandler) SetLock(c *gin.Context) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "allow required"})
		return
	}
	if err := h.lock.SetAllowed(*req.Allow); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": !*req.Allow})
}
