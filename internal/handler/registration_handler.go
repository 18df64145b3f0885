package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ebdadmin/config"
	"ebdadmin/internal/repository"
	"ebdadmin/internal/service"
	"ebdadmin/pkg/cloudinary"
	"ebdadmin/pkg/dateutil"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RegistrationHandler struct {
	cfg     *config.Config
	regs    *repository.RegistrationRepository
	regSvc  *service.RegistrationService
	classes *repository.ClassRepository
	cloud   cloudinary.Client
}

func NewRegistrationHandler(cfg *config.Config, regs *repository.RegistrationRepository, regSvc *service.RegistrationService, classes *repository.ClassRepository, cloud cloudinary.Client) *RegistrationHandler {
	return &RegistrationHandler{cfg: cfg, regs: regs, regSvc: regSvc, classes: classes, cloud: cloud}
}

func parseDay(c *gin.Context, param string) (time.Time, bool) {
	raw := c.Query(param)
	if raw == "" {
		return dateutil.Day(time.Now()), true
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

// parseAmount treats absent or malformed money input as zero rather than
// failing the submission.
func parseAmount(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (h *RegistrationHandler) List(c *gin.Context) {
	classID, _ := strconv.ParseUint(c.DefaultQuery("class_id", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := h.regs.List(uint(classID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": list})
}

// Active returns the registration already recorded for class/day so the
// form can pre-populate, or null when the form should start blank.
func (h *RegistrationHandler) Active(c *gin.Context) {
	classID, _ := strconv.ParseUint(c.Query("class_id"), 10, 64)
	if classID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_id required"})
		return
	}
	day, ok := parseDay(c, "day")
	if !ok {
		return
	}
	reg := h.regSvc.LoadOrInit(uint(classID), day)
	c.JSON(http.StatusOK, gin.H{"registration": reg})
}

// Submit writes one class/day registration from multipart form data.
// Receipt files arrive under "receipts"; list fields arrive as JSON
// strings to survive multipart encoding.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	classID, _ := strconv.ParseUint(c.PostForm("class_id"), 10, 64)
	day := dateutil.Day(time.Now())
	if raw := c.PostForm("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	var present []string
	if raw := c.PostForm("present_students"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &present); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "present_students must be a JSON array"})
			return
		}
	}
	var kept []string
	if raw := c.PostForm("kept_receipts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &kept); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kept_receipts must be a JSON array"})
			return
		}
	}

	visitors, _ := strconv.Atoi(c.PostForm("visitors"))
	bibles, _ := strconv.Atoi(c.PostForm("bibles"))
	magazines, _ := strconv.Atoi(c.PostForm("magazines"))

	input := service.SubmitInput{
		ClassID:          uint(classID),
		Day:              day,
		PresentStudents:  present,
		Visitors:         visitors,
		Bibles:           bibles,
		Magazines:        magazines,
		OfferingCash:     parseAmount(c.PostForm("offering_cash")),
		OfferingPix:      parseAmount(c.PostForm("offering_pix")),
		Hymn:             c.PostForm("hymn"),
		KeptReceiptPaths: kept,
		EditID:           c.PostForm("edit_id"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["receipts"] {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read receipt file"})
				return
			}
			defer f.Close()
			input.Receipts = append(input.Receipts, service.ReceiptFile{Name: fh.Filename, Reader: f})
		}
	}

	reg, err := h.regSvc.Submit(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSystemLocked):
			c.JSON(http.StatusLocked, gin.H{"error": "registrations are currently locked"})
		case errors.Is(err, service.ErrClassRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "class selection required"})
		case errors.Is(err, service.ErrUploadFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "receipt upload failed, nothing was saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		}
		return
	}
	status := http.StatusCreated
	if input.EditID != "" {
		status = http.StatusOK
	}
	c.JSON(status, reg)
}

// Delete removes a registration and best-effort removes its receipts.
// Orphaned files never block the row deletion.
func (h *RegistrationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	reg, err := h.regs.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}
	if err := h.regs.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.cloud.Remove(c.Request.Context(), []string(reg.PixReceiptPaths))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Receipts returns time-limited signed URLs for a registration's stored
// receipt files.
func (h *RegistrationHandler) Receipts(c *gin.Context) {
	reg, err := h.regs.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}
	urls := make([]gin.H, 0, len(reg.PixReceiptPaths))
	for _, p := range reg.PixReceiptPaths {
		u, err := h.cloud.SignedURL(p, h.cfg.Cloudinary.SignTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign receipt url"})
			return
		}
		urls = append(urls, gin.H{"path": p, "url": u})
	}
	c.JSON(http.StatusOK, gin.H{"receipts": urls})
}

// TodayStatus reports which classes already registered today. "Today" is
// the clock-offset business day, not the UTC day the other queries use.
func (h *RegistrationHandler) TodayStatus(c *gin.Context) {
	day := dateutil.BusinessDay(time.Now(), h.cfg.Business.TodayOffset)
	ids, err := h.regs.RegisteredClassIDs(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status failed"})
		return
	}
	classes, err := h.classes.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status failed"})
		return
	}
	registered := make(map[uint]bool, len(ids))
	for _, id := range ids {
		registered[id] = true
	}
	out := make([]gin.H, 0, len(classes))
	for _, class := range classes {
		out = append(out, gin.H{
			"class_id":   class.ID,
			"class_name": class.Name,
			"registered": registered[class.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"day": day.Format("2006-01-02"), "classes": out})
}
