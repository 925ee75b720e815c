package handlers

import (
	"net/http"
	"time"

	reminderRepo "github.com/See2Code/transport-platform-sub000/database/repository/reminder"
	"github.com/See2Code/transport-platform-sub000/models"
	"github.com/See2Code/transport-platform-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes the producer side of the reminder store: the
// back-office UI writes reminder documents here, the dispatcher only reads
// and finalizes them.
type ReminderHandler struct {
	Repo reminderRepo.ReminderRepository
}

func NewReminderHandler(repo reminderRepo.ReminderRepository) *ReminderHandler {
	return &ReminderHandler{Repo: repo}
}

// CreateReminderHandler handles POST /api/reminders.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var reminder models.Reminder
	if err := c.ShouldBindJSON(&reminder); err != nil {
		logger.Error("Invalid reminder payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := reminder.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder.CreatedAt = time.Now()
	id, err := h.Repo.Create(c.Request.Context(), &reminder)
	if err != nil {
		logger.Error("Failed to create reminder", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListRemindersHandler handles GET /api/reminders?kind=TRANSPORT.
func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	logger := utils.GetLogger()

	kind := models.ReminderKind(c.Query("kind"))
	if kind != models.ReminderKindBusinessCase && kind != models.ReminderKindTransport {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reminder kind"})
		return
	}

	reminders, err := h.Repo.List(c.Request.Context(), kind)
	if err != nil {
		logger.Error("Failed to list reminders", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// DeleteReminderHandler handles DELETE /api/reminders/:id.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete reminder", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// DeleteByParentHandler handles DELETE /api/reminders?kind=...&parentId=...;
// the edit flow uses it to replace a record's reminders wholesale.
func (h *ReminderHandler) DeleteByParentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	kind := models.ReminderKind(c.Query("kind"))
	if kind != models.ReminderKindBusinessCase && kind != models.ReminderKindTransport {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reminder kind"})
		return
	}
	parentID := c.Query("parentId")
	if parentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parentId"})
		return
	}

	deleted, err := h.Repo.DeleteByParent(c.Request.Context(), kind, parentID)
	if err != nil {
		logger.Error("Failed to delete reminders by parent",
			zap.String("kind", string(kind)), zap.String("parentId", parentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
