package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type SettingsHandler struct {
	settings SettingsService
}

func NewSettingsHandler(settings SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type settingsBody struct {
	Enabled                 bool              `json:"enabled"`
	PrimaryTime             string            `json:"primary_time" binding:"required"`
	Timezone                string            `json:"timezone" binding:"required"`
	ActiveDays              []int             `json:"active_days" binding:"required"`
	FollowUpEnabled         bool              `json:"follow_up_enabled"`
	FollowUpIntervalMinutes int               `json:"follow_up_interval_minutes" binding:"required"`
	FollowUpMaxCount        int               `json:"follow_up_max_count"`
	Reminders               []domain.Reminder `json:"reminders"`
	UpdatedAt               *time.Time        `json:"updated_at,omitempty"`
}

type settingsPatchBody struct {
	Enabled                 *bool              `json:"enabled"`
	PrimaryTime             *string            `json:"primary_time"`
	Timezone                *string            `json:"timezone"`
	ActiveDays              *[]int             `json:"active_days"`
	FollowUpEnabled         *bool              `json:"follow_up_enabled"`
	FollowUpIntervalMinutes *int               `json:"follow_up_interval_minutes"`
	FollowUpMaxCount        *int               `json:"follow_up_max_count"`
	Reminders               *[]domain.Reminder `json:"reminders"`
}

func toSettingsBody(s *domain.NotificationSettings) settingsBody {
	body := settingsBody{
		Enabled:                 s.Enabled,
		PrimaryTime:             s.PrimaryTime,
		Timezone:                s.Timezone,
		ActiveDays:              s.ActiveDays,
		FollowUpEnabled:         s.FollowUpEnabled,
		FollowUpIntervalMinutes: s.FollowUpIntervalMinutes,
		FollowUpMaxCount:        s.FollowUpMaxCount,
		Reminders:               s.Reminders,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		body.UpdatedAt = &updatedAt
	}
	if body.ActiveDays == nil {
		body.ActiveDays = []int{}
	}
	if body.Reminders == nil {
		body.Reminders = []domain.Reminder{}
	}
	return body
}

// HandleGet answers stored settings, or the defaults when the user has none.
func (h *SettingsHandler) HandleGet(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondServiceError(c, err, "load notification settings")
		return
	}

	c.JSON(http.StatusOK, toSettingsBody(settings))
}

func (h *SettingsHandler) HandleReplace(c *gin.Context) {
	var body settingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	saved, err := h.settings.Replace(c.Request.Context(), &domain.NotificationSettings{
		UserID:                  c.Param("user_id"),
		Enabled:                 body.Enabled,
		PrimaryTime:             body.PrimaryTime,
		Timezone:                body.Timezone,
		ActiveDays:              body.ActiveDays,
		FollowUpEnabled:         body.FollowUpEnabled,
		FollowUpIntervalMinutes: body.FollowUpIntervalMinutes,
		FollowUpMaxCount:        body.FollowUpMaxCount,
		Reminders:               body.Reminders,
	})
	if err != nil {
		respondServiceError(c, err, "save notification settings")
		return
	}

	c.JSON(http.StatusOK, toSettingsBody(saved))
}

func (h *SettingsHandler) HandlePatch(c *gin.Context) {
	var body settingsPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	saved, err := h.settings.Patch(c.Request.Context(), c.Param("user_id"), domain.SettingsPatch{
		Enabled:                 body.Enabled,
		PrimaryTime:             body.PrimaryTime,
		Timezone:                body.Timezone,
		ActiveDays:              body.ActiveDays,
		FollowUpEnabled:         body.FollowUpEnabled,
		FollowUpIntervalMinutes: body.FollowUpIntervalMinutes,
		FollowUpMaxCount:        body.FollowUpMaxCount,
		Reminders:               body.Reminders,
	})
	if err != nil {
		respondServiceError(c, err, "update notification settings")
		return
	}

	c.JSON(http.StatusOK, toSettingsBody(saved))
}
