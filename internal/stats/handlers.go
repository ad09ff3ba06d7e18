package stats

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Overview is the dashboard aggregate. Field names match what the admin
// frontend consumes.
type Overview struct {
	TotalCases           int64                `json:"totalCases"`
	TotalClients         int64                `json:"totalClients"`
	TotalAppointments    int64                `json:"totalAppointments"`
	PendingAppointments  int64                `json:"pendingAppointments"`
	TotalConsultations   int64                `json:"totalConsultations"`
	PendingConsultations int64                `json:"pendingConsultations"`
	ActiveCases          int64                `json:"activeCases"`
	CasesByType          []TypeCount          `json:"casesByType"`
	AppointmentsByMonth  []MonthCount         `json:"appointmentsByMonth"`
	RecentAppointments   []models.Appointment `json:"recentAppointments"`
}

// Get godoc
// @Summary      Dashboard statistics
// @Tags         stats
// @Produce      json
// @Success      200  {object}  Overview
// @Failure      500  {object}  models.ErrorResponse
// @Router       /stats [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	var out Overview

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&out.TotalCases, h.db.Model(&models.Case{})},
		{&out.TotalClients, h.db.Model(&models.Client{})},
		{&out.TotalAppointments, h.db.Model(&models.Appointment{})},
		{&out.PendingAppointments, h.db.Model(&models.Appointment{}).Where("status = ?", models.AppointmentPending)},
		{&out.TotalConsultations, h.db.Model(&models.Consultation{})},
		{&out.PendingConsultations, h.db.Model(&models.Consultation{}).Where("status = ?", models.ConsultationPending)},
		{&out.ActiveCases, h.db.Model(&models.Case{}).Where("status <> ?", models.CaseStatusClosed)},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dest).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load stats"})
		}
	}

	out.CasesByType = []TypeCount{}
	if err := h.db.Model(&models.Case{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&out.CasesByType).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load stats"})
	}

	byMonth, err := h.appointmentsByMonth()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load stats"})
	}
	out.AppointmentsByMonth = byMonth

	out.RecentAppointments = []models.Appointment{}
	if err := h.db.Order("created_at DESC").Limit(5).Find(&out.RecentAppointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load stats"})
	}

	return c.JSON(out)
}

// appointmentsByMonth buckets the last six months of appointment dates by
// year-month, ascending. Grouping happens in Go so the query stays
// identical across SQLite and Postgres.
func (h *Handler) appointmentsByMonth() ([]MonthCount, error) {
	cutoff := time.Now().AddDate(0, -6, 0).Format("2006-01-02")

	var dates []string
	if err := h.db.Model(&models.Appointment{}).
		Where("date >= ?", cutoff).
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}

	byMonth := map[string]int64{}
	for _, d := range dates {
		if len(d) < 7 {
			continue
		}
		byMonth[d[:7]]++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthCount, 0, len(months))
	for _, m := range months {
		out = append(out, MonthCount{Month: m, Count: byMonth[m]})
	}
	return out, nil
}
