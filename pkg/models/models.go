package models

import (
	"time"
)

/* =============================== Entities =============================== */

// Client is a person the office represents. CasesCount and
// AppointmentsCount are denormalized counters maintained by the case and
// appointment services.
type Client struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	CIN               string    `gorm:"column:cin" json:"cin"`
	CasesCount        int       `gorm:"not null;default:0" json:"cases_count"`
	AppointmentsCount int       `gorm:"not null;default:0" json:"appointments_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// Case is a court case. It owns its timeline entries and files; both are
// loaded on demand, never with the list view.
type Case struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	CaseNumber  string     `gorm:"uniqueIndex;not null" json:"case_number"`
	ClientID    string     `gorm:"index" json:"client_id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Status      CaseStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
	Tribunal    string     `json:"tribunal"`
	Description string     `json:"description"`
	NextSession *string    `gorm:"type:varchar(10)" json:"next_session"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TimelineEntry is one dated event in a case's history.
type TimelineEntry struct {
	ID          string `gorm:"primaryKey" json:"id"`
	CaseID      string `gorm:"index;not null" json:"case_id"`
	Date        string `gorm:"type:varchar(10);not null" json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TableName keeps the table name the frontend's API contract assumes.
func (TimelineEntry) TableName() string { return "case_timeline" }

// CaseFile is the metadata row for an uploaded artifact. The stored file
// and this row are created and destroyed together.
type CaseFile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	CaseID       string    `gorm:"index;not null" json:"case_id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// Appointment holds a booked visit. ClientName is a denormalized copy so
// the list view renders without a join.
type Appointment struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	ClientID   string            `gorm:"index" json:"client_id"`
	ClientName string            `json:"client_name"`
	Service    string            `json:"service"`
	Date       string            `gorm:"type:varchar(10)" json:"date"`
	Time       string            `gorm:"type:varchar(5)" json:"time"`
	Status     AppointmentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Notes      string            `json:"notes"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Consultation is a written question from a (possibly unregistered)
// visitor, answered via Reply.
type Consultation struct {
	ID          string             `gorm:"primaryKey" json:"id"`
	ClientName  string             `json:"client_name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Status      ConsultationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reply       string             `json:"reply"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Service is an entry in the office's service catalog.
type Service struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a dashboard notice.
type Notification struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);default:'general'" json:"type"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&Client{}, &Case{}, &TimelineEntry{}, &CaseFile{},
		&Appointment{}, &Consultation{}, &Service{}, &Notification{},
	}
}
