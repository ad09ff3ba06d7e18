package models

/* =============================== Enums ================================== */

// CaseStatus is the machine-readable lifecycle state of a case. Display
// labels live in CaseStatusLabels; the database only ever sees the tags.
type CaseStatus string

const (
	CaseStatusNew      CaseStatus = "new"
	CaseStatusInReview CaseStatus = "in_review"
	CaseStatusInCourt  CaseStatus = "in_court"
	CaseStatusClosed   CaseStatus = "closed"
)

// CaseStatusLabels maps status tags to the Arabic labels the frontend
// displays. Presentation only: filtering and storage use the tags.
var CaseStatusLabels = map[CaseStatus]string{
	CaseStatusNew:      "جديد",
	CaseStatusInReview: "قيد المراجعة",
	CaseStatusInCourt:  "في المحكمة",
	CaseStatusClosed:   "مغلق",
}

// Label returns the display label for s, or the raw tag when unknown.
func (s CaseStatus) Label() string {
	if l, ok := CaseStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// AppointmentStatus defines lifecycle states for an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ConsultationStatus defines lifecycle states for a consultation.
type ConsultationStatus string

const (
	ConsultationPending    ConsultationStatus = "pending"
	ConsultationInProgress ConsultationStatus = "in_progress"
	ConsultationCompleted  ConsultationStatus = "completed"
)

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotificationAppointment NotificationType = "appointment"
	NotificationCase        NotificationType = "case"
	NotificationMessage     NotificationType = "message"
	NotificationGeneral     NotificationType = "general"
)
