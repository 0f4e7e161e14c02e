package models

import "time"

// Уровни срочности заявки к врачу.
const (
	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

// DoctorRequest заявка на консультацию врача.
type DoctorRequest struct {
	RequestID     string    `json:"requestId"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Symptoms      string    `json:"symptoms"`
	PreferredDate string    `json:"preferredDate"`
	PreferredTime string    `json:"preferredTime"`
	Urgency       string    `json:"urgency"`
	Specialty     string    `json:"specialty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DoctorRequestNotification сообщение в очередь рассылки о новой заявке.
type DoctorRequestNotification struct {
	RequestID             string `json:"request_id"`
	FullName              string `json:"full_name"`
	Email                 string `json:"email"`
	Urgency               string `json:"urgency"`
	EstimatedResponseTime string `json:"estimated_response_time"`
}
