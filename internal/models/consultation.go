package models

import "time"

// Consultation запись о предсказании ML-сервиса для пользователя.
type Consultation struct {
	ID        int64          `json:"id,string"`
	UserID    int64          `json:"user_id,string"`
	Username  string         `json:"username"`
	Symptoms  map[string]int `json:"symptoms"`
	Disease   string         `json:"disease"`
	CreatedAt time.Time      `json:"created_at"`
}
