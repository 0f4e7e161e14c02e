package models

// Testimonial отзыв пользователя о сервисе.
type Testimonial struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// TestimonialSummary агрегированная статистика по отзывам.
type TestimonialSummary struct {
	AverageRating      float64     `json:"averageRating"`
	TotalReviews       int         `json:"totalReviews"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// TestimonialList список отзывов со статистикой, кешируется целиком.
type TestimonialList struct {
	Testimonials []Testimonial     `json:"testimonials"`
	Summary      TestimonialSummary `json:"summary"`
}
