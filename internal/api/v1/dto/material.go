package dto

import "time"

// MaterialResponseDTO is returned for course materials
type MaterialResponseDTO struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// MaterialDownloadDTO carries a temporary download link
type MaterialDownloadDTO struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}
