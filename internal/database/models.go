// Package database хранит журнал прогонов UI-тестов в PostgreSQL через GORM.
package database

import "time"

// Статусы прогона.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Run: запись об одном выполненном тесте.
type Run struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"type:text;not null" json:"name"`
	Status         string        `gorm:"type:varchar(16);not null" json:"status"`
	PageTitle      string        `gorm:"type:text" json:"page_title,omitempty"` // Заголовок страницы в момент падения
	ScreenshotPath string        `gorm:"type:text" json:"screenshot_path,omitempty"`
	Error          string        `gorm:"type:text" json:"error,omitempty"`
	StartedAt      time.Time     `gorm:"not null" json:"started_at"`
	FinishedAt     time.Time     `gorm:"not null" json:"finished_at"`
	Duration       time.Duration `gorm:"not null" json:"duration"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}
