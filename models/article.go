package models

import (
	"time"
)

// Article is a published piece listed on the home page. Its body lives on
// disk as {Filename}.html; the row only carries metadata.
type Article struct {
	Filename    string    `gorm:"primaryKey;size:255" json:"filename"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
	PublishDate time.Time `gorm:"column:publish_date;index" json:"publish_date"`
}

func (Article) TableName() string {
	return "articles"
}
