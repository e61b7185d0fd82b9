package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	Text        string    `gorm:"type:text;not null"`
	SourceLabel string    `gorm:"type:text"`
	Url         string    `gorm:"type:text"`
	Length      int       `gorm:"default:0"`
	IngestedAt  time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
