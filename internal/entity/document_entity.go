package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID
	Title       string
	Text        string
	SourceLabel string
	Url         string
	Length      int
	IngestedAt  time.Time
}
