package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoundActive    = "active"
	RoundCompleted = "completed"
)

// Vote is an embedded vote entry on a word or a round. Vote lists are
// append-only and ordered by timestamp.
type Vote struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Song is one of the generated outputs attached to a completed round.
type Song struct {
	Lyric    string `json:"lyric"`
	AudioURL string `json:"audio_url"`
}

type Round struct {
	ID         uint                      `gorm:"primaryKey"`
	Number     int                       `gorm:"not null;index"`
	Status     string                    `gorm:"size:32;not null;index"`
	TotalChars int                       `gorm:"not null"`
	Votes      datatypes.JSONSlice[Vote] `gorm:"type:jsonb"`
	Songs      datatypes.JSONSlice[Song] `gorm:"type:jsonb"`
	CreatedAt  time.Time                 `gorm:"not null"`
	UpdatedAt  time.Time                 `gorm:"not null"`
	Words      []Word
}

type Word struct {
	ID        uint                      `gorm:"primaryKey"`
	RoundID   uint                      `gorm:"index;not null"`
	Text      string                    `gorm:"column:word;size:64;not null"`
	Votes     datatypes.JSONSlice[Vote] `gorm:"type:jsonb"`
	CreatedBy string                    `gorm:"size:64;not null"`
	CreatedAt time.Time                 `gorm:"not null"`
	UpdatedAt time.Time                 `gorm:"not null"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null"`
	Flash     string    `gorm:"size:280"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// HasVoted reports whether userID already appears in the vote list.
func HasVoted(votes []Vote, userID string) bool {
	for _, vote := range votes {
		if vote.UserID == userID {
			return true
		}
	}
	return false
}
