package server

import (
	"errors"
	"time"

	"word-jam/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock on engines that support it. sqlite has no
// FOR UPDATE syntax and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// voteForWord appends the user's vote to the word unless they already voted.
// Repeat calls are silent no-ops. The read-check-append runs under a row
// lock so concurrent votes by different users cannot overwrite each other.
func (s *Server) voteForWord(wordID uint, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var word db.Word
		if err := lockForUpdate(tx).First(&word, wordID).Error; err != nil {
			return err
		}
		if db.HasVoted(word.Votes, userID) {
			return nil
		}
		votes := append([]db.Vote(word.Votes), db.Vote{
			UserID:    userID,
			Timestamp: time.Now().UTC(),
		})
		return tx.Model(&db.Word{}).
			Where("id = ?", word.ID).
			Update("votes", datatypes.JSONSlice[db.Vote](votes)).Error
	})
}

// voteForRound records a vote for a completed round's generated songs. It
// reports true only when a new vote was recorded: missing round, round
// without songs, or an earlier vote by the same user all yield false.
func (s *Server) voteForRound(roundID uint, userID string) (bool, error) {
	voted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var round db.Round
		if err := lockForUpdate(tx).First(&round, roundID).Error; err != nil {
			return err
		}
		if len(round.Songs) == 0 {
			return nil
		}
		if db.HasVoted(round.Votes, userID) {
			return nil
		}
		votes := append([]db.Vote(round.Votes), db.Vote{
			UserID:    userID,
			Timestamp: time.Now().UTC(),
		})
		if err := tx.Model(&db.Round{}).
			Where("id = ?", round.ID).
			Update("votes", datatypes.JSONSlice[db.Vote](votes)).Error; err != nil {
			return err
		}
		voted = true
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return voted, nil
}
