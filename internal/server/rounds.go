package server

import (
	"errors"
	"sort"
	"strings"

	"word-jam/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errRoundNotActive = errors.New("round is not active")

// currentRound returns the single active round, creating one when none
// exists. A new round is numbered count+1 and starts with the bare base
// prompt length.
func (s *Server) currentRound() (*db.Round, error) {
	var round db.Round
	err := s.db.Where("status = ?", db.RoundActive).First(&round).Error
	if err == nil {
		return &round, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&db.Round{}).Count(&count).Error; err != nil {
		return nil, err
	}
	round = db.Round{
		Number:     int(count) + 1,
		Status:     db.RoundActive,
		TotalChars: len(basePrompt),
	}
	if err := s.db.Create(&round).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

type completedRound struct {
	db.Round
	VoteCount int
}

// previousRounds lists completed rounds, most voted first, more recent
// rounds breaking ties.
func (s *Server) previousRounds() ([]completedRound, error) {
	var rounds []db.Round
	if err := s.db.Where("status = ?", db.RoundCompleted).Find(&rounds).Error; err != nil {
		return nil, err
	}
	list := make([]completedRound, 0, len(rounds))
	for _, round := range rounds {
		list = append(list, completedRound{Round: round, VoteCount: len(round.Votes)})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].VoteCount != list[j].VoteCount {
			return list[i].VoteCount > list[j].VoteCount
		}
		return list[i].Number > list[j].Number
	})
	return list, nil
}

// currentPrompt renders the round's full prompt text.
func (s *Server) currentPrompt(round *db.Round) (string, error) {
	words, err := s.roundWords(round.ID)
	if err != nil {
		return "", err
	}
	return assemblePrompt(words), nil
}

func assemblePrompt(words []db.Word) string {
	if len(words) == 0 {
		return basePrompt
	}
	return basePrompt + strings.Join(wordTexts(words), " ")
}

// completeRound is the hand-off from the external song generator: it marks
// an active round completed and stores the generated song pair. Votes on the
// round only start accumulating afterwards.
func (s *Server) completeRound(roundID uint, songs []db.Song) error {
	var round db.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		return err
	}
	result := s.db.Model(&db.Round{}).
		Where("id = ? AND status = ?", roundID, db.RoundActive).
		Updates(map[string]any{
			"status": db.RoundCompleted,
			"songs":  datatypes.JSONSlice[db.Song](songs),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errRoundNotActive
	}
	return nil
}
