package server

import (
	"errors"
	"sort"
	"strings"

	"word-jam/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	basePrompt = "Create a cool rap song with the following words that must be in it: "
	charLimit  = 200
)

const wordRejectedMessage = "Adding this word would exceed the character limit"

var errPromptConflict = errors.New("prompt changed while adding the word")

// promptLength is the on-screen length of the full prompt: the base prompt
// followed by the words joined with single spaces. The base prompt already
// ends with its separator, so no space is inserted before the first word.
func promptLength(texts []string) int {
	if len(texts) == 0 {
		return len(basePrompt)
	}
	return len(basePrompt + strings.Join(texts, " "))
}

// addWord inserts text into the round when the full prompt stays within the
// character ceiling. The round's cached total only advances while it still
// matches the value read, so two concurrent adds cannot jointly overshoot;
// the loser rolls back and gets errPromptConflict.
func (s *Server) addWord(text, userID string, round *db.Round) (bool, string, error) {
	words, err := s.roundWords(round.ID)
	if err != nil {
		return false, "", err
	}
	texts := append(wordTexts(words), text)
	total := promptLength(texts)
	if total > charLimit {
		return false, wordRejectedMessage, nil
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		record := db.Word{
			RoundID:   round.ID,
			Text:      text,
			Votes:     datatypes.JSONSlice[db.Vote]{},
			CreatedBy: userID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		result := tx.Model(&db.Round{}).
			Where("id = ? AND total_chars = ?", round.ID, round.TotalChars).
			Update("total_chars", total)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errPromptConflict
		}
		return nil
	})
	if err != nil {
		return false, "", err
	}
	round.TotalChars = total
	return true, "Word added successfully", nil
}

// roundWords returns the round's words most voted first, with ties kept in
// insertion order.
func (s *Server) roundWords(roundID uint) ([]db.Word, error) {
	var words []db.Word
	if err := s.db.Where("round_id = ?", roundID).Order("id asc").Find(&words).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i].Votes) > len(words[j].Votes)
	})
	return words, nil
}

func wordTexts(words []db.Word) []string {
	texts := make([]string, 0, len(words))
	for _, word := range words {
		texts = append(texts, word.Text)
	}
	return texts
}
