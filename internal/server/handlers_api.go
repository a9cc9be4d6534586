package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type addWordRequest struct {
	Word string `json:"word" binding:"required,word"`
}

func (s *Server) handleAddWord(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	var req addWordRequest
	if !bindJSON(c, &req, bindMessages{
		"Word": {
			"required": "word is required",
			"word":     "word must be a single plain word of 64 characters or fewer",
		},
	}, "invalid request") {
		return
	}
	word, err := validateWord(req.Word)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	round, err := s.currentRound()
	if err != nil {
		log.Printf("add word: load round failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	ok, message, err := s.addWord(word, userID, round)
	if errors.Is(err, errPromptConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "the prompt changed while adding your word, please retry"})
		return
	}
	if err != nil {
		log.Printf("add word failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": message})
		return
	}
	s.sessions.SetFlash(c.Writer, c.Request, "Added: "+word)
	c.JSON(http.StatusCreated, gin.H{
		"word":        word,
		"message":     message,
		"total_chars": round.TotalChars,
	})
}

func (s *Server) handleWordVote(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	wordID, ok := parseID(c.Param("wordID"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	if err := s.voteForWord(wordID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Printf("word vote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRoundVote(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	roundID, ok := parseID(c.Param("roundID"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	voted, err := s.voteForRound(roundID, userID)
	if err != nil {
		log.Printf("round vote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted})
}

func (s *Server) handleCurrentRound(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	round, err := s.currentRound()
	if err != nil {
		log.Printf("current round failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	words, err := s.roundWords(round.ID)
	if err != nil {
		log.Printf("current round words failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	prompt := assemblePrompt(words)
	c.JSON(http.StatusOK, gin.H{
		"round_id":        round.ID,
		"round_number":    round.Number,
		"status":          round.Status,
		"prompt":          prompt,
		"total_chars":     len(prompt),
		"chars_remaining": charLimit - len(prompt),
		"words":           wordItems(words, userID),
	})
}

func (s *Server) handlePreviousRounds(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	rounds, err := s.historyRounds(userID)
	if err != nil {
		log.Printf("previous rounds failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func parseID(raw string) (uint, bool) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
