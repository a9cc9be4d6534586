package server

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"

	"word-jam/internal/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type completeRoundRequest struct {
	Songs []songPayload `json:"songs" binding:"required,len=2,dive"`
}

type songPayload struct {
	Lyric    string `json:"lyric"`
	AudioURL string `json:"audio_url" binding:"omitempty,url"`
}

// handleCompleteRound is the write surface for the external song generator:
// it marks a round completed and attaches the two generated songs.
func (s *Server) handleCompleteRound(c *gin.Context) {
	if !s.authenticateAdmin(c) {
		return
	}
	roundID, ok := parseID(c.Param("roundID"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	var req completeRoundRequest
	if !bindJSON(c, &req, bindMessages{
		"Songs": {
			"required": "songs are required",
			"len":      "exactly two songs are required",
		},
	}, "invalid request") {
		return
	}
	songs := make([]db.Song, 0, len(req.Songs))
	for _, song := range req.Songs {
		songs = append(songs, db.Song{
			Lyric:    song.Lyric,
			AudioURL: song.AudioURL,
		})
	}
	err := s.completeRound(roundID, songs)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
	case errors.Is(err, errRoundNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "round is not active"})
	case err != nil:
		log.Printf("complete round failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"round_id": roundID,
			"status":   db.RoundCompleted,
		})
	}
}

func (s *Server) authenticateAdmin(c *gin.Context) bool {
	token := s.cfg.AdminToken
	if token == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin API is disabled"})
		return false
	}
	provided := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
	if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
		return false
	}
	return true
}
