package server

import (
	"net/http"

	"word-jam/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db       *gorm.DB
	cfg      config.Config
	sessions *sessionStore
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	registerValidators()
	return &Server{
		db:       conn,
		cfg:      cfg,
		sessions: newSessionStore(conn),
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/", s.handleHome)
	router.GET("/api/rounds/current", s.handleCurrentRound)
	router.GET("/api/rounds/previous", s.handlePreviousRounds)
	router.POST("/api/words", s.handleAddWord)
	router.POST("/api/words/:wordID/vote", s.handleWordVote)
	router.POST("/api/rounds/:roundID/vote", s.handleRoundVote)
	router.POST("/api/admin/rounds/:roundID/complete", s.handleCompleteRound)
	router.Static("/static", "static")

	return router
}
