package server

import (
	"log"
	"net/http"

	"word-jam/internal/db"
	"word-jam/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	flash := s.sessions.PopFlash(c.Writer, c.Request)
	data, err := s.homeData(userID)
	if err != nil {
		log.Printf("home render failed: %v", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	data.Flash = flash
	templ.Handler(web.Home(data)).ServeHTTP(c.Writer, c.Request)
}

// homeData assembles the full page view-model: the active round with its
// prompt and word list, plus completed rounds with their final prompts and
// generated songs.
func (s *Server) homeData(userID string) (web.HomeData, error) {
	var data web.HomeData

	round, err := s.currentRound()
	if err != nil {
		return data, err
	}
	words, err := s.roundWords(round.ID)
	if err != nil {
		return data, err
	}
	prompt := assemblePrompt(words)
	data.RoundNumber = round.Number
	data.Prompt = prompt
	data.TotalChars = len(prompt)
	data.CharsRemaining = charLimit - len(prompt)
	data.CharLimit = charLimit
	data.Words = wordItems(words, userID)

	data.History, err = s.historyRounds(userID)
	if err != nil {
		return data, err
	}
	return data, nil
}

// historyRounds assembles the completed-round view-models: final prompt,
// words used, generated songs, and the caller's vote flag.
func (s *Server) historyRounds(userID string) ([]web.HistoryRound, error) {
	history, err := s.previousRounds()
	if err != nil {
		return nil, err
	}
	items := make([]web.HistoryRound, 0, len(history))
	for _, prev := range history {
		prevWords, err := s.roundWords(prev.ID)
		if err != nil {
			return nil, err
		}
		item := web.HistoryRound{
			ID:        prev.ID,
			Number:    prev.Number,
			VoteCount: prev.VoteCount,
			Voted:     db.HasVoted(prev.Votes, userID),
			Words:     wordItems(prevWords, userID),
		}
		if len(prevWords) > 0 {
			item.FinalPrompt = assemblePrompt(prevWords)
		}
		for _, song := range prev.Songs {
			item.Songs = append(item.Songs, web.SongItem{
				Lyric:    song.Lyric,
				AudioURL: song.AudioURL,
			})
		}
		items = append(items, item)
	}
	return items, nil
}

func wordItems(words []db.Word, userID string) []web.WordItem {
	items := make([]web.WordItem, 0, len(words))
	for _, word := range words {
		items = append(items, web.WordItem{
			ID:    word.ID,
			Text:  word.Text,
			Votes: len(word.Votes),
			Mine:  word.CreatedBy == userID,
			Voted: db.HasVoted(word.Votes, userID),
		})
	}
	return items
}
