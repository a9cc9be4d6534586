package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"word-jam/internal/config"
	"word-jam/internal/db"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDBSeq atomic.Int64

// openTestDB opens a fresh named in-memory sqlite database. The shared cache
// keeps every pooled connection on the same database; the unique name keeps
// tests isolated from each other.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:wordjam_test_%d?mode=memory&cache=shared&_pragma=busy_timeout(10000)", testDBSeq.Add(1))
	conn, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&db.Round{}, &db.Word{}, &db.Session{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return conn
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(openTestDB(t), config.Default())
}

func seedRound(t *testing.T, conn *gorm.DB, number int, status string, votes int) *db.Round {
	t.Helper()
	voteList := make([]db.Vote, 0, votes)
	for i := 0; i < votes; i++ {
		voteList = append(voteList, db.Vote{
			UserID:    fmt.Sprintf("user-%d-%d", number, i),
			Timestamp: time.Now().UTC(),
		})
	}
	round := db.Round{
		Number:     number,
		Status:     status,
		TotalChars: len(basePrompt),
		Votes:      datatypes.JSONSlice[db.Vote](voteList),
	}
	if err := conn.Create(&round).Error; err != nil {
		t.Fatalf("seed round: %v", err)
	}
	return &round
}

func seedWord(t *testing.T, conn *gorm.DB, roundID uint, text string, votes int) *db.Word {
	t.Helper()
	voteList := make([]db.Vote, 0, votes)
	for i := 0; i < votes; i++ {
		voteList = append(voteList, db.Vote{
			UserID:    fmt.Sprintf("voter-%s-%d", text, i),
			Timestamp: time.Now().UTC(),
		})
	}
	word := db.Word{
		RoundID:   roundID,
		Text:      text,
		Votes:     datatypes.JSONSlice[db.Vote](voteList),
		CreatedBy: "seed-user",
	}
	if err := conn.Create(&word).Error; err != nil {
		t.Fatalf("seed word: %v", err)
	}
	return &word
}

func attachSongs(t *testing.T, conn *gorm.DB, roundID uint) {
	t.Helper()
	songs := datatypes.JSONSlice[db.Song]{
		{Lyric: "verse one", AudioURL: "https://cdn.example.com/one.mp3"},
		{Lyric: "verse two", AudioURL: "https://cdn.example.com/two.mp3"},
	}
	if err := conn.Model(&db.Round{}).Where("id = ?", roundID).Update("songs", songs).Error; err != nil {
		t.Fatalf("attach songs: %v", err)
	}
}

// testClient keeps cookies between requests so a caller acts as one session.
func testClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func doRequest(t *testing.T, client *http.Client, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func newHandlerTest(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}
