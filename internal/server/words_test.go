package server

import (
	"errors"
	"strings"
	"testing"

	"word-jam/internal/db"
)

func TestPromptLengthEmpty(t *testing.T) {
	if got := promptLength(nil); got != len(basePrompt) {
		t.Fatalf("expected %d, got %d", len(basePrompt), got)
	}
}

func TestPromptLengthJoinsWithSingleSpaces(t *testing.T) {
	got := promptLength([]string{"fire", "gold", "flow"})
	want := len(basePrompt + "fire gold flow")
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestAddWordWithinLimit(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	ok, message, err := srv.addWord("fire", "user-1", round)
	if err != nil {
		t.Fatalf("add word: %v", err)
	}
	if !ok || message != "Word added successfully" {
		t.Fatalf("expected success, got ok=%v message=%q", ok, message)
	}

	want := len(basePrompt + "fire")
	if round.TotalChars != want {
		t.Fatalf("expected cached total %d, got %d", want, round.TotalChars)
	}
	var stored db.Round
	if err := srv.db.First(&stored, round.ID).Error; err != nil {
		t.Fatalf("reload round: %v", err)
	}
	if stored.TotalChars != want {
		t.Fatalf("expected stored total %d, got %d", want, stored.TotalChars)
	}

	var word db.Word
	if err := srv.db.Where("round_id = ?", round.ID).First(&word).Error; err != nil {
		t.Fatalf("load word: %v", err)
	}
	if word.Text != "fire" || word.CreatedBy != "user-1" || len(word.Votes) != 0 {
		t.Fatalf("unexpected word record: %#v", word)
	}
}

func TestAddWordAllowsExactLimit(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	filler := strings.Repeat("a", charLimit-len(basePrompt))
	ok, _, err := srv.addWord(filler, "user-1", round)
	if err != nil {
		t.Fatalf("add word: %v", err)
	}
	if !ok {
		t.Fatal("expected word landing exactly on the ceiling to be accepted")
	}
	if round.TotalChars != charLimit {
		t.Fatalf("expected total %d, got %d", charLimit, round.TotalChars)
	}
}

func TestAddWordRejectsOverLimit(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	over := strings.Repeat("a", charLimit-len(basePrompt)+1)
	ok, message, err := srv.addWord(over, "user-1", round)
	if err != nil {
		t.Fatalf("add word: %v", err)
	}
	if ok {
		t.Fatal("expected rejection")
	}
	if message != "Adding this word would exceed the character limit" {
		t.Fatalf("unexpected message: %q", message)
	}

	var stored db.Round
	if err := srv.db.First(&stored, round.ID).Error; err != nil {
		t.Fatalf("reload round: %v", err)
	}
	if stored.TotalChars != len(basePrompt) {
		t.Fatalf("expected total unchanged at %d, got %d", len(basePrompt), stored.TotalChars)
	}
	var count int64
	if err := srv.db.Model(&db.Word{}).Where("round_id = ?", round.ID).Count(&count).Error; err != nil {
		t.Fatalf("count words: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no words inserted, got %d", count)
	}
}

func TestAddWordRejectsWhenFollowUpOvershoots(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	filler := strings.Repeat("a", charLimit-len(basePrompt))
	if ok, _, err := srv.addWord(filler, "user-1", round); err != nil || !ok {
		t.Fatalf("expected filler to be accepted, ok=%v err=%v", ok, err)
	}

	ok, message, err := srv.addWord("x", "user-2", round)
	if err != nil {
		t.Fatalf("add word: %v", err)
	}
	if ok {
		t.Fatal("expected rejection once the prompt is full")
	}
	if message != wordRejectedMessage {
		t.Fatalf("unexpected message: %q", message)
	}
	if round.TotalChars != charLimit {
		t.Fatalf("expected total to stay %d, got %d", charLimit, round.TotalChars)
	}
}

func TestAddWordConflictOnStaleTotal(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	// Another writer advanced the cached total after this round was read.
	if err := srv.db.Model(&db.Round{}).
		Where("id = ?", round.ID).
		Update("total_chars", round.TotalChars+5).Error; err != nil {
		t.Fatalf("simulate concurrent update: %v", err)
	}

	ok, _, err := srv.addWord("fire", "user-1", round)
	if ok {
		t.Fatal("expected stale add to fail")
	}
	if !errors.Is(err, errPromptConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	var count int64
	if err := srv.db.Model(&db.Word{}).Where("round_id = ?", round.ID).Count(&count).Error; err != nil {
		t.Fatalf("count words: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected insert rolled back, got %d words", count)
	}
}

func TestAddWordAllowsDuplicates(t *testing.T) {
	srv := newTestServer(t)
	round, err := srv.currentRound()
	if err != nil {
		t.Fatalf("current round: %v", err)
	}

	for i := 0; i < 2; i++ {
		ok, _, err := srv.addWord("echo", "user-1", round)
		if err != nil || !ok {
			t.Fatalf("add %d: ok=%v err=%v", i, ok, err)
		}
	}
	var count int64
	if err := srv.db.Model(&db.Word{}).Where("round_id = ? AND word = ?", round.ID, "echo").Count(&count).Error; err != nil {
		t.Fatalf("count words: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected duplicate entries, got %d", count)
	}
}

func TestRoundWordsOrderedByVotes(t *testing.T) {
	srv := newTestServer(t)
	round := seedRound(t, srv.db, 1, db.RoundActive, 0)
	seedWord(t, srv.db, round.ID, "fire", 2)
	seedWord(t, srv.db, round.ID, "gold", 5)

	words, err := srv.roundWords(round.ID)
	if err != nil {
		t.Fatalf("round words: %v", err)
	}
	if len(words) != 2 || words[0].Text != "gold" || words[1].Text != "fire" {
		t.Fatalf("expected [gold fire], got %v", wordTexts(words))
	}

	prompt := assemblePrompt(words)
	if prompt != basePrompt+"gold fire" {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
}

func TestRoundWordsTiesKeepInsertionOrder(t *testing.T) {
	srv := newTestServer(t)
	round := seedRound(t, srv.db, 1, db.RoundActive, 0)
	seedWord(t, srv.db, round.ID, "first", 1)
	seedWord(t, srv.db, round.ID, "second", 1)

	words, err := srv.roundWords(round.ID)
	if err != nil {
		t.Fatalf("round words: %v", err)
	}
	if len(words) != 2 || words[0].Text != "first" || words[1].Text != "second" {
		t.Fatalf("expected insertion order on ties, got %v", wordTexts(words))
	}
}
