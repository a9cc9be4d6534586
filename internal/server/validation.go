package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxWordLength = 64

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("word", func(fl validator.FieldLevel) bool {
			_, err := validateWord(fl.Field().String())
			return err == nil
		})
	})
}

// validateWord trims a contributed word and enforces that it is a single
// printable token. Duplicates across the round are allowed; only the
// character ceiling limits submissions.
func validateWord(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("word is required")
	}
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			return "", errors.New("word must be a single word, no spaces")
		}
	}
	if len(trimmed) > maxWordLength {
		return "", fmt.Errorf("word must be %d characters or fewer", maxWordLength)
	}
	if !isSafeText(trimmed) {
		return "", errors.New("word contains unsupported characters")
	}
	return trimmed, nil
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case '-', '_', '\'', '.', ',', '!', '?', '&':
			continue
		}
		return false
	}
	return true
}
