package domain

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// QuestionsPerBatch is the fixed batch size handed to a session.
const QuestionsPerBatch = 10

// Question is one multiple-choice quiz question.
type Question struct {
	ID           string   `json:"id"` // fingerprint of the question text
	Text         string   `json:"text"`
	Options      []string `json:"options"` // always 4
	CorrectIndex int      `json:"correct_index"`
}

// Fingerprint derives a stable identifier from question text, used to avoid
// serving the same question twice across sessions.
func Fingerprint(text string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.TrimSpace(text)))
	return fmt.Sprintf("%d", h.Sum32())
}
