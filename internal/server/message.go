package server

import (
	"encoding/json"
	"time"

	"github.com/lox/potdrill/internal/drill"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// SubmitAnswersData carries the learner's raw text, keyed by field name.
// Blank or non-numeric text is graded as an empty answer.
type SubmitAnswersData struct {
	Answers map[string]string `json:"answers"`
}

// Server → Client Messages

type WelcomeData struct {
	SessionID   string          `json:"sessionId"`
	Fields      []FieldInfo     `json:"fields"`
	TipSchedule []drill.TipTier `json:"tipSchedule"`
	RakePercent int             `json:"rakePercent"`
	RakeCap     int             `json:"rakeCap"`
	Jackpot     int             `json:"jackpot"`
}

type FieldInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ScenarioData is the problem as shown to the learner. It deliberately omits
// the answer key.
type ScenarioData struct {
	Number       int           `json:"number"`
	TotalPlayers int           `json:"totalPlayers"`
	Rounds       []drill.Round `json:"rounds"`
}

type GradeResultData struct {
	Number       int                           `json:"number"`
	Verdicts     map[drill.Field]drill.Verdict `json:"verdicts"`
	AllCorrect   bool                          `json:"allCorrect"`
	CorrectCount int                           `json:"correctCount"`
	Headline     string                        `json:"headline"`
	Score        drill.Score                   `json:"score"`
	ElapsedMs    int64                         `json:"elapsedMs"`
}

type ScoreData struct {
	Session drill.Score `json:"session"`
	Global  drill.Score `json:"global"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func welcomeFor(sessionID string) WelcomeData {
	fields := make([]FieldInfo, len(drill.Fields))
	for i, f := range drill.Fields {
		fields[i] = FieldInfo{Name: f.String(), Label: f.Label()}
	}
	return WelcomeData{
		SessionID:   sessionID,
		Fields:      fields,
		TipSchedule: drill.TipTiers(),
		RakePercent: drill.RakePercent,
		RakeCap:     drill.RakeCap,
		Jackpot:     drill.Jackpot,
	}
}

func scenarioFor(s drill.Session) ScenarioData {
	return ScenarioData{
		Number:       s.Number,
		TotalPlayers: s.Scenario.TotalPlayers,
		Rounds:       s.Scenario.Rounds[:],
	}
}

func gradeResultFor(s drill.Session) GradeResultData {
	return GradeResultData{
		Number:       s.Number,
		Verdicts:     s.Result.Verdicts,
		AllCorrect:   s.Result.AllCorrect,
		CorrectCount: s.Result.CorrectCount(),
		Headline:     s.Result.Headline(),
		Score:        s.Score,
		ElapsedMs:    s.Elapsed().Milliseconds(),
	}
}
