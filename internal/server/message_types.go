package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeNewScenario   MessageType = "new_scenario"
	MessageTypeSubmitAnswers MessageType = "submit_answers"
	MessageTypeGetScore      MessageType = "get_score"

	// Server to client messages
	MessageTypeWelcome     MessageType = "welcome"
	MessageTypeScenario    MessageType = "scenario"
	MessageTypeGradeResult MessageType = "grade_result"
	MessageTypeScore       MessageType = "score"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
