package service

// Broadcaster pushes events to connected staff sockets (avoids import cycle)
type Broadcaster interface {
	BroadcastToStaff(msgType string, payload interface{})
}

// Event types sent over the staff feed
const (
	EventFeedbackCreated = "feedback_created"
)
