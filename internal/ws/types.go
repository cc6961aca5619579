package ws

const (
	// client - server
	MsgAction = "action"
	MsgPing   = "ping"

	// server - client
	MsgReady   = "ready"
	MsgState   = "state"
	MsgOutcome = "outcome"
	MsgPong    = "pong"
	MsgError   = "error"
)

// Message is the envelope for every server-to-client frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
