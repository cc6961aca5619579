package ws

import "arcade_hub/internal/game"

// client → server
//
// An action frame carries a game action next to its type, e.g.
// {"type":"action","action":"submit","value":"00101010"}.
type ActionPayload struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
}

func (p ActionPayload) toAction() game.Action {
	return game.Action{Type: p.Action, Value: p.Value, Top: p.Top, Bottom: p.Bottom}
}

// server → client
type ReadyPayload struct {
	PlayID string    `json:"play_id"`
	Kind   game.Kind `json:"kind"`
	Title  string    `json:"title"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
