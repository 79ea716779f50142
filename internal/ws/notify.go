package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type UserRegisteredEvent struct {
	Type      string `json:"type"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyUserRegistered broadcasts a registration event to every connected
// client. A no-op when no hub is wired.
func NotifyUserRegistered(username string, role string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := UserRegisteredEvent{
		Type:      "user_registered",
		Username:  username,
		Role:      role,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
