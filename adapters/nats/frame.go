package nats

import (
	"encoding/json"
	"errors"
	"fmt"
)

// responseFrame is the JSON reply body for an id request.
type responseFrame struct {
	ID  uint32 `json:"id,omitempty"`
	Err string `json:"err,omitempty"`
}

func encodeResponse(id uint32, err error) []byte {
	rf := responseFrame{ID: id}
	if err != nil {
		rf = responseFrame{Err: err.Error()}
	}
	b, _ := json.Marshal(rf)
	return b
}

func decodeResponse(data []byte) (uint32, error) {
	var rf responseFrame
	if err := json.Unmarshal(data, &rf); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if rf.Err != "" {
		return 0, &RemoteError{Msg: rf.Err}
	}
	if rf.ID == 0 {
		return 0, errors.New("decode response: missing id")
	}
	return rf.ID, nil
}

// RemoteError is an error reported by the serving side.
type RemoteError struct {
	Msg string
}

func (e *RemoteError) Error() string { return "remote: " + e.Msg }
