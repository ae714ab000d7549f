package protocol

import "time"

type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// NewModelList builds the fixed single-entry model catalog advertising the
// CLI-backed agent, so clients that list models before chatting don't crash.
func NewModelList(agentID string) ModelList {
	return ModelList{
		Object: "list",
		Data: []Model{{
			ID:      agentID,
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: "user",
		}},
	}
}
