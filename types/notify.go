package types

// Notification represents a transient notification message
type Notification struct {
	Type    string         `json:"type,omitempty"`    // e.g. "info", "upload_complete", "error"
	Message string         `json:"message,omitempty"` // message shown to the user
	Data    map[string]any `json:"data,omitempty"`    // additional data fields
}
