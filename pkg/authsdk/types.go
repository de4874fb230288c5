package authsdk

import "time"

// ============================================================================
// Session Types
// ============================================================================

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse is the {"msg": ...} body used for client errors.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ============================================================================
// Resource Types
// ============================================================================

// Folder groups notes.
type Folder struct {
	ID         string `json:"id"`
	FolderName string `json:"folder_name"`
}

// FolderRequest is the body for creating or renaming a folder.
type FolderRequest struct {
	FolderName string `json:"folder_name"`
}

// Note is a single note. Modified is stamped by the server on every write.
type Note struct {
	ID       string    `json:"id"`
	NoteName string    `json:"note_name"`
	Modified time.Time `json:"modified"`
	FolderID string    `json:"folder_id"`
	Content  string    `json:"content"`
}

// NoteRequest is the body for creating or updating a note.
type NoteRequest struct {
	NoteName string `json:"note_name"`
	FolderID string `json:"folder_id"`
	Content  string `json:"content"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "unavailable")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Sessions indicates the refresh token backend status when it is not
	// the database
	Sessions string `json:"sessions,omitempty"`
}
