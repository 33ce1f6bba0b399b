package models

// UserSummary is the public part of a user returned after login.
type UserSummary struct {
	Email string `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
}

// LogoutResponse is returned by the logout endpoint.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusUpdateResponse is returned after a status change.
type StatusUpdateResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NoteUpdateResponse is returned after a note is saved.
type NoteUpdateResponse struct {
	Message string `json:"message"`
	Note    string `json:"note"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// URLUpdateResponse is returned after the reference URLs are saved, echoing
// the stored entries with their ids.
type URLUpdateResponse struct {
	Message        string     `json:"message"`
	CompetitorURLs []URLEntry `json:"competitorUrls"`
	YoutubeURLs    []URLEntry `json:"youtubeUrls"`
}
