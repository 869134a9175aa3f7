// Package api defines the JSON shapes the vboard HTTP surface exposes.
package api

// Board is one board in the board listing.
type Board struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Media is one attached file, resolvable via the file download endpoint.
type Media struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
}

// Post is one reply inside a thread projection.
type Post struct {
	ID           int64   `json:"id"`
	VoiceMessage string  `json:"voice_message"`
	Media        []Media `json:"media"`
}

// Thread is the nested thread projection: the thread's own media plus its
// posts, each with their media. The board listing caps Posts at the
// configured preview limit; the single-thread view carries full history.
type Thread struct {
	ID    int64   `json:"id"`
	Text  string  `json:"text"`
	Media []Media `json:"media"`
	Posts []Post  `json:"posts"`
}

// ErrorResponse is the error body for all non-2xx responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}
