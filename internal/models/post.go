package models

// Post is a reply within a thread. VoiceMessage holds the storage key of the
// mandatory voice recording.
type Post struct {
	ID           int64
	ThreadID     int64
	VoiceMessage string
	Media        []MediaFile
}
