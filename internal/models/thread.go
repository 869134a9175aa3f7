package models

import "time"

// Thread is a text post opened on a board, root of a discussion.
// Media and Posts are populated by the nested read path; writes only ever
// touch the row fields.
type Thread struct {
	ID         int64
	Text       string
	Board      string
	LastUpdate time.Time
	Media      []MediaFile
	Posts      []Post
}
