package models

// MediaFile links a stored blob to the display name the client supplied.
// StorageKey is server-generated and globally unique; Filename is
// display-only and may collide freely.
type MediaFile struct {
	Filename   string
	StorageKey string
}
