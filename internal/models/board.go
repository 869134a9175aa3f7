package models

// MaxSlugLen bounds board slugs at the schema level.
const MaxSlugLen = 16

// Board is a top-level topic category identified by a short slug.
// Serialization lives in the api package.
type Board struct {
	Slug string
	Name string
}
