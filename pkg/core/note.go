package core

// NotesKey is the storage key under which the encoded notes live.
const NotesKey = "notes"

// Entry is a single note. The title is its only identity.
type Entry struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}
