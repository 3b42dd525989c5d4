// Package models contains the raw (stored) and resolved (response) document
// types for the feed database, plus the API error taxonomy.
package models

// User is a stored user document. Feed references the user's Feed document
// and never changes after the user is created.
type User struct {
	ID       int    `json:"_id"`
	FullName string `json:"fullName"`
	Feed     int    `json:"feed"`
}

// DocID returns the document id.
func (u *User) DocID() int { return u.ID }

// SetDocID sets the store-assigned document id.
func (u *User) SetDocID(id int) { u.ID = id }

// Feed is a stored feed document. Contents holds feed item ids in
// most-recent-first order; new items are prepended.
type Feed struct {
	ID       int   `json:"_id"`
	Contents []int `json:"contents"`
}

// DocID returns the document id.
func (f *Feed) DocID() int { return f.ID }

// SetDocID sets the store-assigned document id.
func (f *Feed) SetDocID(id int) { f.ID = id }
