package models

// Item is a user-owned record. OwnerID is set at creation and never changes.
type Item struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	OwnerID int    `json:"owner_id"`
}
