package model

// Buyer is the authenticated user behind every buyer view
type Buyer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
