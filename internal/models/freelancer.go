package models

// Freelancer is an entry in the static freelance directory.
type Freelancer struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Rating   float64  `json:"rating"`
	Price    int64    `json:"price"` // hourly rate
	Image    string   `json:"image"`
	Skills   []string `json:"skills"`
}
