package dto

type CatalogHit struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // 'achievement' or 'reward'
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Points      int    `json:"points"` // bonus for achievements, cost for rewards
	Active      bool   `json:"active"`
}

type SearchResponse struct {
	Query        string       `json:"query"`
	Achievements []CatalogHit `json:"achievements"`
	Rewards      []CatalogHit `json:"rewards"`
}
