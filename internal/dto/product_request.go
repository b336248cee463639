package dto

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	// Image is either a local upload path or a payload for the image host
	// (data URI or remote URL).
	Image string `json:"image"`
}
