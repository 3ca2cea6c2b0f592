package domain

// TeaItem is one catalog entry. Items are partitioned across stores by their
// category/subcategory pair; the name is unique within a partition. Price and
// quantity arrive as form fields and are kept as submitted.
type TeaItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	ImagePath   string `json:"imagePath"`
}

// TeaListing is a catalog entry as returned by the aggregate listing, with a
// servable URL derived from the stored image path.
type TeaListing struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}
