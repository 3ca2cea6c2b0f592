package domain

// Staff models one staff member. The name is unique within the staff store;
// the image file at ImagePath lives and dies with the record.
type Staff struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	ImagePath   string `json:"imagePath"`
}
