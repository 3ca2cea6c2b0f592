package domain

// Role identifies the privilege level recorded on an account.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
)

// Account is the full member record stored in a leaf store. The email is the
// natural key; the password field holds a bcrypt hash.
type Account struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password,omitempty"`
	Role        Role   `json:"role"`
}

// MemberIndexEntry points from an email to the leaf store holding the full
// account. A stale entry (one whose path no longer contains the email) is
// purged on read.
type MemberIndexEntry struct {
	Email string `json:"email"`
	Path  string `json:"path"`
}

// Claims is the identity payload embedded in issued tokens.
type Claims struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}
