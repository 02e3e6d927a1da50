package domain

import "time"

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

func (r AdminRole) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type Admin struct {
	ID          string
	Email       string
	Name        string
	Role        AdminRole
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

type AdminWithPassword struct {
	Admin
	PasswordHash string
}

type Session struct {
	ID        string
	AdminID   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type PasswordResetToken struct {
	ID        string
	AdminID   string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

type Property struct {
	ID           string
	Title        string
	Price        float64
	Location     string
	Address      string
	Size         string
	Bedrooms     int
	PropertyType string
	Category     string
	BuildingType string
	Images       []string
	Features     []string
	Description  string
	Featured     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyUpdate carries a partial update; nil fields are left unchanged.
type PropertyUpdate struct {
	Title        *string
	Price        *float64
	Location     *string
	Address      *string
	Size         *string
	Bedrooms     *int
	PropertyType *string
	Category     *string
	BuildingType *string
	Images       *[]string
	Features     *[]string
	Description  *string
	Featured     *bool
}

// PropertyFilter narrows a listing by indexed fields. Zero values mean
// "no filter"; Featured uses a pointer so false is a real filter.
type PropertyFilter struct {
	Category     string
	PropertyType string
	Featured     *bool
}

type PropertyStats struct {
	Total     int
	ForSale   int
	ForRent   int
	Land      int
	Carcass   int
	PreFinish int
	Finished  int
	Featured  int
}

type Representative struct {
	ID           string
	Name         string
	Role         string
	Phone        string
	Photo        string
	Email        string
	DisplayOrder int
	CreatedAt    time.Time
}

type RepresentativeUpdate struct {
	Name         *string
	Role         *string
	Phone        *string
	Photo        *string
	Email        *string
	DisplayOrder *int
}

type SiteContent struct {
	Key       string
	Value     string
	UpdatedAt time.Time
	UpdatedBy string
}

type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	Read      bool
	Replied   bool
	CreatedAt time.Time
}

type NewsletterSubscription struct {
	ID             string
	Email          string
	Subscribed     bool
	CreatedAt      time.Time
	UnsubscribedAt *time.Time
}

type NewsletterStats struct {
	Total        int
	Subscribed   int
	Unsubscribed int
}
