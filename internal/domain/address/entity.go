// internal/domain/address/entity.go
package address

import "context"

// Label categorizes an address for display
type Label string

const (
	LabelHome       Label = "Home"
	LabelWork       Label = "Work"
	LabelOffice     Label = "Office"
	LabelUniversity Label = "University"
	LabelFriend     Label = "Friend"
	LabelOther      Label = "Other"
)

// ValidLabel reports whether the label is one of the known values
func ValidLabel(l Label) bool {
	switch l {
	case LabelHome, LabelWork, LabelOffice, LabelUniversity, LabelFriend, LabelOther:
		return true
	}
	return false
}

// Address represents a saved delivery address. The server enforces the
// single-default invariant; the client reflects whatever it returns.
type Address struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	Label       Label  `json:"label"`
	IsDefault   bool   `json:"isDefault"`
}

// Gateway is the remote address API consumed by the manager
type Gateway interface {
	ListAddresses(ctx context.Context) ([]Address, error)
	GetAddress(ctx context.Context, id string) (*Address, error)
	CreateAddress(ctx context.Context, form Form) (*Address, error)
	UpdateAddress(ctx context.Context, id string, form Form) (*Address, error)
	DeleteAddress(ctx context.Context, id string) error
	SetDefaultAddress(ctx context.Context, id string) ([]Address, error)
}
