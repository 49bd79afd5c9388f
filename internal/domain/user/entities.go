package user

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
)

var ErrProfileMismatch = errors.New("profile does not match role")

// Profile is the role-specific half of a user: exactly one of
// *BorrowerProfile or *LenderProfile.
type Profile interface {
	Role() Role
}

type BorrowerProfile struct {
	Income           decimal.Decimal `json:"income"`
	CreditScore      int             `json:"credit_score"`
	EmploymentStatus string          `json:"employment_status"`
}

func (*BorrowerProfile) Role() Role { return RoleBorrower }

type LenderProfile struct {
	InvestmentPreference string          `json:"investment_preference"`
	MinInvestmentAmount  decimal.Decimal `json:"min_investment_amount"`
}

func (*LenderProfile) Role() Role { return RoleLender }

// Table: users. The two profile columns hold JSON; only the one matching Role is set.
type User struct {
	ID        uint64           `gorm:"primaryKey;column:id" json:"-"`
	UserID    string           `gorm:"size:32;not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name      string           `gorm:"size:40;not null" json:"name"`
	Email     string           `gorm:"size:255;not null" json:"email"`
	Role      Role             `gorm:"size:16;not null;index" json:"role"`
	Borrower  *BorrowerProfile `gorm:"column:borrower_profile;type:text;serializer:json" json:"borrower,omitempty"`
	Lender    *LenderProfile   `gorm:"column:lender_profile;type:text;serializer:json" json:"lender,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// New builds a user whose role is taken from the profile variant.
func New(userID, name, email string, p Profile) (*User, error) {
	u := &User{UserID: userID, Name: name, Email: email}
	switch v := p.(type) {
	case *BorrowerProfile:
		if v == nil {
			return nil, ErrProfileMismatch
		}
		u.Role, u.Borrower = RoleBorrower, v
	case *LenderProfile:
		if v == nil {
			return nil, ErrProfileMismatch
		}
		u.Role, u.Lender = RoleLender, v
	default:
		return nil, ErrProfileMismatch
	}
	return u, nil
}

// Profile returns the variant matching Role, or nil for a malformed row.
func (u *User) Profile() Profile {
	switch u.Role {
	case RoleBorrower:
		if u.Borrower != nil {
			return u.Borrower
		}
	case RoleLender:
		if u.Lender != nil {
			return u.Lender
		}
	}
	return nil
}

func (u *User) Is(r Role) bool { return u.Role == r }
