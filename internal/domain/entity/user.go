package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// AuthProviderGoogle marks accounts registered through Google sign-in
const AuthProviderGoogle = "google"

// User is the account document stored in MongoDB. Password never leaves the service.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	FullName     string             `json:"fullName" bson:"fullName"`
	Phone        string             `json:"phone" bson:"phone"`
	Dob          string             `json:"dob" bson:"dob"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Role         string             `json:"role" bson:"role"`
	GuestID      *int64             `json:"guestId,omitempty" bson:"guestId,omitempty"`
	AuthProvider string             `json:"authProvider,omitempty" bson:"authProvider,omitempty"`
	Password     string             `json:"-" bson:"password,omitempty"`

	// Admin contact fields
	ContactPerson  string `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	MailingAddress string `json:"mailingAddress,omitempty" bson:"mailingAddress,omitempty"`
	DesiredService string `json:"desiredService,omitempty" bson:"desiredService,omitempty"`

	// Admin business verification fields
	ProofOfOwnership      string `json:"proofOfOwnership,omitempty" bson:"proofOfOwnership,omitempty"`
	BusinessLicenseNumber string `json:"businessLicenseNumber,omitempty" bson:"businessLicenseNumber,omitempty"`
	TaxID                 string `json:"taxId,omitempty" bson:"taxId,omitempty"`
	BankAccountInfo       string `json:"bankAccountInfo,omitempty" bson:"bankAccountInfo,omitempty"`
	TaxForm               string `json:"taxForm,omitempty" bson:"taxForm,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasRole reports whether the user holds one of roles
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ProfileUpdateRequest is the body of PUT /user/profile
type ProfileUpdateRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Dob          string `json:"dob" validate:"required"`
	ProfileImage string `json:"profileImage"`

	ContactPerson  string `json:"contactPerson"`
	MailingAddress string `json:"mailingAddress"`
	DesiredService string `json:"desiredService"`

	ProofOfOwnership      string `json:"proofOfOwnership"`
	BusinessLicenseNumber string `json:"businessLicenseNumber"`
	TaxID                 string `json:"taxId"`
	BankAccountInfo       string `json:"bankAccountInfo"`
	TaxForm               string `json:"taxForm"`
}

// PasswordChangeRequest is the body of PUT /user/password
type PasswordChangeRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
