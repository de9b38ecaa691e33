package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	Host  Role = "host"
	Guest Role = "guest"
	Admin Role = "admin"
)

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

const profileImageURL = "https://i.pravatar.cc/150?img=%d"

type User struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	IsGoogleSignIn bool               `bson:"isGoogleSignIn" json:"isGoogleSignIn"`
	Password       string             `bson:"password,omitempty" json:"-" validate:"required_unless=IsGoogleSignIn true"`
	Role           Role               `bson:"role" json:"role" validate:"required,oneof=host guest admin"`
	Status         Status             `bson:"status" json:"status" validate:"required,oneof=active inactive"`
	Phone          string             `bson:"phone" json:"phone" validate:"required,phone"`
	ProfileImage   string             `bson:"profileImage" json:"profileImage" validate:"omitempty,url"`
	LastLogin      *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the projection returned by login.
type UserSummary struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         Role               `json:"role"`
	Status       Status             `json:"status"`
	Phone        string             `json:"phone"`
	ProfileImage string             `json:"profileImage"`
}

func (user *User) Summary() UserSummary {
	return UserSummary{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		Phone:        user.Phone,
		ProfileImage: user.ProfileImage,
	}
}

// UserDetails is a user with its optional reverse relations resolved.
type UserDetails struct {
	User       `bson:",inline"`
	MyBookings *[]Booking  `bson:"myBookings,omitempty" json:"myBookings,omitempty"`
	MyListings *[]Property `bson:"myListings,omitempty" json:"myListings,omitempty"`
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Guest      primitive.ObjectID `bson:"guest" json:"guest"`
	Property   primitive.ObjectID `bson:"property" json:"property"`
	StartDate  time.Time          `bson:"startDate" json:"startDate"`
	EndDate    time.Time          `bson:"endDate" json:"endDate"`
	TotalPrice float64            `bson:"totalPrice,omitempty" json:"totalPrice,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
}

func (input *RegisterInput) Normalize() {
	input.Email = NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
}

func (input *RegisterInput) HasAllFields() bool {
	return input.Email != "" && input.Password != "" && input.Name != "" && input.Phone != ""
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate holds the profile fields a user may change. A nil field was
// absent from the request and is left untouched.
type UserUpdate struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

func (update *UserUpdate) IsEmpty() bool {
	return update.Name == nil && update.Phone == nil && update.ProfileImage == nil
}

// Normalize trims present fields and swaps a blank profile image for a new
// placeholder avatar.
func (update *UserUpdate) Normalize() {
	trim := func(field *string) {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	trim(update.Name)
	trim(update.Phone)
	trim(update.ProfileImage)

	if update.ProfileImage != nil && *update.ProfileImage == "" {
		image := DefaultProfileImage()
		update.ProfileImage = &image
	}
}

// Fields maps the present fields to their stored names.
func (update *UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.ProfileImage != nil {
		fields["profileImage"] = *update.ProfileImage
	}
	return fields
}

type UserFilter struct {
	Role   Role
	Status Status
	Search string
}

type UserExpansion struct {
	Bookings bool
	Listings bool
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func DefaultProfileImage() string {
	return fmt.Sprintf(profileImageURL, rand.Intn(70)+1)
}

func IsValidRole(role Role) bool {
	return role == Host || role == Guest || role == Admin
}

func IsValidStatus(status Status) bool {
	return status == Active || status == Inactive
}
