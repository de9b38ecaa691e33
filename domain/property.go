package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
}

type Image struct {
	URL         string `bson:"url" json:"url"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Availability struct {
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
}

type Review struct {
	User    primitive.ObjectID `bson:"user" json:"user"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date" json:"date"`
}

// Listing holds every property field except the host reference, so the stored
// and the resolved shapes can share it.
type Listing struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Address       Address            `bson:"address" json:"address"`
	PricePerNight float64            `bson:"pricePerNight" json:"pricePerNight"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Images        []Image            `bson:"images" json:"images"`
	Availability  []Availability     `bson:"availability" json:"availability"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Property struct {
	Listing `bson:",inline"`
	Host    primitive.ObjectID `bson:"host" json:"host"`
}

type HostSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// PropertyView is a property with its host reference resolved.
type PropertyView struct {
	Listing `bson:",inline"`
	Host    *HostSummary `bson:"host,omitempty" json:"host"`
}
