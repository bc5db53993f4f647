package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys of the derived image URLs on a property
const (
	ThumbnailURLKey       = "thumbnail_url"
	ThumbnailURLMediumKey = "thumbnail_url_medium"
	ThumbnailURLLargeKey  = "thumbnail_url_large"
)

// Thumbnails are the small/medium/large derived image URLs of a property
type Thumbnails struct {
	Small  string `json:"thumbnail_url"`
	Medium string `json:"thumbnail_url_medium"`
	Large  string `json:"thumbnail_url_large"`
}

// Complete reports whether all three sizes are present
func (t Thumbnails) Complete() bool {
	return t.Small != "" && t.Medium != "" && t.Large != ""
}

// RemoteProperty is an OwnerRez property record kept verbatim, field by field.
type RemoteProperty struct {
	Attributes map[string]json.RawMessage
}

// UnmarshalJSON keeps every field of the remote object
func (p *RemoteProperty) UnmarshalJSON(data []byte) error {
	attrs := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	p.Attributes = attrs
	return nil
}

// MarshalJSON writes the remote object back out; keys come out sorted
func (p RemoteProperty) MarshalJSON() ([]byte, error) {
	if p.Attributes == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.Attributes)
}

// ID returns the OwnerRez id as a string, or "" when absent
func (p RemoteProperty) ID() string {
	raw, ok := p.Attributes["id"]
	if !ok {
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// String returns a string attribute, or "" when absent, null or not a string
func (p RemoteProperty) String(key string) string {
	raw, ok := p.Attributes[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Thumbnails returns the derived image URLs present on the record
func (p RemoteProperty) Thumbnails() Thumbnails {
	return Thumbnails{
		Small:  p.String(ThumbnailURLKey),
		Medium: p.String(ThumbnailURLMediumKey),
		Large:  p.String(ThumbnailURLLargeKey),
	}
}

// Clone returns a copy whose attribute map can be modified independently
func (p RemoteProperty) Clone() RemoteProperty {
	attrs := make(map[string]json.RawMessage, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs[k] = v
	}
	return RemoteProperty{Attributes: attrs}
}

// WithThumbnails returns a copy with the non-empty thumbnail URLs set
func (p RemoteProperty) WithThumbnails(t Thumbnails) RemoteProperty {
	out := p.Clone()
	for key, value := range map[string]string{
		ThumbnailURLKey:       t.Small,
		ThumbnailURLMediumKey: t.Medium,
		ThumbnailURLLargeKey:  t.Large,
	} {
		if value == "" {
			continue
		}
		encoded, _ := json.Marshal(value)
		out.Attributes[key] = encoded
	}
	return out
}

// Pricing of a locally managed property
type Pricing struct {
	NightlyRate     float64 `json:"nightlyRate" bson:"nightlyRate"`
	CleaningFee     float64 `json:"cleaningFee" bson:"cleaningFee"`
	SecurityDeposit float64 `json:"securityDeposit" bson:"securityDeposit"`
	Currency        string  `json:"currency" bson:"currency"`
}

// Availability of a locally managed property
type Availability struct {
	MinimumStay  int      `json:"minimumStay" bson:"minimumStay"`
	MaximumStay  int      `json:"maximumStay" bson:"maximumStay"`
	CheckInTime  string   `json:"checkInTime" bson:"checkInTime"`
	CheckOutTime string   `json:"checkOutTime" bson:"checkOutTime"`
	BlockedDates []string `json:"blockedDates" bson:"blockedDates"`
}

// Policies of a locally managed property
type Policies struct {
	Cancellation   string `json:"cancellation" bson:"cancellation"`
	PetsAllowed    bool   `json:"petsAllowed" bson:"petsAllowed"`
	SmokingAllowed bool   `json:"smokingAllowed" bson:"smokingAllowed"`
	EventsAllowed  bool   `json:"eventsAllowed" bson:"eventsAllowed"`
}

// Owner is the owner contact of a locally managed property
type Owner struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// LocalProperty is the property document stored in MongoDB
type LocalProperty struct {
	ID                     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OwnerRezID             int64              `json:"ownerRezId" bson:"ownerRezId"`
	Name                   string             `json:"name" bson:"name"`
	Description            string             `json:"description" bson:"description"`
	Amenities              []string           `json:"amenities" bson:"amenities"`
	Rules                  []string           `json:"rules" bson:"rules"`
	Pricing                *Pricing           `json:"pricing" bson:"pricing,omitempty"`
	Availability           *Availability      `json:"availability" bson:"availability,omitempty"`
	Policies               *Policies          `json:"policies" bson:"policies,omitempty"`
	Owner                  *Owner             `json:"owner" bson:"owner,omitempty"`
	Status                 string             `json:"status" bson:"status"`
	IsVerified             bool               `json:"isVerified" bson:"isVerified"`
	Images                 []string           `json:"images" bson:"images"`
	ThumbnailURL           string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	ThumbnailURLMedium     string             `json:"thumbnail_url_medium,omitempty" bson:"thumbnail_url_medium,omitempty"`
	ThumbnailURLLarge      string             `json:"thumbnail_url_large,omitempty" bson:"thumbnail_url_large,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt" bson:"updatedAt"`
	LastSyncedWithOwnerRez *time.Time         `json:"lastSyncedWithOwnerRez" bson:"lastSyncedWithOwnerRez,omitempty"`
}

// PropertyID returns the OwnerRez id as a string
func (p *LocalProperty) PropertyID() string {
	return strconv.FormatInt(p.OwnerRezID, 10)
}

// Thumbnails returns the derived image URLs stored on the document
func (p *LocalProperty) Thumbnails() Thumbnails {
	return Thumbnails{Small: p.ThumbnailURL, Medium: p.ThumbnailURLMedium, Large: p.ThumbnailURLLarge}
}

// LocalData is the locally owned part of a property. Every field is listed
// explicitly; none of them exist on the OwnerRez record.
type LocalData struct {
	Description            string        `json:"description"`
	Amenities              []string      `json:"amenities"`
	Rules                  []string      `json:"rules"`
	Pricing                *Pricing      `json:"pricing"`
	Availability           *Availability `json:"availability"`
	Policies               *Policies     `json:"policies"`
	Owner                  *Owner        `json:"owner"`
	Status                 string        `json:"status"`
	IsVerified             bool          `json:"isVerified"`
	Images                 []string      `json:"images"`
	CreatedAt              time.Time     `json:"createdAt"`
	UpdatedAt              time.Time     `json:"updatedAt"`
	LastSyncedWithOwnerRez *time.Time    `json:"lastSyncedWithOwnerRez"`
}

// NewLocalData projects the locally owned fields of p
func NewLocalData(p *LocalProperty) LocalData {
	return LocalData{
		Description:            p.Description,
		Amenities:              p.Amenities,
		Rules:                  p.Rules,
		Pricing:                p.Pricing,
		Availability:           p.Availability,
		Policies:               p.Policies,
		Owner:                  p.Owner,
		Status:                 p.Status,
		IsVerified:             p.IsVerified,
		Images:                 p.Images,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
		LastSyncedWithOwnerRez: p.LastSyncedWithOwnerRez,
	}
}

// LocalPropertyInput is the editable part of a local property document
type LocalPropertyInput struct {
	Name         string        `json:"name"`
	Description  string        `json:"description" validate:"required"`
	Amenities    []string      `json:"amenities"`
	Rules        []string      `json:"rules"`
	Pricing      *Pricing      `json:"pricing"`
	Availability *Availability `json:"availability"`
	Policies     *Policies     `json:"policies"`
	Owner        *Owner        `json:"owner"`
	Status       string        `json:"status" validate:"omitempty,oneof=Pending Active Occupied Inactive"`
	IsVerified   bool          `json:"isVerified"`
	Images       []string      `json:"images" validate:"omitempty,dive,url"`
}
