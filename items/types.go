package items

import (
	"strings"
)

// Visibility classifies who may read an item. Private items are gated by a
// per-item secret key; public items are listed on the map under a category.
type Visibility int

const (
	// VisibilityUnknown means the value could not be parsed.
	VisibilityUnknown Visibility = iota
	VisibilityPrivate
	VisibilityPublic
)

// String returns the wire form of the visibility, as stored in the item
// table and its secondary index.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "PRIVATE"
	case VisibilityPublic:
		return "PUBLIC"
	}
	return ""
}

// ParseVisibility decodes a visibility string, case insensitively. The empty
// string means the caller did not supply one, and defaults to private. Any
// other unrecognized value returns VisibilityUnknown.
func ParseVisibility(s string) Visibility {
	switch strings.ToUpper(s) {
	case "", "PRIVATE":
		return VisibilityPrivate
	case "PUBLIC":
		return VisibilityPublic
	default:
		return VisibilityUnknown
	}
}

// An Item is one hidden item record as kept in the item table.
//
// SecretKey is present exactly when the item is private, and Category
// exactly when it is public. SecretKey must never appear in a response
// payload; the json tag excludes it from every serialization.
type Item struct {
	ID          string  `json:"item_id" dynamodbav:"item_id"`
	Visibility  string  `json:"visibility,omitempty" dynamodbav:"visibility,omitempty"`
	SecretKey   string  `json:"-" dynamodbav:"secret_key,omitempty"`
	Category    string  `json:"category,omitempty" dynamodbav:"category,omitempty"`
	Title       string  `json:"title" dynamodbav:"title"`
	Description string  `json:"description" dynamodbav:"description"`
	Latitude    float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude   float64 `json:"longitude" dynamodbav:"longitude"`
	ImageURL    string  `json:"image_url" dynamodbav:"image_url"`
	CreatedAt   string  `json:"created_at" dynamodbav:"created_at"`
}

// IsPublic reports whether the stored record is readable without a key.
// Records with a missing or unrecognized visibility are treated as private;
// legacy records predate the visibility attribute entirely.
func (item *Item) IsPublic() bool {
	return ParseVisibility(item.Visibility) == VisibilityPublic
}

// View returns a copy of the item with the secret key removed. Handlers
// should only ever serialize views. The json tag on SecretKey already
// excludes it; clearing the field as well keeps a misconfigured encoder
// from ever seeing the value.
func (item *Item) View() *Item {
	dup := *item
	dup.SecretKey = ""
	return &dup
}

// A PublicItem is the reduced projection returned by the public listing.
// It deliberately has no field to carry a secret key.
type PublicItem struct {
	ID        string  `json:"item_id" dynamodbav:"item_id"`
	Title     string  `json:"title" dynamodbav:"title"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Category  string  `json:"category,omitempty" dynamodbav:"category,omitempty"`
}
