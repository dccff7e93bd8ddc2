package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingLine is a carrier entry embedded in a Destination. Its id is only unique within the parent.
type ShippingLine struct {
	ID        string    `json:"id"`
	LineName  string    `json:"lineName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Destination is a port-of-discharge reference entry and the unit of persistence for its shipping lines.
type Destination struct {
	ID              string        `gorm:"primaryKey;size:24" json:"id"`
	DestinationName string        `gorm:"size:100;not null;uniqueIndex" json:"destinationName"`
	ShippingLines   ShippingLines `gorm:"type:json;not null" json:"shippingLines"`
	IsActive        bool          `gorm:"not null;index" json:"isActive"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// TableName keeps the collection name shared with the document store
func (Destination) TableName() string {
	return "pod_destinations"
}

// MarshalJSON adds the derived activeShippingLinesCount
func (d Destination) MarshalJSON() ([]byte, error) {
	type destination Destination
	out := struct {
		destination
		ActiveShippingLinesCount int `json:"activeShippingLinesCount"`
	}{
		destination:              destination(d),
		ActiveShippingLinesCount: d.ActiveShippingLinesCount(),
	}
	if out.ShippingLines == nil {
		out.ShippingLines = ShippingLines{}
	}
	return json.Marshal(out)
}

// ActiveShippingLinesCount counts embedded lines with IsActive set
func (d *Destination) ActiveShippingLinesCount() int {
	count := 0
	for _, line := range d.ShippingLines {
		if line.IsActive {
			count++
		}
	}
	return count
}

// FindShippingLine returns the line with the given id and its position, or nil and -1
func (d *Destination) FindShippingLine(id string) (*ShippingLine, int) {
	for i := range d.ShippingLines {
		if d.ShippingLines[i].ID == id {
			return &d.ShippingLines[i], i
		}
	}
	return nil, -1
}

// FindShippingLineByName matches line names case-insensitively after trimming
func (d *Destination) FindShippingLineByName(name string) *ShippingLine {
	key := LineNameKey(name)
	for i := range d.ShippingLines {
		if LineNameKey(d.ShippingLines[i].LineName) == key {
			return &d.ShippingLines[i]
		}
	}
	return nil
}

// CollidingLineNames returns the names that already exist on the destination, in input order
func (d *Destination) CollidingLineNames(names []string) []string {
	existing := make(map[string]struct{}, len(d.ShippingLines))
	for _, line := range d.ShippingLines {
		existing[LineNameKey(line.LineName)] = struct{}{}
	}

	var collisions []string
	for _, name := range names {
		if _, ok := existing[LineNameKey(name)]; ok {
			collisions = append(collisions, name)
		}
	}
	return collisions
}

// HasActiveLineMatching reports whether an active line name contains query, ignoring case
func (d *Destination) HasActiveLineMatching(query string) bool {
	query = LineNameKey(query)
	for _, line := range d.ShippingLines {
		if line.IsActive && strings.Contains(strings.ToLower(line.LineName), query) {
			return true
		}
	}
	return false
}

// RemoveShippingLine drops the line with the given id. Missing ids are ignored.
func (d *Destination) RemoveShippingLine(id string) bool {
	_, idx := d.FindShippingLine(id)
	if idx < 0 {
		return false
	}
	d.ShippingLines = append(d.ShippingLines[:idx:idx], d.ShippingLines[idx+1:]...)
	return true
}

// LineNameKey is the comparison key for shipping line names
func LineNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewID generates an identifier in the store's ObjectID hex format
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a 24 character ObjectID hex string
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
