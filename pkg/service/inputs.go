package service

import "strings"

// ShippingLineInput describes one line in a create, replace or add request.
// ID is only honoured by replacement lists, where it keeps an existing line's identity.
type ShippingLineInput struct {
	ID       string `json:"id,omitempty" validate:"omitempty,mongodb"`
	LineName string `json:"lineName" validate:"required,min=2,max=100"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// CreateDestinationInput is the body of a destination create
type CreateDestinationInput struct {
	DestinationName string              `json:"destinationName" validate:"required,min=2,max=100"`
	ShippingLines   []ShippingLineInput `json:"shippingLines" validate:"dive"`
}

// UpdateDestinationInput is a partial update; nil fields are left unchanged and a
// non-nil ShippingLines replaces the whole list.
type UpdateDestinationInput struct {
	DestinationName *string              `json:"destinationName" validate:"omitnil,min=2,max=100"`
	ShippingLines   *[]ShippingLineInput `json:"shippingLines" validate:"omitnil,dive"`
}

// BulkShippingLinesInput is the body of a bulk line add
type BulkShippingLinesInput struct {
	ShippingLines []ShippingLineInput `json:"shippingLines" validate:"required,min=1,dive"`
}

// ShippingLinePatch merges into an existing line; nil fields keep their value
type ShippingLinePatch struct {
	LineName *string `json:"lineName" validate:"omitnil,min=2,max=100"`
	IsActive *bool   `json:"isActive"`
}

func (in *ShippingLineInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.LineName = strings.TrimSpace(in.LineName)
}

func normalizeLines(lines []ShippingLineInput) {
	for i := range lines {
		lines[i].normalize()
	}
}

func (in *CreateDestinationInput) normalize() {
	in.DestinationName = strings.TrimSpace(in.DestinationName)
	normalizeLines(in.ShippingLines)
}

func (in *UpdateDestinationInput) normalize() {
	if in.DestinationName != nil {
		name := strings.TrimSpace(*in.DestinationName)
		in.DestinationName = &name
	}
	if in.ShippingLines != nil {
		normalizeLines(*in.ShippingLines)
	}
}

func (in *BulkShippingLinesInput) normalize() {
	normalizeLines(in.ShippingLines)
}

func (p *ShippingLinePatch) normalize() {
	if p.LineName != nil {
		name := strings.TrimSpace(*p.LineName)
		p.LineName = &name
	}
}

func lineNames(lines []ShippingLineInput) []string {
	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = line.LineName
	}
	return names
}
