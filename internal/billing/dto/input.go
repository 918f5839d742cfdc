package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// GenerateBillInput is the billing form: customer details plus the raw
// quantity typed next to each catalog item, keyed by item name. Blank
// quantities leave the item off the bill.
type GenerateBillInput struct {
	CustomerName string            `json:"customer_name"`
	RationCard   string            `json:"ration_card"`
	Quantities   map[string]string `json:"quantities"`
}

func (in *GenerateBillInput) Normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.RationCard = strings.TrimSpace(in.RationCard)
	for name, qty := range in.Quantities {
		in.Quantities[name] = strings.TrimSpace(qty)
	}
}

func (in *GenerateBillInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.CustomerName, validation.Required),
		validation.Field(&in.RationCard, validation.Required),
	)
}
