package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

// AddItemInput holds the raw form fields of the add item panel.
type AddItemInput struct {
	SlNo     string `json:"sl_no"`
	ItemName string `json:"item_name"`
	Rate     string `json:"rate"`
}

var isDecimal = validation.NewStringRule(func(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}, "must be a number")

var isNonNegative = validation.NewStringRule(func(s string) bool {
	d, err := decimal.NewFromString(s)
	return err != nil || !d.IsNegative()
}, "must not be negative")

func (in *AddItemInput) Normalize() {
	in.SlNo = strings.TrimSpace(in.SlNo)
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Rate = strings.TrimSpace(in.Rate)
}

func (in *AddItemInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.SlNo, validation.Required, is.Int),
		validation.Field(&in.ItemName, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Rate, validation.Required, isDecimal, isNonNegative),
	)
}
