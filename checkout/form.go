package checkout

import (
	"strings"

	"go-storefront/models"
	"go-storefront/utils"
)

// Cities and Districts are the delivery areas offered on the checkout form
var (
	Cities    = []string{"Dhaka", "Chittagong", "Khulna", "Rajshahi", "Barisal", "Sylhet", "Rangpur", "Mymensingh"}
	Districts = []string{"Dhaka", "Narayanganj", "Gazipur", "Tangail", "Chittagong", "Coxs Bazar", "Khulna", "Rajshahi"}
)

// ShippingForm is the checkout form as submitted
type ShippingForm struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	District   string `json:"district"`
	Notes      string `json:"notes"`
}

func (f ShippingForm) trimmed() ShippingForm {
	return ShippingForm{
		FullName:   strings.TrimSpace(f.FullName),
		Phone:      strings.TrimSpace(f.Phone),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		District:   strings.TrimSpace(f.District),
		Notes:      strings.TrimSpace(f.Notes),
	}
}

// Validate returns a field -> message map, empty when the form is complete
func (f ShippingForm) Validate() utils.FieldErrors {
	f = f.trimmed()
	errs := utils.FieldErrors{}
	if f.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	switch {
	case f.Phone == "":
		errs["phone"] = "Phone number is required"
	case !utils.IsPhone(f.Phone):
		errs["phone"] = "Invalid phone number"
	}
	if f.Address == "" {
		errs["address"] = "Address is required"
	}
	if f.City == "" {
		errs["city"] = "City is required"
	}
	if f.PostalCode == "" {
		errs["postalCode"] = "Postal code is required"
	}
	if f.District == "" {
		errs["district"] = "District is required"
	}
	return errs
}

// ShippingAddress converts the form into the order's shipping address
func (f ShippingForm) ShippingAddress() models.ShippingAddress {
	f = f.trimmed()
	return models.ShippingAddress{
		FullName:   f.FullName,
		Phone:      f.Phone,
		Address:    f.Address,
		City:       f.City,
		PostalCode: f.PostalCode,
		District:   f.District,
	}
}
