package domain

// ShippingAddress is collected during checkout and embedded into the
// order at placement. All fields are mandatory. Format checks (phone,
// email) are a boundary concern of the form layer; the session only
// requires the fields to be present.
type ShippingAddress struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Complete reports whether every mandatory field is non-empty.
func (a ShippingAddress) Complete() bool {
	return a.FirstName != "" &&
		a.LastName != "" &&
		a.Address != "" &&
		a.City != "" &&
		a.County != "" &&
		a.PostalCode != "" &&
		a.Phone != "" &&
		a.Email != ""
}
