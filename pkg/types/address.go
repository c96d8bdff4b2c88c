package types

// Address is the shipping (or billing) contact block captured at checkout.
// Persisted as JSONB alongside the order snapshot.
type Address struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Postal   string `json:"postal"`
	Country  string `json:"country"`
	Notes    string `json:"notes,omitempty"`
}

// Marketing holds the opt-in flags collected with the order.
type Marketing struct {
	PromoAgree      bool `json:"promoAgree"`
	NewsletterOptIn bool `json:"newsletterOptIn"`
}
