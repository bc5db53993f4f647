package entity

// EmailAddress is one of a guest's email addresses
type EmailAddress struct {
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
	Type      string `json:"type"`
}

// Phone is one of a guest's phone numbers
type Phone struct {
	Number    string `json:"number"`
	IsDefault bool   `json:"is_default"`
	Type      string `json:"type"`
}

// Guest is an OwnerRez guest record
type Guest struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	Phones         []Phone        `json:"phones"`
}

// GuestPage is one page of the OwnerRez guests listing
type GuestPage struct {
	Items       []Guest `json:"items"`
	NextPageURL string  `json:"next_page_url,omitempty"`
}

// GuestUpdate is the body of PUT /guests/{id}
type GuestUpdate struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phones    []Phone `json:"phones"`
}
