package entity

// Default placeholders for booking rows with missing data
const (
	NotAvailable         = "N/A"
	DefaultBookingStatus = "Pending"
)

// BookingProperty is the property summary embedded in an OwnerRez booking
type BookingProperty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Booking is an OwnerRez reservation record
type Booking struct {
	ID          int64            `json:"id"`
	Arrival     string           `json:"arrival"`
	Departure   string           `json:"departure"`
	PropertyID  int64            `json:"property_id"`
	GuestID     int64            `json:"guest_id"`
	Status      string           `json:"status"`
	IsBlock     bool             `json:"is_block"`
	CreatedUTC  string           `json:"created_utc"`
	UpdatedUTC  string           `json:"updated_utc"`
	TotalAmount *float64         `json:"total_amount,omitempty"`
	Property    *BookingProperty `json:"property,omitempty"`
}

// BookingPage is one page of the OwnerRez bookings listing
type BookingPage struct {
	Items       []Booking `json:"items"`
	Total       int       `json:"total"`
	Limit       int       `json:"limit"`
	Offset      int       `json:"offset"`
	NextPageURL string    `json:"next_page_url,omitempty"`
}

// BookingQuery selects a page of bookings
type BookingQuery struct {
	Limit  int
	Offset int
	Since  string
}

// TransformedBooking is the flattened row shown in the bookings table
type TransformedBooking struct {
	ID           string `json:"id"`
	PersonName   string `json:"personName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PropertyName string `json:"propertyName"`
	Status       string `json:"status"`
	ApplyDate    string `json:"applyDate"`
	Price        string `json:"price"`
	Arrival      string `json:"arrival"`
	Departure    string `json:"departure"`
	CreatedUTC   string `json:"created_utc"`
	UpdatedUTC   string `json:"updated_utc"`
	GuestID      int64  `json:"guest_id"`
	PropertyID   int64  `json:"property_id"`
	Guest        *Guest `json:"guest,omitempty"`
}

// Pagination describes the page a booking listing came from
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// BookingListing is the response of the bookings listing
type BookingListing struct {
	Bookings   []TransformedBooking `json:"bookings"`
	Pagination Pagination           `json:"pagination"`
}
