// Package records defines the persisted record types, the input field
// schemas, and the error taxonomy shared by the server and client sides.
package records

// Customer is a persisted customer record. ID is the collection's identity
// key and is assigned by the allocator, never by the caller.
type Customer struct {
	ID           int64  `json:"id,omitempty"`
	LegalName    string `json:"legal_name"`
	RegisteredAt string `json:"registered_at"`
	TaxID        string `json:"tax_id"`
	FullName     string `json:"full_name"`
	Address      string `json:"address"`
	District     string `json:"district"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Phone        string `json:"phone"`
}

// Product is a persisted inventory record.
type Product struct {
	ID           int64  `json:"id,omitempty"`
	Item         string `json:"item"`
	Code         string `json:"code"`
	Quantity     int64  `json:"quantity"`
	SerialNumber string `json:"serial_number"`
	EnteredAt    string `json:"entered_at"`
	ExitedAt     string `json:"exited_at"`
	Description  string `json:"description"`
}

// Account is a stored login record. PasswordHash is an opaque bcrypt hash;
// the raw secret is never persisted.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
}
