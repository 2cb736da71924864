package records

import (
	"encoding/json"
)

// FieldKind is the semantic type of a record field.
type FieldKind int

const (
	Text FieldKind = iota
	Integer
)

// Field describes one recognized input field of a collection.
type Field struct {
	Name string
	Kind FieldKind
}

// Input field schemas, one entry per writable column. The id column is
// absent on purpose: identity keys come from the allocator and a client
// supplying one is an error, not a hint.
var (
	CustomerFields = []Field{
		{"legal_name", Text},
		{"registered_at", Text},
		{"tax_id", Text},
		{"full_name", Text},
		{"address", Text},
		{"district", Text},
		{"postal_code", Text},
		{"city", Text},
		{"region", Text},
		{"phone", Text},
	}

	ProductFields = []Field{
		{"item", Text},
		{"code", Text},
		{"quantity", Integer},
		{"serial_number", Text},
		{"entered_at", Text},
		{"exited_at", Text},
		{"description", Text},
	}
)

// checkFields verifies every key in raw is a recognized field. Missing
// fields are allowed and default to the zero value; unknown fields are
// rejected so schema drift between frontend and server surfaces early.
func checkFields(raw map[string]json.RawMessage, schema []Field) error {
	known := make(map[string]bool, len(schema))
	for _, f := range schema {
		known[f.Name] = true
	}
	for k := range raw {
		if !known[k] {
			return ErrValidation("unknown field %q", k)
		}
	}
	return nil
}

// DecodeCustomer parses an untrusted JSON body into a Customer, enforcing
// the customer field schema.
func DecodeCustomer(body []byte) (*Customer, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrValidation("invalid json body")
	}
	if err := checkFields(raw, CustomerFields); err != nil {
		return nil, err
	}
	var c Customer
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, ErrValidation("field has wrong type: %v", err)
	}
	return &c, nil
}

// DecodeProduct parses an untrusted JSON body into a Product, enforcing
// the product field schema.
func DecodeProduct(body []byte) (*Product, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrValidation("invalid json body")
	}
	if err := checkFields(raw, ProductFields); err != nil {
		return nil, err
	}
	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, ErrValidation("field has wrong type: %v", err)
	}
	return &p, nil
}
