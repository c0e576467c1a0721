package models

import (
	"bytes"
	"encoding/json"
)

// ContactRequest is the body of POST /contacts and PUT /contacts/:id.
// Absent email/phone are stored as null.
type ContactRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ContactPatchRequest is the body of PATCH /contacts/:id. Only fields present
// in the JSON document are applied.
type ContactPatchRequest struct {
	Name  OptionalString `json:"name"`
	Email OptionalString `json:"email"`
	Phone OptionalString `json:"phone"`
}

// Empty reports whether no field was supplied.
func (r ContactPatchRequest) Empty() bool {
	return !r.Name.Set && !r.Email.Set && !r.Phone.Set
}

// OptionalString distinguishes an absent JSON field (Set=false) from an
// explicit null (Set=true, Value=nil) and a string value.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only called when the field is present in the document.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// ContactFilter holds the optional list filters from the query string.
type ContactFilter struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}
