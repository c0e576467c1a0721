package entities

import (
	"strings"
	"time"
)

// Contact represents a contact entity in the database
type Contact struct {
	ID        string    `json:"id"` // UUID
	Name      string    `json:"name"`
	Email     *string   `json:"email"` // Pointer allows nil (not provided)
	Phone     *string   `json:"phone"`
	UserID    string    `json:"user_id"` // Owner, UUID
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var vcardEscaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\r\n", `\n`, "\n", `\n`)

// VCard renders the contact as a vCard 3.0 card.
func (c *Contact) VCard() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	b.WriteString("FN:" + vcardEscaper.Replace(c.Name) + "\r\n")
	b.WriteString("N:" + vcardEscaper.Replace(c.Name) + ";;;;\r\n")
	if c.Email != nil && *c.Email != "" {
		b.WriteString("EMAIL;TYPE=INTERNET:" + vcardEscaper.Replace(*c.Email) + "\r\n")
	}
	if c.Phone != nil && *c.Phone != "" {
		b.WriteString("TEL;TYPE=CELL:" + vcardEscaper.Replace(*c.Phone) + "\r\n")
	}
	b.WriteString("END:VCARD\r\n")
	return b.String()
}
