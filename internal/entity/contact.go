package entity

import "strings"

// Contact is the CRM-side record, keyed by email. GoHighLevel allows
// duplicate emails, but this system treats email as a unique business key
// and always looks up before writing.
type Contact struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Tags      []string
}

// HasTag checks for a label on the contact, case-insensitive the way the
// GHL UI treats tags.
func (c *Contact) HasTag(label string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, label) {
			return true
		}
	}
	return false
}
