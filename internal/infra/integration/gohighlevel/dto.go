package gohighlevel

type CreateContactInput struct {
	Email              string
	FirstName          string
	LastName           string
	Tags               []string
	DaysSinceLastVisit int
}

type createContactRequest struct {
	Email       string            `json:"email"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	LocationID  string            `json:"locationId"`
	Tags        []string          `json:"tags"`
	CustomField map[string]string `json:"customField,omitempty"`
}

type contactResponse struct {
	Contact *contactDTO `json:"contact"`
}

type contactDTO struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Tags      []string `json:"tags"`
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

// CustomFieldDaysSinceVisit is the GHL custom field key that carries the
// last-known days-since-last-visit value.
const CustomFieldDaysSinceVisit = "days_since_last_visit"
