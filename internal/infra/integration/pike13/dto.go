package pike13

// ClientReportFields is the field list requested from the client report,
// in order. Row decoding is positional, so this order is the schema.
var ClientReportFields = []string{
	"person_id",
	"email",
	"full_name",
	"last_visit_date",
	"days_since_last_visit",
}

// PlanReportFields is the field list for the per-person plan query.
var PlanReportFields = []string{
	"person_id",
	"plan_available",
	"plan_on_hold",
	"plan_canceled",
	"plan_ended",
	"plan_exhausted",
}

type FilterPredicate struct {
	Field string      `json:"field"`
	Op    string      `json:"op"` // eq, gt, lt
	Value interface{} `json:"value"`
}

type ReportQuery struct {
	Fields        []string
	Filter        []FilterPredicate
	Limit         int
	StartingAfter string // opaque cursor from the previous page
}

type reportQueryRequest struct {
	Fields []string          `json:"fields"`
	Filter []FilterPredicate `json:"filter,omitempty"`
	Page   reportQueryPage   `json:"page"`
}

type reportQueryPage struct {
	Limit         int    `json:"limit"`
	StartingAfter string `json:"starting_after,omitempty"`
}

// ReportPage is one page of positional rows. Each row is a tuple matching
// the requested field list, not a keyed object.
type ReportPage struct {
	Rows    [][]interface{} `json:"rows"`
	HasMore bool            `json:"has_more"`
	LastKey string          `json:"last_key"`
}
