package pike13

import (
	"fmt"
	"time"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
)

// DecodeClientRow maps a positional report row onto a ClientRecord. The row
// must have exactly as many values as the requested field list; anything
// else means the upstream field order changed and positional decoding would
// silently read garbage.
func DecodeClientRow(row []interface{}) (*entity.ClientRecord, error) {
	if len(row) != len(ClientReportFields) {
		return nil, fmt.Errorf("row has %d fields, expected %d (%v)", len(row), len(ClientReportFields), ClientReportFields)
	}

	record := &entity.ClientRecord{
		PersonID: stringValue(row[0]),
		Email:    stringValue(row[1]),
		FullName: stringValue(row[2]),
	}

	if s := stringValue(row[3]); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			record.LastVisitDate = &t
		}
	}

	if days, ok := intValue(row[4]); ok {
		record.DaysSinceLastVisit = &days
	}

	return record, nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func intValue(v interface{}) (int, bool) {
	switch val := v.(type) {
	case float64:
		// encoding/json decodes every report number as float64
		return int(val), true
	case int:
		return val, true
	default:
		return 0, false
	}
}
