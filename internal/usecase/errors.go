package usecase

// DomainError: the request itself is the problem (validation, overlap).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: an infrastructure failure we could not work around.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrSyncAlreadyRunning is returned when a trigger overlaps a run still in
// progress. Overlapping runs would race create-vs-update on the same contact.
var ErrSyncAlreadyRunning = &DomainError{
	Code:    "SYNC_IN_PROGRESS",
	Message: "a sync run is already in progress",
}
