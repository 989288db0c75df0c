// Package errs implements the error taxonomy of spec §7 as a typed carrier
// error, grounded on the teacher's internal/services/error_management_service.go
// EnhancedError shape (kind/message/status/stack), narrowed to the eight
// kinds this spec names.
package errs

import (
	"fmt"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// FetchError is the error carrier returned by the Fetch Router and
// propagated (never panicking) up through parsers/orchestrators per §7's
// "non-event, skip and continue" propagation policy.
type FetchError struct {
	Kind       models.CrawlErrorKindEnum
	Message    string
	HTTPStatus int
	Tier       models.FetchTierEnum
	Stack      string
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

func newErr(kind models.CrawlErrorKindEnum, msg string, err error) *FetchError {
	return &FetchError{Kind: kind, Message: msg, Err: err}
}

func Connection(msg string, err error) *FetchError { return newErr(models.CrawlErrorConnection, msg, err) }
func Timeout(msg string, err error) *FetchError    { return newErr(models.CrawlErrorTimeout, msg, err) }
func Blocked(msg string, status int) *FetchError {
	e := newErr(models.CrawlErrorBlocked, msg, nil)
	e.HTTPStatus = status
	return e
}
func AgeGate(msg string) *FetchError    { return newErr(models.CrawlErrorAgeGate, msg, nil) }
func RateLimit(msg string) *FetchError  { return newErr(models.CrawlErrorRateLimit, msg, nil) }
func Parse(msg string, err error) *FetchError { return newErr(models.CrawlErrorParse, msg, err) }
func API(msg string, err error) *FetchError   { return newErr(models.CrawlErrorAPI, msg, err) }
func Unknown(msg string, err error) *FetchError { return newErr(models.CrawlErrorUnknown, msg, err) }

// ClassifyHTTPStatus maps a response status to the §4.1 escalation
// vocabulary: >=500 or {403,429} are "failed" for escalation purposes.
func ClassifyHTTPStatus(status int) (blocked bool, serverError bool) {
	if status == 403 || status == 429 {
		return true, false
	}
	if status >= 500 {
		return false, true
	}
	return false, false
}
