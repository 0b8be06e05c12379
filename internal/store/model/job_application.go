package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for dates on the wire and in the embedded store.
const DateLayout = "2006-01-02"

// JobApplication is a row of the job_applications table.
type JobApplication struct {
	// ID is assigned by the store on insert. Zero means not persisted yet.
	ID int `json:"id"`
	// Source is where the posting was found: LinkedIn, Indeed, referral...
	Source   string `json:"source" validate:"not_blank,max=255"`
	Company  string `json:"company" validate:"not_blank,max=255"`
	JobTitle string `json:"jobTitle" validate:"not_blank,max=255"`
	// ApplicationDate has no time of day.
	ApplicationDate time.Time `json:"applicationDate" validate:"required"`
	// TimeInvestment is the time spent filling out the application.
	TimeInvestment    *time.Duration `json:"timeInvestment,omitempty"`
	HumanResponse     HumanResponse  `json:"humanResponse" validate:"human_response"`
	HumanResponseDate *time.Time     `json:"humanResponseDate,omitempty"`
	// ApplicationWebsite is empty for easy-apply postings.
	ApplicationWebsite *string `json:"applicationWebsite,omitempty" validate:"omitnil,not_blank"`
	Notes              *string `json:"notes,omitempty"`
}

type JobApplicationList []JobApplication

func (j JobApplication) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

// Normalize truncates dates to calendar days and durations to whole seconds,
// which is the resolution both stores keep.
func (j JobApplication) Normalize() JobApplication {
	j.ApplicationDate = TruncateDate(j.ApplicationDate)
	if j.HumanResponseDate != nil {
		d := TruncateDate(*j.HumanResponseDate)
		j.HumanResponseDate = &d
	}
	if j.TimeInvestment != nil {
		d := j.TimeInvestment.Truncate(time.Second)
		j.TimeInvestment = &d
	}
	return j
}

// TruncateDate returns t's calendar date as midnight UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// HumanResponse is the employer's reply to an application.
type HumanResponse int

const (
	// HumanResponseNone means no reply yet.
	HumanResponseNone HumanResponse = iota
	HumanResponseRejection
	HumanResponseInterviewRequest
	HumanResponseInterviewedThenRejected
	HumanResponseJobOffer
)

var HumanResponses = []HumanResponse{
	HumanResponseNone,
	HumanResponseRejection,
	HumanResponseInterviewRequest,
	HumanResponseInterviewedThenRejected,
	HumanResponseJobOffer,
}

// Code is the value kept in the human_response column.
func (h HumanResponse) Code() string {
	switch h {
	case HumanResponseRejection:
		return "R"
	case HumanResponseInterviewRequest:
		return "I"
	case HumanResponseInterviewedThenRejected:
		return "IR"
	case HumanResponseJobOffer:
		return "J"
	default:
		return "N"
	}
}

func (h HumanResponse) String() string {
	switch h {
	case HumanResponseRejection:
		return "Rejection"
	case HumanResponseInterviewRequest:
		return "Interview request"
	case HumanResponseInterviewedThenRejected:
		return "Interviewed, then rejected"
	case HumanResponseJobOffer:
		return "Job offer"
	default:
		return "No response yet"
	}
}

// HumanResponseFromCode decodes a stored code. Unknown codes decode to HumanResponseNone.
func HumanResponseFromCode(code string) HumanResponse {
	h, err := ParseHumanResponse(code)
	if err != nil {
		return HumanResponseNone
	}
	return h
}

// ParseHumanResponse accepts a code or a label, case insensitive.
func ParseHumanResponse(s string) (HumanResponse, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "job offer", "j":
		return HumanResponseJobOffer, nil
	case "interviewed then rejected", "interviewed, then rejected", "ir":
		return HumanResponseInterviewedThenRejected, nil
	case "interview request", "i":
		return HumanResponseInterviewRequest, nil
	case "rejection", "r":
		return HumanResponseRejection, nil
	case "", "n", "none", "no response yet":
		return HumanResponseNone, nil
	default:
		return HumanResponseNone, fmt.Errorf("unknown human response %q", s)
	}
}

// Scan implements sql.Scanner. NULL is an error so that an unset column is
// never mistaken for a parsed "no response".
func (h *HumanResponse) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return fmt.Errorf("cannot decode NULL into a human response")
	case string:
		*h = HumanResponseFromCode(v)
	case []byte:
		*h = HumanResponseFromCode(string(v))
	default:
		return fmt.Errorf("cannot decode %T into a human response", src)
	}
	return nil
}

func (h HumanResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Code())
}

func (h *HumanResponse) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*h = HumanResponseFromCode(code)
	return nil
}
