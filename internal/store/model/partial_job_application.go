package model

import (
	"time"
)

// FieldName is a job_applications column. The set is closed: values only come
// from the Field constructors below.
type FieldName string

const (
	FieldID                 FieldName = "id"
	FieldSource             FieldName = "source"
	FieldCompany            FieldName = "company"
	FieldJobTitle           FieldName = "job_title"
	FieldApplicationDate    FieldName = "application_date"
	FieldTimeInvestment     FieldName = "time_investment"
	FieldHumanResponse      FieldName = "human_response"
	FieldHumanResponseDate  FieldName = "human_response_date"
	FieldApplicationWebsite FieldName = "application_website"
	FieldNotes              FieldName = "notes"
)

// IsValid reports whether n is one of the job_applications columns above.
func (n FieldName) IsValid() bool {
	switch n {
	case FieldID, FieldSource, FieldCompany, FieldJobTitle, FieldApplicationDate,
		FieldTimeInvestment, FieldHumanResponse, FieldHumanResponseDate,
		FieldApplicationWebsite, FieldNotes:
		return true
	}
	return false
}

// Field is one entry of a partial job application. The value type is fixed by
// the field name:
//
//	id                  int
//	source, company,
//	job_title           string
//	application_date    time.Time
//	time_investment     *time.Duration
//	human_response      HumanResponse
//	human_response_date *time.Time
//	application_website,
//	notes               *string
//
// A nil pointer for a nullable field clears the column.
type Field struct {
	name  FieldName
	value interface{}
}

func (f Field) Name() FieldName {
	return f.name
}

func (f Field) Value() interface{} {
	return f.value
}

func (f Field) IsID() bool {
	return f.name == FieldID
}

func IDField(id int) Field {
	return Field{name: FieldID, value: id}
}

func SourceField(source string) Field {
	return Field{name: FieldSource, value: source}
}

func CompanyField(company string) Field {
	return Field{name: FieldCompany, value: company}
}

func JobTitleField(title string) Field {
	return Field{name: FieldJobTitle, value: title}
}

func ApplicationDateField(date time.Time) Field {
	return Field{name: FieldApplicationDate, value: date}
}

func TimeInvestmentField(d *time.Duration) Field {
	return Field{name: FieldTimeInvestment, value: d}
}

func HumanResponseField(h HumanResponse) Field {
	return Field{name: FieldHumanResponse, value: h}
}

func HumanResponseDateField(date *time.Time) Field {
	return Field{name: FieldHumanResponseDate, value: date}
}

func ApplicationWebsiteField(website *string) Field {
	return Field{name: FieldApplicationWebsite, value: website}
}

func NotesField(notes *string) Field {
	return Field{name: FieldNotes, value: notes}
}

// PartialJobApplication is an ordered set of fields to change on one record.
// It must hold exactly one IDField; the store rejects it otherwise.
type PartialJobApplication []Field

// NewPartialJobApplication starts a partial update of the record with the given id.
func NewPartialJobApplication(id int, fields ...Field) PartialJobApplication {
	p := make(PartialJobApplication, 0, len(fields)+1)
	p = append(p, IDField(id))
	return append(p, fields...)
}

// Fields lists every field of app, id first, in column order.
func (j JobApplication) Fields() PartialJobApplication {
	return PartialJobApplication{
		IDField(j.ID),
		SourceField(j.Source),
		CompanyField(j.Company),
		JobTitleField(j.JobTitle),
		ApplicationDateField(j.ApplicationDate),
		TimeInvestmentField(j.TimeInvestment),
		HumanResponseField(j.HumanResponse),
		HumanResponseDateField(j.HumanResponseDate),
		ApplicationWebsiteField(j.ApplicationWebsite),
		NotesField(j.Notes),
	}
}

// Apply returns a copy of j with every non-id field of p applied.
func (p PartialJobApplication) Apply(j JobApplication) JobApplication {
	for _, f := range p {
		switch f.name {
		case FieldSource:
			j.Source = f.value.(string)
		case FieldCompany:
			j.Company = f.value.(string)
		case FieldJobTitle:
			j.JobTitle = f.value.(string)
		case FieldApplicationDate:
			j.ApplicationDate = f.value.(time.Time)
		case FieldTimeInvestment:
			j.TimeInvestment = f.value.(*time.Duration)
		case FieldHumanResponse:
			j.HumanResponse = f.value.(HumanResponse)
		case FieldHumanResponseDate:
			j.HumanResponseDate = f.value.(*time.Time)
		case FieldApplicationWebsite:
			j.ApplicationWebsite = f.value.(*string)
		case FieldNotes:
			j.Notes = f.value.(*string)
		}
	}
	return j
}
