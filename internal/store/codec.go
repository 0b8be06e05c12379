package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
)

// codec turns field values into the values bound to engine parameters.
// Decoding is shared by both engines and lives in the scanners below.
type codec interface {
	encode(f model.Field) interface{}
}

// postgresCodec binds dates as time.Time so pgx sends them as DATE.
type postgresCodec struct{}

func (postgresCodec) encode(f model.Field) interface{} {
	switch v := f.Value().(type) {
	case time.Time:
		return model.TruncateDate(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return model.TruncateDate(*v)
	default:
		return encodeCommon(f)
	}
}

// sqliteCodec binds dates as YYYY-MM-DD text, the format sqlite's date functions produce.
type sqliteCodec struct{}

func (sqliteCodec) encode(f model.Field) interface{} {
	switch v := f.Value().(type) {
	case time.Time:
		return v.Format(model.DateLayout)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(model.DateLayout)
	default:
		return encodeCommon(f)
	}
}

func encodeCommon(f model.Field) interface{} {
	switch v := f.Value().(type) {
	case model.HumanResponse:
		return v.Code()
	case *time.Duration:
		if v == nil {
			return nil
		}
		return int64(*v / time.Second)
	case *string:
		if v == nil {
			return nil
		}
		return *v
	default:
		return v
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJobApplication(row rowScanner) (model.JobApplication, error) {
	var app model.JobApplication
	err := row.Scan(
		&app.ID,
		&app.Source,
		&app.Company,
		&app.JobTitle,
		&dateScanner{column: "application_date", dst: &app.ApplicationDate},
		&durationScanner{dst: &app.TimeInvestment},
		&app.HumanResponse,
		&nullDateScanner{dst: &app.HumanResponseDate},
		&app.ApplicationWebsite,
		&app.Notes,
	)
	return app, err
}

func scanJobApplications(rows *sql.Rows) (model.JobApplicationList, error) {
	apps := model.JobApplicationList{}
	for rows.Next() {
		app, err := scanJobApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

type dateScanner struct {
	column string
	dst    *time.Time
}

func (d *dateScanner) Scan(src interface{}) error {
	if src == nil {
		return fmt.Errorf("cannot decode NULL into %s", d.column)
	}
	t, err := decodeDate(src)
	if err != nil {
		return fmt.Errorf("%s: %w", d.column, err)
	}
	*d.dst = t
	return nil
}

type nullDateScanner struct {
	dst **time.Time
}

func (d *nullDateScanner) Scan(src interface{}) error {
	if src == nil {
		*d.dst = nil
		return nil
	}
	t, err := decodeDate(src)
	if err != nil {
		return fmt.Errorf("human_response_date: %w", err)
	}
	*d.dst = &t
	return nil
}

func decodeDate(src interface{}) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return model.TruncateDate(v), nil
	case string:
		return parseStoredDate(v)
	case []byte:
		return parseStoredDate(string(v))
	default:
		return time.Time{}, fmt.Errorf("cannot decode %T into a date", src)
	}
}

func parseStoredDate(s string) (time.Time, error) {
	if len(s) > len(model.DateLayout) {
		s = s[:len(model.DateLayout)]
	}
	return model.ParseDate(s)
}

type durationScanner struct {
	dst **time.Duration
}

func (d *durationScanner) Scan(src interface{}) error {
	var seconds int64
	switch v := src.(type) {
	case nil:
		*d.dst = nil
		return nil
	case int64:
		seconds = v
	case float64:
		seconds = int64(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("time_investment: %w", err)
		}
		seconds = n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("time_investment: %w", err)
		}
		seconds = n
	default:
		return fmt.Errorf("cannot decode %T into time_investment", src)
	}
	duration := time.Duration(seconds) * time.Second
	*d.dst = &duration
	return nil
}
