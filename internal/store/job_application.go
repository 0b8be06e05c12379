package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const jobApplicationTable = "job_applications"

var jobApplicationColumns = []string{
	"id",
	"source",
	"company",
	"job_title",
	"application_date",
	"time_investment",
	"human_response",
	"human_response_date",
	"application_website",
	"notes",
}

// JobApplication is the storage contract for job applications. Both
// backends behave identically: missing records are never an error, reads
// return an empty list and writes become no-ops.
type JobApplication interface {
	List(ctx context.Context) (model.JobApplicationList, error)
	// ListPending returns the applications without a human response.
	ListPending(ctx context.Context) (model.JobApplicationList, error)
	// Get returns nil when no application has this id.
	Get(ctx context.Context, id int) (*model.JobApplication, error)
	// Search matches source, company or job title containing query, ignoring case.
	Search(ctx context.Context, query string) (model.JobApplicationList, error)
	ListByResponse(ctx context.Context, h model.HumanResponse) (model.JobApplicationList, error)
	SearchByResponse(ctx context.Context, query string, h model.HumanResponse) (model.JobApplicationList, error)
	// Create ignores app.ID and returns a copy carrying the generated one.
	Create(ctx context.Context, app model.JobApplication) (*model.JobApplication, error)
	// UpdateHumanResponse sets the response. A nil date means today, by the engine's clock.
	UpdateHumanResponse(ctx context.Context, id int, h model.HumanResponse, date *time.Time) error
	// Update replaces every non-id column of the application with app.ID.
	Update(ctx context.Context, app model.JobApplication) error
	// UpdatePartial changes only the columns named in partial.
	UpdatePartial(ctx context.Context, partial model.PartialJobApplication) error
	Delete(ctx context.Context, id int) error
}

// jobApplicationStore holds what both backends share. Each backend embeds it
// and adds the statements its engine spells differently.
type jobApplicationStore struct {
	db    *gorm.DB
	codec codec
	log   *zap.SugaredLogger
}

func newJobApplicationStore(db *gorm.DB, c codec) jobApplicationStore {
	return jobApplicationStore{db: db, codec: c, log: zap.S().Named("store")}
}

func (s *jobApplicationStore) List(ctx context.Context) (model.JobApplicationList, error) {
	return s.list(ctx, NewJobApplicationQueryFilter())
}

func (s *jobApplicationStore) ListPending(ctx context.Context) (model.JobApplicationList, error) {
	return s.ListByResponse(ctx, model.HumanResponseNone)
}

func (s *jobApplicationStore) Get(ctx context.Context, id int) (*model.JobApplication, error) {
	apps, err := s.list(ctx, NewJobApplicationQueryFilter().ByID(id))
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return &apps[0], nil
}

func (s *jobApplicationStore) Search(ctx context.Context, query string) (model.JobApplicationList, error) {
	return s.list(ctx, NewJobApplicationQueryFilter().ByText(query))
}

func (s *jobApplicationStore) ListByResponse(ctx context.Context, h model.HumanResponse) (model.JobApplicationList, error) {
	return s.list(ctx, NewJobApplicationQueryFilter().ByHumanResponse(h))
}

func (s *jobApplicationStore) SearchByResponse(ctx context.Context, query string, h model.HumanResponse) (model.JobApplicationList, error) {
	return s.list(ctx, NewJobApplicationQueryFilter().ByText(query).ByHumanResponse(h))
}

func (s *jobApplicationStore) Update(ctx context.Context, app model.JobApplication) error {
	return s.UpdatePartial(ctx, app.Fields())
}

func (s *jobApplicationStore) UpdatePartial(ctx context.Context, partial model.PartialJobApplication) error {
	id, changes, err := splitPartial(partial)
	if err != nil {
		return err
	}

	stmt, args := s.buildUpdate(id, changes)
	s.log.Debugw("updating job application", "id", id.Value(), "fields", len(changes))

	return s.db.WithContext(ctx).Exec(stmt, args...).Error
}

func (s *jobApplicationStore) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Exec("DELETE FROM job_applications WHERE id = ?", id).Error
}

func (s *jobApplicationStore) list(ctx context.Context, filter *JobApplicationQueryFilter) (model.JobApplicationList, error) {
	tx := s.db.WithContext(ctx).Table(jobApplicationTable).Select(jobApplicationColumns)
	for _, fn := range filter.QueryFn {
		tx = fn(tx)
	}

	rows, err := tx.Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobApplications(rows)
}

// buildUpdate writes UPDATE job_applications SET c1 = ?, c2 = ? WHERE id = ?.
// Column names come from model.FieldName and are quoted by the dialect;
// every value is a bind parameter.
func (s *jobApplicationStore) buildUpdate(id model.Field, changes []model.Field) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, len(changes)+1)

	sb.WriteString("UPDATE job_applications SET ")
	for i, f := range changes {
		if i > 0 {
			sb.WriteString(", ")
		}
		s.db.Dialector.QuoteTo(&sb, string(f.Name()))
		sb.WriteString(" = ?")
		args = append(args, s.codec.encode(f))
	}
	sb.WriteString(" WHERE id = ?")
	args = append(args, s.codec.encode(id))

	return sb.String(), args
}

// insertValues returns the column list, placeholders and bound values of an INSERT of app, id excluded.
func (s *jobApplicationStore) insertValues(app model.JobApplication) (string, string, []interface{}) {
	fields := app.Fields()[1:]
	columns := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, string(f.Name()))
		args = append(args, s.codec.encode(f))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(fields)), ", ")
	return strings.Join(columns, ", "), placeholders, args
}

// splitPartial checks that partial names exactly one id and at least one
// other field, all of them known columns. Nothing reaches the engine when it fails.
func splitPartial(partial model.PartialJobApplication) (model.Field, []model.Field, error) {
	var (
		id      model.Field
		idCount int
		changes = make([]model.Field, 0, len(partial))
	)
	for _, f := range partial {
		if !f.Name().IsValid() {
			return model.Field{}, nil, fmt.Errorf("%w %q", ErrUnknownField, f.Name())
		}
		if f.IsID() {
			id = f
			idCount++
			continue
		}
		changes = append(changes, f)
	}

	switch {
	case idCount == 0:
		return model.Field{}, nil, ErrNoIDField
	case idCount > 1:
		return model.Field{}, nil, ErrMultipleIDFields
	case len(changes) == 0:
		return model.Field{}, nil, ErrNoChanges
	}
	return id, changes, nil
}
