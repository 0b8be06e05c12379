package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"gorm.io/gorm"
)

//go:embed sql/postgres_table_definition.sql
var postgresTableDefinition string

// postgresJobApplicationStore talks to a networked PostgreSQL server.
type postgresJobApplicationStore struct {
	jobApplicationStore
}

// Make sure we conform to JobApplication interface
var _ JobApplication = (*postgresJobApplicationStore)(nil)

func NewPostgresJobApplicationStore(db *gorm.DB) *postgresJobApplicationStore {
	return &postgresJobApplicationStore{jobApplicationStore: newJobApplicationStore(db, postgresCodec{})}
}

func (s *postgresJobApplicationStore) InitialMigration() error {
	return s.db.Exec(postgresTableDefinition).Error
}

func (s *postgresJobApplicationStore) Create(ctx context.Context, app model.JobApplication) (*model.JobApplication, error) {
	columns, placeholders, args := s.insertValues(app)
	stmt := fmt.Sprintf("INSERT INTO job_applications (%s) VALUES (%s) RETURNING id", columns, placeholders)

	var id int
	if err := s.db.WithContext(ctx).Raw(stmt, args...).Row().Scan(&id); err != nil {
		return nil, err
	}

	app.ID = id
	s.log.Debugw("created job application", "id", id)
	return &app, nil
}

// UpdateHumanResponse defaults the date to the server's CURRENT_DATE.
func (s *postgresJobApplicationStore) UpdateHumanResponse(ctx context.Context, id int, h model.HumanResponse, date *time.Time) error {
	return s.db.WithContext(ctx).Exec(
		"UPDATE job_applications SET human_response = ?, human_response_date = COALESCE(CAST(? AS DATE), CURRENT_DATE) WHERE id = ?",
		s.codec.encode(model.HumanResponseField(h)),
		s.codec.encode(model.HumanResponseDateField(date)),
		s.codec.encode(model.IDField(id)),
	).Error
}
