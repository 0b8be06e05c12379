package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"gorm.io/gorm"
)

//go:embed sql/sqlite_table_definition.sql
var sqliteTableDefinition string

// sqliteJobApplicationStore works on an embedded single-file database.
type sqliteJobApplicationStore struct {
	jobApplicationStore
}

// Make sure we conform to JobApplication interface
var _ JobApplication = (*sqliteJobApplicationStore)(nil)

func NewSqliteJobApplicationStore(db *gorm.DB) *sqliteJobApplicationStore {
	return &sqliteJobApplicationStore{jobApplicationStore: newJobApplicationStore(db, sqliteCodec{})}
}

func (s *sqliteJobApplicationStore) InitialMigration() error {
	return s.db.Exec(sqliteTableDefinition).Error
}

// Create reads the new id back with last_insert_rowid(), which is per
// connection, so both statements run on one pinned connection.
func (s *sqliteJobApplicationStore) Create(ctx context.Context, app model.JobApplication) (*model.JobApplication, error) {
	columns, placeholders, args := s.insertValues(app)
	stmt := fmt.Sprintf("INSERT INTO job_applications (%s) VALUES (%s)", columns, placeholders)

	var id int
	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec(stmt, args...).Error; err != nil {
			return err
		}
		return conn.Raw("SELECT last_insert_rowid()").Row().Scan(&id)
	})
	if err != nil {
		return nil, err
	}

	app.ID = id
	s.log.Debugw("created job application", "id", id)
	return &app, nil
}

// UpdateHumanResponse defaults the date to today on the local clock, which
// for an embedded engine is the engine's clock.
func (s *sqliteJobApplicationStore) UpdateHumanResponse(ctx context.Context, id int, h model.HumanResponse, date *time.Time) error {
	return s.db.WithContext(ctx).Exec(
		"UPDATE job_applications SET human_response = ?, human_response_date = COALESCE(?, date('now', 'localtime')) WHERE id = ?",
		s.codec.encode(model.HumanResponseField(h)),
		s.codec.encode(model.HumanResponseDateField(date)),
		s.codec.encode(model.IDField(id)),
	).Error
}
