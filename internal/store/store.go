package store

import (
	"gorm.io/gorm"
)

type Store interface {
	JobApplication() JobApplication
	InitialMigration() error
	Close() error
}

// backend is a JobApplication store that also knows its engine's DDL.
type backend interface {
	JobApplication
	InitialMigration() error
}

type DataStore struct {
	db             *gorm.DB
	jobApplication backend
}

// NewStore picks the backend matching the dialect db was opened with.
func NewStore(db *gorm.DB) Store {
	var b backend
	switch db.Dialector.Name() {
	case "postgres":
		b = NewPostgresJobApplicationStore(db)
	default:
		b = NewSqliteJobApplicationStore(db)
	}
	return &DataStore{db: db, jobApplication: b}
}

func (s *DataStore) JobApplication() JobApplication {
	return s.jobApplication
}

// InitialMigration creates the job_applications table if it does not exist yet.
func (s *DataStore) InitialMigration() error {
	return s.jobApplication.InitialMigration()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
