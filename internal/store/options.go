package store

import (
	"strings"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type JobApplicationQueryFilter BaseQuerier

func NewJobApplicationQueryFilter() *JobApplicationQueryFilter {
	return &JobApplicationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobApplicationQueryFilter) ByID(id int) *JobApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	})
	return qf
}

// ByText matches source, company or job title containing query, ignoring case.
func (qf *JobApplicationQueryFilter) ByText(query string) *JobApplicationQueryFilter {
	pattern := likePattern(query)
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			`(LOWER(source) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\' OR LOWER(job_title) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	})
	return qf
}

func (qf *JobApplicationQueryFilter) ByHumanResponse(h model.HumanResponse) *JobApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("human_response = ?", h.Code())
	})
	return qf
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lowercases query and wraps it in wildcards, escaping LIKE metacharacters.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
