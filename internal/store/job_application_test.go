package store_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/atstracker/ats-tracking/internal/config"
	"github.com/atstracker/ats-tracking/internal/store"
	"github.com/atstracker/ats-tracking/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertJobApplicationStm = `INSERT INTO job_applications (source, company, job_title, application_date, human_response)
VALUES (?, ?, ?, ?, ?)`
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func newJobApplication(source string) model.JobApplication {
	return model.JobApplication{
		Source:             source,
		Company:            "Test company",
		JobTitle:           "Test job title",
		ApplicationDate:    date(2000, time.January, 1),
		TimeInvestment:     ptr(83 * time.Second),
		HumanResponse:      model.HumanResponseNone,
		ApplicationWebsite: ptr("http://example.com"),
		Notes:              ptr("Test notes\nWith newline"),
	}
}

// openSqlite returns a store on a fresh sqlite file.
func openSqlite() (store.Store, *gorm.DB) {
	cfg := config.NewDefault()
	cfg.Database.Type = config.SqliteType
	cfg.Database.Path = filepath.Join(GinkgoT().TempDir(), "ats-test.db3")

	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())
	return store.NewStore(db), db
}

// openPostgres returns a store on the database configured by the DB_* variables,
// with an emptied job_applications table. Skipped unless DB_TYPE=pgsql.
func openPostgres() (store.Store, *gorm.DB) {
	if os.Getenv("DB_TYPE") != config.PostgresType {
		Skip("DB_TYPE is not pgsql")
	}
	cfg, err := config.New()
	Expect(err).To(BeNil())

	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())
	s := store.NewStore(db)
	Expect(s.InitialMigration()).To(Succeed())
	Expect(db.Exec("TRUNCATE job_applications RESTART IDENTITY").Error).To(BeNil())
	return s, db
}

var _ = Describe("job application store", func() {
	for _, backend := range []struct {
		name string
		open func() (store.Store, *gorm.DB)
	}{
		{name: "sqlite", open: openSqlite},
		{name: "postgres", open: openPostgres},
	} {
		Context(backend.name, func() {
			jobApplicationStoreSpecs(backend.open)
		})
	}
})

func jobApplicationStoreSpecs(open func() (store.Store, *gorm.DB)) {
	var (
		ctx    context.Context
		s      store.Store
		repo   store.JobApplication
		gormdb *gorm.DB
	)

	BeforeEach(func() {
		ctx = context.TODO()
		s, gormdb = open()
		repo = s.JobApplication()
	})

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Context("read", func() {
		It("returns nothing from an empty table", func() {
			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(BeEmpty())

			app, err := repo.Get(ctx, 1)
			Expect(err).To(BeNil())
			Expect(app).To(BeNil())
		})

		It("reads a row written outside the store", func() {
			tx := gormdb.Exec(insertJobApplicationStm, "Indeed", "Initech", "Engineer", "2000-01-02", "R")
			Expect(tx.Error).To(BeNil())

			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(HaveLen(1))
			Expect(apps[0].Source).To(Equal("Indeed"))
			Expect(apps[0].ApplicationDate).To(Equal(date(2000, time.January, 2)))
			Expect(apps[0].HumanResponse).To(Equal(model.HumanResponseRejection))
			Expect(apps[0].TimeInvestment).To(BeNil())
			Expect(apps[0].Notes).To(BeNil())
		})

		It("decodes an unknown response code as no response", func() {
			tx := gormdb.Exec(insertJobApplicationStm, "Indeed", "Initech", "Engineer", "2000-01-02", "X")
			Expect(tx.Error).To(BeNil())

			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(HaveLen(1))
			Expect(apps[0].HumanResponse).To(Equal(model.HumanResponseNone))
		})
	})

	Context("Create", func() {
		It("round trips every field", func() {
			app := newJobApplication("LinkedIn")
			app.HumanResponse = model.HumanResponseInterviewedThenRejected
			app.HumanResponseDate = ptr(date(2000, time.February, 3))

			created, err := repo.Create(ctx, app)
			Expect(err).To(BeNil())
			Expect(created.ID).NotTo(BeZero())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(got).NotTo(BeNil())

			app.ID = created.ID
			Expect(*got).To(Equal(app))
			Expect(*created).To(Equal(app))
		})

		It("ignores the incoming id and numbers records in order", func() {
			a := newJobApplication("LinkedIn")
			a.ID = 42

			first, err := repo.Create(ctx, a)
			Expect(err).To(BeNil())
			Expect(first.ID).To(Equal(1))

			second, err := repo.Create(ctx, a)
			Expect(err).To(BeNil())
			Expect(second.ID).To(Equal(2))

			missing, err := repo.Get(ctx, 42)
			Expect(err).To(BeNil())
			Expect(missing).To(BeNil())
		})

		It("keeps nullable fields empty", func() {
			app := model.JobApplication{
				Source:          "Referral",
				Company:         "Acme",
				JobTitle:        "SRE",
				ApplicationDate: date(2024, time.June, 30),
			}
			created, err := repo.Create(ctx, app)
			Expect(err).To(BeNil())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(got.TimeInvestment).To(BeNil())
			Expect(got.HumanResponseDate).To(BeNil())
			Expect(got.ApplicationWebsite).To(BeNil())
			Expect(got.Notes).To(BeNil())
		})
	})

	Context("UpdatePartial", func() {
		var a, b *model.JobApplication

		BeforeEach(func() {
			var err error
			a, err = repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())
			b, err = repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())
			Expect(a.ID).To(Equal(1))
			Expect(b.ID).To(Equal(2))
		})

		It("changes only the named field of the named record", func() {
			err := repo.UpdatePartial(ctx, model.NewPartialJobApplication(2, model.CompanyField("Acme")))
			Expect(err).To(BeNil())

			gotA, err := repo.Get(ctx, 1)
			Expect(err).To(BeNil())
			Expect(*gotA).To(Equal(*a))

			gotB, err := repo.Get(ctx, 2)
			Expect(err).To(BeNil())
			want := *b
			want.Company = "Acme"
			Expect(*gotB).To(Equal(want))
		})

		It("sets several fields whatever their order", func() {
			partial := model.PartialJobApplication{
				model.HumanResponseDateField(ptr(date(2000, time.March, 4))),
				model.JobTitleField("Staff engineer"),
				model.IDField(2),
				model.HumanResponseField(model.HumanResponseJobOffer),
				model.TimeInvestmentField(ptr(2 * time.Hour)),
				model.ApplicationDateField(date(1999, time.December, 31)),
			}
			Expect(repo.UpdatePartial(ctx, partial)).To(Succeed())

			got, err := repo.Get(ctx, 2)
			Expect(err).To(BeNil())
			Expect(*got).To(Equal(partial.Apply(*b)))
		})

		It("clears a nullable field given an explicit empty value", func() {
			err := repo.UpdatePartial(ctx, model.NewPartialJobApplication(1,
				model.NotesField(nil),
				model.ApplicationWebsiteField(nil),
				model.TimeInvestmentField(nil),
			))
			Expect(err).To(BeNil())

			got, err := repo.Get(ctx, 1)
			Expect(err).To(BeNil())
			Expect(got.Notes).To(BeNil())
			Expect(got.ApplicationWebsite).To(BeNil())
			Expect(got.TimeInvestment).To(BeNil())
			Expect(got.Source).To(Equal("LinkedIn"))
		})

		It("is a no-op for an unknown id", func() {
			err := repo.UpdatePartial(ctx, model.NewPartialJobApplication(99, model.CompanyField("Acme")))
			Expect(err).To(BeNil())

			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(Equal(model.JobApplicationList{*a, *b}))
		})

		It("stores values as data, never as SQL", func() {
			injection := "x'; DROP TABLE job_applications; --"
			Expect(repo.UpdatePartial(ctx, model.NewPartialJobApplication(1, model.SourceField(injection)))).To(Succeed())

			got, err := repo.Get(ctx, 1)
			Expect(err).To(BeNil())
			Expect(got.Source).To(Equal(injection))
		})

		DescribeTable("rejects malformed requests before touching the table",
			func(partial model.PartialJobApplication, expected error) {
				err := repo.UpdatePartial(ctx, partial)
				Expect(err).To(MatchError(expected))

				apps, err := repo.List(ctx)
				Expect(err).To(BeNil())
				Expect(apps).To(Equal(model.JobApplicationList{*a, *b}))
			},
			Entry("empty", model.PartialJobApplication{}, store.ErrNoIDField),
			Entry("one field without id", model.PartialJobApplication{model.CompanyField("Acme")}, store.ErrNoIDField),
			Entry("many fields without id", model.PartialJobApplication{
				model.CompanyField("Acme"),
				model.SourceField("Indeed"),
				model.NotesField(nil),
			}, store.ErrNoIDField),
			Entry("two ids", model.PartialJobApplication{model.IDField(1), model.IDField(2), model.CompanyField("Acme")}, store.ErrMultipleIDFields),
			Entry("same id twice", model.PartialJobApplication{model.IDField(1), model.CompanyField("Acme"), model.IDField(1)}, store.ErrMultipleIDFields),
			Entry("two ids and nothing else", model.PartialJobApplication{model.IDField(1), model.IDField(2)}, store.ErrMultipleIDFields),
			Entry("id only", model.PartialJobApplication{model.IDField(1)}, store.ErrNoChanges),
			Entry("zero value field", model.PartialJobApplication{model.IDField(1), model.CompanyField("Acme"), {}}, store.ErrUnknownField),
		)

		It("reports the same messages on every backend", func() {
			Expect(repo.UpdatePartial(ctx, model.PartialJobApplication{})).To(MatchError("no id field"))
			Expect(repo.UpdatePartial(ctx, model.PartialJobApplication{model.IDField(1), model.IDField(1)})).To(MatchError("multiple id fields"))
			Expect(repo.UpdatePartial(ctx, model.PartialJobApplication{model.IDField(1)})).To(MatchError("no changes"))
		})
	})

	Context("Update", func() {
		It("replaces every field but the id", func() {
			created, err := repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())

			replacement := model.JobApplication{
				ID:                created.ID,
				Source:            "Indeed",
				Company:           "Acme",
				JobTitle:          "Manager",
				ApplicationDate:   date(2010, time.October, 10),
				HumanResponse:     model.HumanResponseRejection,
				HumanResponseDate: ptr(date(2010, time.November, 1)),
			}
			Expect(repo.Update(ctx, replacement)).To(Succeed())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(*got).To(Equal(replacement))
		})

		It("is a no-op for an unknown id", func() {
			created, err := repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())

			other := newJobApplication("Indeed")
			other.ID = created.ID + 1
			Expect(repo.Update(ctx, other)).To(Succeed())

			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(Equal(model.JobApplicationList{*created}))
		})
	})

	Context("UpdateHumanResponse", func() {
		var created *model.JobApplication

		BeforeEach(func() {
			var err error
			created, err = repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())
		})

		It("sets the response and the given date", func() {
			err := repo.UpdateHumanResponse(ctx, created.ID, model.HumanResponseInterviewRequest, ptr(date(2000, time.January, 15)))
			Expect(err).To(BeNil())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(got.HumanResponse).To(Equal(model.HumanResponseInterviewRequest))
			Expect(got.HumanResponseDate).To(Equal(ptr(date(2000, time.January, 15))))
			Expect(got.Company).To(Equal(created.Company))
		})

		It("defaults the date to today", func() {
			Expect(repo.UpdateHumanResponse(ctx, created.ID, model.HumanResponseRejection, nil)).To(Succeed())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(got.HumanResponseDate).NotTo(BeNil())
			// the engine clock may sit in another time zone than the test
			Expect(*got.HumanResponseDate).To(BeTemporally("~", model.TruncateDate(time.Now()), 24*time.Hour))
		})

		It("is a no-op for an unknown id", func() {
			Expect(repo.UpdateHumanResponse(ctx, created.ID+1, model.HumanResponseJobOffer, nil)).To(Succeed())

			got, err := repo.Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(*got).To(Equal(*created))
		})
	})

	Context("search", func() {
		BeforeEach(func() {
			for _, app := range []model.JobApplication{
				{Source: "MarkerBoard", Company: "One", JobTitle: "Dev", HumanResponse: model.HumanResponseNone},
				{Source: "LinkedIn", Company: "The MARKER company", JobTitle: "Dev", HumanResponse: model.HumanResponseRejection},
				{Source: "Indeed", Company: "Two", JobTitle: "Senior mArKeR engineer", HumanResponse: model.HumanResponseNone},
				{Source: "Indeed", Company: "Three", JobTitle: "Dev", HumanResponse: model.HumanResponseNone},
				{Source: "Referral", Company: "100% remote", JobTitle: "Dev_Ops", HumanResponse: model.HumanResponseJobOffer},
				{Source: "Welcome to the Jungle", Company: "ÉCOLE Polytechnique", JobTitle: "Chargé de recherche", HumanResponse: model.HumanResponseJobOffer},
			} {
				app.ApplicationDate = date(2020, time.May, 1)
				if app.HumanResponse != model.HumanResponseNone {
					app.HumanResponseDate = ptr(date(2020, time.May, 2))
				}
				_, err := repo.Create(ctx, app)
				Expect(err).To(BeNil())
			}
		})

		companies := func(apps model.JobApplicationList) []string {
			names := make([]string, 0, len(apps))
			for _, a := range apps {
				names = append(names, a.Company)
			}
			return names
		}

		It("matches source, company and job title ignoring case", func() {
			apps, err := repo.Search(ctx, "marker")
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("One", "The MARKER company", "Two"))
		})

		It("ignores the case of non-ASCII letters", func() {
			for _, query := range []string{"école", "ÉCOLE", "École poly", "CHARGÉ"} {
				apps, err := repo.Search(ctx, query)
				Expect(err).To(BeNil())
				Expect(companies(apps)).To(ConsistOf("ÉCOLE Polytechnique"), query)
			}
		})

		It("treats LIKE wildcards in the query literally", func() {
			apps, err := repo.Search(ctx, "0%")
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("100% remote"))

			apps, err = repo.Search(ctx, "v_o")
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("100% remote"))

			apps, err = repo.Search(ctx, "%")
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("100% remote"))
		})

		It("lists by response", func() {
			apps, err := repo.ListByResponse(ctx, model.HumanResponseRejection)
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("The MARKER company"))

			apps, err = repo.ListByResponse(ctx, model.HumanResponseInterviewRequest)
			Expect(err).To(BeNil())
			Expect(apps).To(BeEmpty())
		})

		It("lists pending applications", func() {
			apps, err := repo.ListPending(ctx)
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("One", "Two", "Three"))
		})

		It("searches within a response", func() {
			apps, err := repo.SearchByResponse(ctx, "MARKER", model.HumanResponseNone)
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("One", "Two"))

			apps, err = repo.SearchByResponse(ctx, "marker", model.HumanResponseJobOffer)
			Expect(err).To(BeNil())
			Expect(apps).To(BeEmpty())

			apps, err = repo.SearchByResponse(ctx, "école", model.HumanResponseJobOffer)
			Expect(err).To(BeNil())
			Expect(companies(apps)).To(ConsistOf("ÉCOLE Polytechnique"))
		})
	})

	Context("Delete", func() {
		It("removes only the given record", func() {
			a, err := repo.Create(ctx, newJobApplication("LinkedIn"))
			Expect(err).To(BeNil())
			b, err := repo.Create(ctx, newJobApplication("Indeed"))
			Expect(err).To(BeNil())

			Expect(repo.Delete(ctx, a.ID)).To(Succeed())

			got, err := repo.Get(ctx, a.ID)
			Expect(err).To(BeNil())
			Expect(got).To(BeNil())

			apps, err := repo.List(ctx)
			Expect(err).To(BeNil())
			Expect(apps).To(Equal(model.JobApplicationList{*b}))
		})

		It("is a no-op for an unknown id", func() {
			Expect(repo.Delete(ctx, 1234)).To(Succeed())
		})
	})
}

var _ = Describe("sqlite file", func() {
	It("keeps records across reopening", func() {
		cfg := config.NewDefault()
		cfg.Database.Type = config.SqliteType
		cfg.Database.Path = filepath.Join(GinkgoT().TempDir(), "persist.db3")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		s := store.NewStore(db)
		created, err := s.JobApplication().Create(context.TODO(), newJobApplication("LinkedIn"))
		Expect(err).To(BeNil())
		Expect(s.Close()).To(Succeed())

		Expect(cfg.Database.Path).To(BeAnExistingFile())

		db, err = store.InitDB(cfg)
		Expect(err).To(BeNil())
		s = store.NewStore(db)
		defer s.Close()
		Expect(s.InitialMigration()).To(Succeed())

		got, err := s.JobApplication().Get(context.TODO(), created.ID)
		Expect(err).To(BeNil())
		Expect(got).NotTo(BeNil())
		Expect(*got).To(Equal(*created))
	})

	It("defaults to a file in the home directory", func() {
		home, err := os.UserHomeDir()
		Expect(err).To(BeNil())
		Expect(store.SqlitePath("")).To(Equal(filepath.Join(home, "ats-tracking.db3")))
		Expect(store.SqlitePath("/tmp/x.db3")).To(Equal("/tmp/x.db3"))
	})
})
