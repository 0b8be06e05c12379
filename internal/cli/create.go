package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/atstracker/ats-tracking/internal/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type CreateOptions struct {
	GlobalOptions

	Output string
	fields applicationFlags
	app    model.JobApplication
}

func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCreate() *cobra.Command {
	o := DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new job application.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (o *CreateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.fields.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *CreateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	app := model.JobApplication{ApplicationDate: today()}
	partial, err := o.fields.Partial(cmd.Flags())
	if err != nil {
		return err
	}
	o.app = partial.Apply(app)

	// A response given without a date happened today.
	if o.app.HumanResponse != model.HumanResponseNone && o.app.HumanResponseDate == nil {
		d := today()
		o.app.HumanResponseDate = &d
	}
	return nil
}

func (o *CreateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return validateApplication(o.app)
}

func (o *CreateOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	created, err := s.JobApplication().Create(ctx, o.app)
	if err != nil {
		return fmt.Errorf("creating job application: %w", err)
	}
	return printApplications(o.out, o.Output, *created)
}

func validateApplication(app model.JobApplication) error {
	v := validator.NewValidator()
	v.Register(validator.NewJobApplicationValidationRules()...)
	return v.Struct(app)
}

// applicationFlags are the job application fields settable from the command line.
type applicationFlags struct {
	Source         string
	Company        string
	JobTitle       string
	Date           string
	TimeInvestment time.Duration
	Response       string
	ResponseDate   string
	Website        string
	Notes          string
	Clear          []string
}

const (
	timeInvestmentFlag = "time-investment"
	responseDateFlag   = "response-date"
	websiteFlag        = "website"
	notesFlag          = "notes"
)

var clearableFlags = []string{timeInvestmentFlag, responseDateFlag, websiteFlag, notesFlag}

func (f *applicationFlags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.Source, "source", f.Source, "Where the posting was found (LinkedIn, Indeed, referral...).")
	fs.StringVar(&f.Company, "company", f.Company, "The hiring company.")
	fs.StringVar(&f.JobTitle, "title", f.JobTitle, "The job title.")
	fs.StringVar(&f.Date, "date", f.Date, "Application date, YYYY-MM-DD. Defaults to today on create.")
	fs.DurationVar(&f.TimeInvestment, timeInvestmentFlag, f.TimeInvestment, "Time spent on the application, e.g. 1m23s.")
	fs.StringVarP(&f.Response, "response", "r", f.Response, "Human response (code or label).")
	fs.StringVar(&f.ResponseDate, responseDateFlag, f.ResponseDate, "Human response date, YYYY-MM-DD.")
	fs.StringVar(&f.Website, websiteFlag, f.Website, "Application website.")
	fs.StringVar(&f.Notes, notesFlag, f.Notes, "Notes on the application.")
}

func (f *applicationFlags) BindClear(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.Clear, "clear", f.Clear, fmt.Sprintf("Optional fields to empty. Any of: (%s).", strings.Join(clearableFlags, ", ")))
}

// Partial returns a field for every flag set on fs, in declaration order,
// followed by an empty field for every --clear entry. The result carries no id.
func (f *applicationFlags) Partial(fs *pflag.FlagSet) (model.PartialJobApplication, error) {
	partial := model.PartialJobApplication{}

	if fs.Changed("source") {
		partial = append(partial, model.SourceField(f.Source))
	}
	if fs.Changed("company") {
		partial = append(partial, model.CompanyField(f.Company))
	}
	if fs.Changed("title") {
		partial = append(partial, model.JobTitleField(f.JobTitle))
	}
	if fs.Changed("date") {
		d, err := model.ParseDate(f.Date)
		if err != nil {
			return nil, err
		}
		partial = append(partial, model.ApplicationDateField(d))
	}
	if fs.Changed(timeInvestmentFlag) {
		if f.TimeInvestment < 0 {
			return nil, fmt.Errorf("time investment cannot be negative")
		}
		d := f.TimeInvestment.Truncate(time.Second)
		partial = append(partial, model.TimeInvestmentField(&d))
	}
	if fs.Changed("response") {
		h, err := model.ParseHumanResponse(f.Response)
		if err != nil {
			return nil, err
		}
		partial = append(partial, model.HumanResponseField(h))
	}
	if fs.Changed(responseDateFlag) {
		d, err := model.ParseDate(f.ResponseDate)
		if err != nil {
			return nil, err
		}
		partial = append(partial, model.HumanResponseDateField(&d))
	}
	if fs.Changed(websiteFlag) {
		website := f.Website
		partial = append(partial, model.ApplicationWebsiteField(&website))
	}
	if fs.Changed(notesFlag) {
		notes := f.Notes
		partial = append(partial, model.NotesField(&notes))
	}

	for _, name := range f.Clear {
		if fs.Changed(name) {
			return nil, fmt.Errorf("--%s cannot be both set and cleared", name)
		}
		switch name {
		case timeInvestmentFlag:
			partial = append(partial, model.TimeInvestmentField(nil))
		case responseDateFlag:
			partial = append(partial, model.HumanResponseDateField(nil))
		case websiteFlag:
			partial = append(partial, model.ApplicationWebsiteField(nil))
		case notesFlag:
			partial = append(partial, model.NotesField(nil))
		default:
			return nil, fmt.Errorf("cannot clear %q, clearable fields are %s", name, strings.Join(clearableFlags, ", "))
		}
	}

	return partial, nil
}
