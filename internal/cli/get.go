package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atstracker/ats-tracking/internal/store"
	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type GetOptions struct {
	GlobalOptions

	Output   string
	Pending  bool
	Search   string
	Response string

	id       *int
	response *model.HumanResponse
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get [ID]",
		Short: "Display one or many job applications.",
		Args:  cobra.MaximumNArgs(1),
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
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Pending, "pending", o.Pending, "Only show applications without a response.")
	fs.StringVarP(&o.Search, "search", "s", o.Search, "Only show applications whose source, company or job title contain this text.")
	fs.StringVarP(&o.Response, "response", "r", o.Response, "Only show applications with this response (code or label).")
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	if len(args) == 1 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		o.id = &id
	}

	if cmd.Flags().Changed("response") {
		h, err := model.ParseHumanResponse(o.Response)
		if err != nil {
			return err
		}
		o.response = &h
	}
	if o.Pending {
		h := model.HumanResponseNone
		o.response = &h
	}
	return nil
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	if o.Pending && o.Response != "" {
		return fmt.Errorf("--pending and --response cannot be used together")
	}
	if o.id != nil && (o.Pending || o.Search != "" || o.response != nil) {
		return fmt.Errorf("filters cannot be used when an id is given")
	}
	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	if o.id != nil {
		app, err := s.JobApplication().Get(ctx, *o.id)
		if err != nil {
			return fmt.Errorf("reading job application %d: %w", *o.id, err)
		}
		if app == nil {
			fmt.Fprintf(o.out, "No job application with id %d\n", *o.id)
			return nil
		}
		return printApplications(o.out, o.Output, *app)
	}

	apps, err := o.list(ctx, s.JobApplication())
	if err != nil {
		return fmt.Errorf("listing job applications: %w", err)
	}
	return printApplications(o.out, o.Output, apps...)
}

func (o *GetOptions) list(ctx context.Context, repo store.JobApplication) (model.JobApplicationList, error) {
	switch {
	case o.Search != "" && o.response != nil:
		return repo.SearchByResponse(ctx, o.Search, *o.response)
	case o.Search != "":
		return repo.Search(ctx, o.Search)
	case o.Pending:
		return repo.ListPending(ctx)
	case o.response != nil:
		return repo.ListByResponse(ctx, *o.response)
	default:
		return repo.List(ctx)
	}
}
