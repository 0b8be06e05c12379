package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

func NewCmdUpdate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a job application",
	}
	cmd.AddCommand(NewCmdUpdateResponse())
	cmd.AddCommand(NewCmdUpdateFields())
	return cmd
}

type UpdateResponseOptions struct {
	GlobalOptions

	Response string
	Date     string

	id       int
	response model.HumanResponse
	date     *time.Time
}

func DefaultUpdateResponseOptions() *UpdateResponseOptions {
	return &UpdateResponseOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdUpdateResponse() *cobra.Command {
	o := DefaultUpdateResponseOptions()
	cmd := &cobra.Command{
		Use:   "response ID",
		Short: "Record the employer's response to an application.",
		Args:  cobra.ExactArgs(1),
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
	_ = cmd.MarkFlagRequired("response")
	return cmd
}

func (o *UpdateResponseOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Response, "response", "r", o.Response, "Human response (code or label).")
	fs.StringVar(&o.Date, "date", o.Date, "Response date, YYYY-MM-DD. Defaults to today.")
}

func (o *UpdateResponseOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	o.id = id

	h, err := model.ParseHumanResponse(o.Response)
	if err != nil {
		return err
	}
	o.response = h

	if o.Date != "" {
		d, err := model.ParseDate(o.Date)
		if err != nil {
			return err
		}
		o.date = &d
	}
	return nil
}

func (o *UpdateResponseOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.response == model.HumanResponseNone && o.date != nil {
		return fmt.Errorf("--date cannot be used to clear a response")
	}
	return nil
}

func (o *UpdateResponseOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	// Clearing a response clears its date too.
	if o.response == model.HumanResponseNone {
		partial := model.NewPartialJobApplication(o.id,
			model.HumanResponseField(model.HumanResponseNone),
			model.HumanResponseDateField(nil),
		)
		if err := s.JobApplication().UpdatePartial(ctx, partial); err != nil {
			return fmt.Errorf("clearing response of job application %d: %w", o.id, err)
		}
		fmt.Fprintf(o.out, "Updated job application %d\n", o.id)
		return nil
	}

	if err := s.JobApplication().UpdateHumanResponse(ctx, o.id, o.response, o.date); err != nil {
		return fmt.Errorf("updating response of job application %d: %w", o.id, err)
	}
	fmt.Fprintf(o.out, "Updated job application %d\n", o.id)
	return nil
}

type UpdateFieldsOptions struct {
	GlobalOptions

	fields  applicationFlags
	partial model.PartialJobApplication
}

func DefaultUpdateFieldsOptions() *UpdateFieldsOptions {
	return &UpdateFieldsOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdUpdateFields() *cobra.Command {
	o := DefaultUpdateFieldsOptions()
	cmd := &cobra.Command{
		Use:   "fields ID",
		Short: "Change some fields of a job application, leaving the others untouched.",
		Args:  cobra.ExactArgs(1),
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

func (o *UpdateFieldsOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.fields.Bind(fs)
	o.fields.BindClear(fs)
}

func (o *UpdateFieldsOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	fields, err := o.fields.Partial(cmd.Flags())
	if err != nil {
		return err
	}
	o.partial = model.NewPartialJobApplication(id, fields...)
	o.completeResponseDate(cmd.Flags())
	return nil
}

// completeResponseDate keeps the response date consistent with a response
// changed on its own: no response clears it, any other response defaults it to today.
func (o *UpdateFieldsOptions) completeResponseDate(fs *pflag.FlagSet) {
	if !fs.Changed("response") || fs.Changed(responseDateFlag) || funk.ContainsString(o.fields.Clear, responseDateFlag) {
		return
	}
	for _, f := range o.partial {
		if f.Name() != model.FieldHumanResponse {
			continue
		}
		if f.Value().(model.HumanResponse) == model.HumanResponseNone {
			o.partial = append(o.partial, model.HumanResponseDateField(nil))
		} else {
			d := today()
			o.partial = append(o.partial, model.HumanResponseDateField(&d))
		}
		return
	}
}

func (o *UpdateFieldsOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if len(o.partial) < 2 {
		return fmt.Errorf("nothing to update, set at least one field flag")
	}
	return nil
}

func (o *UpdateFieldsOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	id := o.partial[0].Value().(int)
	current, err := s.JobApplication().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reading job application %d: %w", id, err)
	}
	if current == nil {
		fmt.Fprintf(o.out, "No job application with id %d\n", id)
		return nil
	}
	if err := validateApplication(o.partial.Apply(*current)); err != nil {
		return err
	}

	if err := s.JobApplication().UpdatePartial(ctx, o.partial); err != nil {
		return fmt.Errorf("updating job application %d: %w", id, err)
	}
	fmt.Fprintf(o.out, "Updated job application %d\n", id)
	return nil
}
