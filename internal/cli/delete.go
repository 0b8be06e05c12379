package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type DeleteOptions struct {
	GlobalOptions

	id int
}

func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdDelete() *cobra.Command {
	o := DefaultDeleteOptions()
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a job application.",
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

func (o *DeleteOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

func (o *DeleteOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *DeleteOptions) Validate(args []string) error {
	return o.GlobalOptions.Validate(args)
}

func (o *DeleteOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.JobApplication().Delete(ctx, o.id); err != nil {
		return fmt.Errorf("deleting job application %d: %w", o.id, err)
	}
	fmt.Fprintf(o.out, "Deleted job application %d\n", o.id)
	return nil
}
