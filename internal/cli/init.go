package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type InitOptions struct {
	GlobalOptions
}

func DefaultInitOptions() *InitOptions {
	return &InitOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdInit() *cobra.Command {
	o := DefaultInitOptions()
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the job_applications table if it does not exist.",
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
	return cmd
}

func (o *InitOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

func (o *InitOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	zap.S().Named("cli").Info("initializing data store")
	if err := s.InitialMigration(); err != nil {
		return fmt.Errorf("running initial migration: %w", err)
	}
	fmt.Fprintln(o.out, "Database ready")
	return nil
}
