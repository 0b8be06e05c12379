package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atstracker/ats-tracking/internal/export"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ExportOptions struct {
	GlobalOptions

	Format  string
	File    string
	Pending bool
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Format:        string(export.FormatCSV),
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export job applications to a spreadsheet file.",
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

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Format, "format", "f", o.Format, fmt.Sprintf("Export format. One of: (%s).", strings.Join(export.Formats, ", ")))
	fs.StringVar(&o.File, "file", o.File, "Destination file. Defaults to job_applications.<format>.")
	fs.BoolVar(&o.Pending, "pending", o.Pending, "Only export applications without a response.")
}

func (o *ExportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.Format = strings.ToLower(o.Format)
	if o.File == "" {
		o.File = "job_applications." + o.Format
	}
	return nil
}

func (o *ExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(export.Formats, o.Format) {
		return fmt.Errorf("export format must be one of %s", strings.Join(export.Formats, ", "))
	}
	return nil
}

func (o *ExportOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store()
	if err != nil {
		return err
	}
	defer s.Close()

	list := s.JobApplication().List
	if o.Pending {
		list = s.JobApplication().ListPending
	}
	apps, err := list(ctx)
	if err != nil {
		return errors.Wrap(err, "listing job applications")
	}

	renderer, err := export.NewRenderer(export.Format(o.Format))
	if err != nil {
		return err
	}
	data, err := renderer.Render(apps)
	if err != nil {
		return errors.Wrapf(err, "rendering %s export", renderer.SupportedFormat())
	}
	if err := os.WriteFile(o.File, data, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", o.File)
	}

	fmt.Fprintf(o.out, "Exported %d job applications to %s\n", len(apps), o.File)
	return nil
}
