package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atstracker/ats-tracking/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	Output string
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print ats version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json).")
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, out io.Writer) error {
	versionInfo := version.Get()
	if o.Output == jsonFormat {
		marshalled, err := json.Marshal(versionInfo)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", marshalled)
		return nil
	}
	fmt.Fprintf(out, "ats Version: %s\n", versionInfo.String())
	return nil
}
