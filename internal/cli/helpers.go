package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("unable to parse id %q: %w", arg, err)
	}
	return id, nil
}

func today() time.Time {
	return model.TruncateDate(time.Now())
}

func printApplications(w io.Writer, output string, apps ...model.JobApplication) error {
	switch output {
	case jsonFormat:
		marshalled, err := json.Marshal(apps)
		if err != nil {
			return fmt.Errorf("marshalling job applications: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(apps)
		if err != nil {
			return fmt.Errorf("marshalling job applications: %w", err)
		}
		fmt.Fprintf(w, "%s", string(marshalled))
		return nil
	default:
		printTable(w, apps...)
		return nil
	}
}

func printTable(out io.Writer, apps ...model.JobApplication) {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tCOMPANY\tJOB TITLE\tAPPLIED\tRESPONSE\tRESPONSE DATE")
	for _, a := range apps {
		responseDate := ""
		if a.HumanResponseDate != nil {
			responseDate = a.HumanResponseDate.Format(model.DateLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Source,
			a.Company,
			a.JobTitle,
			a.ApplicationDate.Format(model.DateLayout),
			a.HumanResponse,
			responseDate,
		)
	}
	w.Flush()
}
