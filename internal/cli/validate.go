package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/errors"
	qio "github.com/matzehuels/qualmap/pkg/io"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [workbook]",
		Short: "Check a workbook without rendering it",
		Long: `Check that a workbook has every required table and column and that every
value is usable. All problems are reported at once. Relations whose
endpoints are unknown are valid input; they are listed as warnings because
they will not be drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func runValidate(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	wb, err := qio.ImportWorkbook(path)
	if err != nil {
		return err
	}
	ds, err := dataset.Normalize(wb)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		for _, d := range errors.GetDetails(err) {
			printDetail("%s", d)
		}
		return err
	}
	p.done("Validated "+path, "entities", len(ds.Entities), "relations", len(ds.Relations))

	printSuccess("%s is valid", path)
	printKeyValue("entities", fmt.Sprint(len(ds.Entities)))
	printKeyValue("relations", fmt.Sprint(len(ds.Relations)))
	printKeyValue("groups", fmt.Sprint(len(ds.Groups())))
	if ds.Axis.XLabel != "" || ds.Axis.YLabel != "" {
		printKeyValue("axes", fmt.Sprintf("%s / %s", ds.Axis.XLabel, ds.Axis.YLabel))
	}

	for _, w := range relationWarnings(ds) {
		printWarning("%s", w)
	}
	return nil
}

// relationWarnings lists relations the link router will drop.
func relationWarnings(ds *dataset.Dataset) []string {
	var out []string
	for _, r := range ds.Relations {
		switch {
		case !ds.Resolved(r):
			out = append(out, fmt.Sprintf("relation %s → %s references an unknown entity", r.Source, r.Target))
		case r.Source == r.Target:
			out = append(out, fmt.Sprintf("relation %s → %s is a self relation", r.Source, r.Target))
		}
	}
	return out
}
