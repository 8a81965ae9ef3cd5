package pipeline

import (
	"github.com/matzehuels/qualmap/pkg/dataset"
	qio "github.com/matzehuels/qualmap/pkg/io"
)

// Load reads the workbook at opts.Input and normalizes it.
func Load(opts Options) (*dataset.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	wb, err := qio.ImportWorkbook(opts.Input)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Normalize(wb)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("normalized workbook",
		"input", opts.Input,
		"entities", len(ds.Entities),
		"relations", len(ds.Relations),
		"groups", len(ds.Groups()))
	return ds, nil
}
