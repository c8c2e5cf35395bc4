package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/AndCook/rover-data-processor/export"
	"github.com/AndCook/rover-data-processor/parse/odl"
	"github.com/AndCook/rover-data-processor/pkg"
	"github.com/spf13/cobra"
)

type ExportParams struct {
	Root        string   `json:"root"`         // archive root
	Format      string   `json:"format"`       // format file, relative to root
	Output      string   `json:"output"`       // results csv
	MaxRows     int      `json:"max_rows"`     // <= 0 for no limit
	Columns     []string `json:"columns"`      // empty for every column
	LabelFields []string `json:"label_fields"` // dotted label paths
	Targets     string   `json:"targets"`      // yaml target spec, replaces label fields
	Nested      bool     `json:"nested"`       // allow nested sections
}

var exportParams *ExportParams

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Merge tabular data and label metadata into one csv",
	Example: `  rover export --root /data/msl-rems -c TIMESTAMP,PRESSURE -n 1000
  rover export -c "" --targets labels.yaml -f all_columns.csv`,
	Args: cobra.NoArgs,
	RunE: exportRun,
}

func init() {
	exportParams = &ExportParams{}
	f := exportCmd.Flags()
	f.StringVar(&exportParams.Root, "root", cfg.ArchiveRoot, "archive root directory")
	f.StringVar(&exportParams.Format, "format", cfg.FormatFile, "format file describing the data columns")
	f.StringVarP(&exportParams.Output, "resultsFileName", "f", cfg.ResultsFile, "name of the csv file the results are written to")
	f.IntVarP(&exportParams.MaxRows, "maxRowCount", "n", cfg.MaxRows, "maximum number of rows written to the csv file, -1 for all")
	f.StringSliceVarP(&exportParams.Columns, "targetColNames", "c", cfg.Columns, "names of the columns to include, empty for all")
	f.StringSliceVar(&exportParams.LabelFields, "label-field", cfg.LabelFields, "label fields to append to every row, nested as GROUP.FIELD")
	f.StringVar(&exportParams.Targets, "targets", "", "yaml file selecting the label fields")
	f.BoolVar(&exportParams.Nested, "nested-sections", false, "accept sections opened inside other sections")
}

func exportRun(cmd *cobra.Command, args []string) error {
	p := exportParams

	formatPath := p.Format
	if !filepath.IsAbs(formatPath) {
		formatPath = filepath.Join(p.Root, formatPath)
	}
	exist, err := pkg.CheckFileExist(formatPath)
	if err != nil {
		return fmt.Errorf("check format file: %w", err)
	}
	if !exist {
		return fmt.Errorf("format file %s not found", formatPath)
	}

	spec, err := labelSpec(p)
	if err != nil {
		return err
	}

	var parseOpts []odl.Option
	if p.Nested {
		parseOpts = append(parseOpts, odl.WithNestedSections(true))
	}

	sum, err := export.Run(export.Options{
		Root:       p.Root,
		FormatFile: formatPath,
		Output:     p.Output,
		MaxRows:    p.MaxRows,
		Columns:    p.Columns,
		Labels:     spec,
		Parse:      parseOpts,
		Logger:     log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows from %d data files to %s\n", sum.Rows, sum.Files, p.Output)
	return nil
}

func labelSpec(p *ExportParams) (odl.TargetSpec, error) {
	if p.Targets != "" {
		return odl.LoadTargetSpec(p.Targets)
	}
	return odl.ParseTargetPaths(p.LabelFields)
}
