package cmd

import (
	"fmt"

	"github.com/AndCook/rover-data-processor/parse"
	"github.com/AndCook/rover-data-processor/parse/odl"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type InspectParams struct {
	Output string   `json:"output"` // yaml or spew
	Target []string `json:"target"` // dotted paths to extract
	Nested bool     `json:"nested"`
}

var inspectParams *InspectParams

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Parse one format or label file and print its structure",
	Args:  cobra.ExactArgs(1),
	RunE:  inspectRun,
}

func init() {
	inspectParams = &InspectParams{}
	inspectCmd.Flags().StringVarP(&inspectParams.Output, "output", "o", "yaml", "output style: yaml or spew")
	inspectCmd.Flags().StringSliceVarP(&inspectParams.Target, "target", "t", nil, "print only these fields, nested as GROUP.FIELD")
	inspectCmd.Flags().BoolVar(&inspectParams.Nested, "nested-sections", false, "accept sections opened inside other sections")
}

func inspectRun(cmd *cobra.Command, args []string) error {
	p := inspectParams
	var opts []odl.Option
	if p.Nested {
		opts = append(opts, odl.WithNestedSections(true))
	}
	doc, err := parse.File(args[0], opts...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(p.Target) > 0 {
		spec, err := odl.ParseTargetPaths(p.Target)
		if err != nil {
			return err
		}
		fields, err := odl.Extract(doc, spec)
		if err != nil {
			return err
		}
		for _, k := range fields.Keys() {
			v, _ := fields.Get(k)
			fmt.Fprintf(out, "%s = %s\n", k, v)
		}
		return nil
	}

	switch p.Output {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "spew":
		spew.Fdump(out, doc)
		return nil
	default:
		return fmt.Errorf("unknown output style %q", p.Output)
	}
}
