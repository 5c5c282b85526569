package cli

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	h := make([]any, len(headers))
	for i, s := range headers {
		h[i] = s
	}
	table.Header(h...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, s := range row {
			cells[i] = s
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}
