package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

type refsDoc struct {
	Categories []catalog.Count `yaml:"categories"`
	Units      []catalog.Count `yaml:"units"`
}

func newRefsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Show category and unit lookups with product counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeSource, err := openSource(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeSource()

			svc := storefront.NewService(src, nil, nil, a.logger)
			categories, err := svc.Categories(cmd.Context())
			if err != nil {
				return err
			}
			units, err := svc.Units(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == formatYAML {
				return writeYAML(w, refsDoc{Categories: categories, Units: units})
			}

			if err := writeTable(w, []string{"Category", "Products"}, countRows(categories)); err != nil {
				return err
			}
			fmt.Fprintln(w)
			return writeTable(w, []string{"Unit", "Products"}, countRows(units))
		},
	}
}

func countRows(counts []catalog.Count) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
	}
	return rows
}
