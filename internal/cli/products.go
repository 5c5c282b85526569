package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

type productDoc struct {
	ID              string            `yaml:"id"`
	Article         string            `yaml:"article"`
	Name            string            `yaml:"name"`
	Category        string            `yaml:"category"`
	Price           string            `yaml:"price"`
	Unit            string            `yaml:"unit"`
	Stock           int               `yaml:"stock"`
	Image           string            `yaml:"image,omitempty"`
	Characteristics map[string]string `yaml:"characteristics,omitempty"`
}

func newProductDoc(p catalog.Product) productDoc {
	return productDoc{
		ID:              p.ID,
		Article:         p.Article,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price.StringFixed(2),
		Unit:            p.Unit,
		Stock:           p.Stock,
		Image:           p.Image,
		Characteristics: p.Characteristics,
	}
}

func newProductsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "products [query]",
		Short: "List catalog products, optionally filtered by name, article or category",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := openSource(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeSource()

			svc := storefront.NewService(src, nil, nil, a.logger)
			products, err := svc.Products(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == formatYAML {
				docs := make([]productDoc, 0, len(products))
				for _, p := range products {
					docs = append(docs, newProductDoc(p))
				}
				return writeYAML(w, docs)
			}

			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{
					p.ID, p.Article, p.Name, p.Category,
					p.Price.StringFixed(2), p.Unit, strconv.Itoa(p.Stock),
				})
			}
			return writeTable(w, []string{"ID", "Article", "Name", "Category", "Price", "Unit", "Stock"}, rows)
		},
	}
}
