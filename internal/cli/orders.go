package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/storefront"
)

type orderItemDoc struct {
	ProductID string `yaml:"productId"`
	Article   string `yaml:"article"`
	Name      string `yaml:"name"`
	Quantity  int    `yaml:"quantity"`
	Price     string `yaml:"price"`
	LineTotal string `yaml:"lineTotal"`
}

type orderDoc struct {
	ID          string         `yaml:"id"`
	Date        string         `yaml:"date"`
	Status      string         `yaml:"status"`
	StatusLabel string         `yaml:"statusLabel"`
	Total       string         `yaml:"total"`
	Items       []orderItemDoc `yaml:"items"`
}

func newOrderDoc(o order.Order) orderDoc {
	doc := orderDoc{
		ID:          o.ID,
		Date:        o.Date,
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Total:       o.Total.StringFixed(2),
		Items:       make([]orderItemDoc, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		doc.Items = append(doc.Items, orderItemDoc{
			ProductID: it.ID,
			Article:   it.Article,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}
	return doc
}

func newOrdersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List the order history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeSource, err := openSource(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeSource()

			orders, err := storefront.NewService(src, nil, nil, a.logger).Orders(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == formatYAML {
				docs := make([]orderDoc, 0, len(orders))
				for _, o := range orders {
					docs = append(docs, newOrderDoc(o))
				}
				return writeYAML(w, docs)
			}

			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					o.ID, o.Date, strconv.Itoa(len(o.Items)), o.Total.StringFixed(2), o.Status.Label(),
				})
			}
			return writeTable(w, []string{"Order", "Date", "Positions", "Total", "Status"}, rows)
		},
	}
}
