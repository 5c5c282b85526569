package catalog

// Count is one row of a reference lookup: a distinct value and how many
// catalog products carry it.
type Count struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Categories lists distinct categories in order of first appearance.
func Categories(products []Product) []Count {
	return countBy(products, func(p Product) string { return p.Category })
}

// Units lists distinct units of measure in order of first appearance.
func Units(products []Product) []Count {
	return countBy(products, func(p Product) string { return p.Unit })
}

func countBy(products []Product, key func(Product) string) []Count {
	index := make(map[string]int)
	out := []Count{}
	for _, p := range products {
		k := key(p)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Count{Value: k, Count: 1})
	}
	return out
}
