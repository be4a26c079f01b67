package product

import "github.com/shopspring/decimal"

// SampleCatalog is the starter catalog loaded by `cli seed-products`.
func SampleCatalog() []Input {
	item := func(name, desc, price, category string, sizes, colors []string, stock int, image string) Input {
		p := decimal.RequireFromString(price)
		return Input{
			Name:        name,
			Description: &desc,
			Price:       &p,
			Category:    &category,
			Sizes:       sizes,
			Colors:      colors,
			Stock:       &stock,
			Image:       &image,
		}
	}
	return []Input{
		item("Classic White", "Premium classic white t-shirt", "19.99", "Classic",
			[]string{"XS", "S", "M", "L", "XL"}, []string{"White", "Black", "Navy"}, 50, "👕"),
		item("Color Bold", "Vibrant colored t-shirt with bold design", "22.99", "Premium",
			[]string{"XS", "S", "M", "L", "XL"}, []string{"Red", "Blue", "Green", "Yellow"}, 40, "🎨"),
		item("Premium Comfort", "Ultra-soft premium comfort t-shirt", "24.99", "Premium",
			[]string{"S", "M", "L", "XL", "XXL"}, []string{"White", "Grey", "Black"}, 35, "✨"),
		item("Signature Edition", "Exclusive signature edition limited t-shirt", "29.99", "Limited",
			[]string{"M", "L", "XL"}, []string{"Black", "Gold"}, 20, "🌟"),
	}
}
