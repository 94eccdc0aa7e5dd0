// Package scanner resolves barcodes against a fixed product table. There is
// no real decoding; unknown codes fall back to the stock result.
package scanner

type Product struct {
	Name string   `json:"name"`
	Qty  string   `json:"qty"`
	Kcal int      `json:"kcal"`
	Tags []string `json:"tags"`
}

var defaultProduct = Product{
	Name: "Oats",
	Qty:  "100g",
	Kcal: 389,
	Tags: []string{"Warm", "Rasa: Madhura", "Light"},
}

var products = map[string]Product{
	"8901030865278": {Name: "Moong Dal", Qty: "500g", Kcal: 347, Tags: []string{"Light", "Tridoshic"}},
	"8901058851298": {Name: "Ghee", Qty: "200ml", Kcal: 900, Tags: []string{"Grounding", "Snigdha"}},
	"8906017290019": {Name: "Herbal Tea", Qty: "25 bags", Kcal: 2, Tags: []string{"Warm", "Rasa: Kashaya"}},
}

// Lookup returns the product for a barcode, or the stock Oats result when the
// code is unknown or empty.
func Lookup(code string) Product {
	if p, ok := products[code]; ok {
		return p
	}
	return defaultProduct
}
