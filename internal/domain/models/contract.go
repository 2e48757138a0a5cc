package models

// Contract is a forward sale within a marketing group.
type Contract struct {
	ID        int     `bson:"id" json:"id"`
	Desc      string  `bson:"desc" json:"desc"`
	DelDate   string  `bson:"delDate" json:"delDate"`
	Units     float64 `bson:"units" json:"units"`
	Cash      float64 `bson:"cash" json:"cash"`
	Basis     float64 `bson:"basis" json:"basis"`
	Futures   float64 `bson:"futures" json:"futures"`
	Delivered bool    `bson:"delivered" json:"delivered"`
}

// InventoryProduct is a tracked inventory line.
type InventoryProduct struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Unit string `bson:"unit" json:"unit"`
}

// InventoryLine is a priced quantity of one product inside a snapshot.
type InventoryLine struct {
	Price float64 `bson:"price" json:"price"`
	Qty   float64 `bson:"qty" json:"qty"`
}

// InventorySnapshot is a dated inventory benchmark keyed by product id.
type InventorySnapshot struct {
	ID    int                      `bson:"id" json:"id"`
	Date  string                   `bson:"date" json:"date"`
	Label string                   `bson:"label" json:"label"`
	Items map[string]InventoryLine `bson:"items" json:"items"`
}

// Total values the snapshot across the given products.
func (s InventorySnapshot) Total(products []InventoryProduct) float64 {
	var total float64
	for _, p := range products {
		line := s.Items[p.ID]
		total += line.Price * line.Qty
	}
	return total
}
