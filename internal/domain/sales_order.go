package domain

// SalesOrderItem is one line on a sales order.
type SalesOrderItem struct {
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
}

// SalesOrder is a mutable business document whose edits are recorded in the
// edit-history ledger. The `history` tag names the field in history entries;
// fields tagged structural produce a marker instead of a value diff, and "-"
// excludes the field from diffing.
type SalesOrder struct {
	ID           string           `json:"id" history:"-"`
	TenantID     string           `json:"tenant_id" history:"-"`
	Reference    string           `json:"reference" history:"reference"`
	CustomerName string           `json:"customer_name" history:"customer_name"`
	Status       string           `json:"status" history:"status"`
	Notes        string           `json:"notes" history:"notes"`
	Items        []SalesOrderItem `json:"items" history:"items,structural"`
	TotalCents   int64            `json:"total_cents" history:"total_cents,structural"`
	CreatedOn    string           `json:"created_on" history:"-"`
	UpdatedOn    string           `json:"updated_on" history:"-"`
}

// Recalculate derives the order total from its line items.
func (o *SalesOrder) Recalculate() {
	var total int64
	for _, it := range o.Items {
		total += int64(it.Quantity) * it.UnitCents
	}
	o.TotalCents = total
}
