package models

// GroceryListStatus is the lifecycle state of a grocery list.
type GroceryListStatus string

const (
	ListActive    GroceryListStatus = "ACTIVE"
	ListCompleted GroceryListStatus = "COMPLETED"
	ListArchived  GroceryListStatus = "ARCHIVED"
)

// GroceryList is a shared shopping list scoped to a room.
type GroceryList struct {
	ID          string
	RoomID      string
	Name        string
	Status      GroceryListStatus
	CreatedBy   string // membership ID
	CreatedAt   int64
	CompletedAt int64 // zero until completed

	Items []GroceryItem
}

// PurchasedCount returns how many items have been bought.
func (l *GroceryList) PurchasedCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Purchased {
			n++
		}
	}
	return n
}

// TotalSpentCents sums the actual prices of purchased items.
func (l *GroceryList) TotalSpentCents() int64 {
	var total int64
	for _, it := range l.Items {
		if it.Purchased {
			total += it.ActualPriceCents
		}
	}
	return total
}

// GroceryItem is a single entry on a grocery list.
type GroceryItem struct {
	ID       string
	ListID   string
	Name     string
	Quantity string
	Category string
	Notes    string

	Purchased        bool
	AddedBy          string // membership ID
	PurchasedBy      string // membership ID; empty until purchased
	ActualPriceCents int64
	PurchasedAt      int64
	CreatedAt        int64
}

// MarkPurchased records the purchase with the buyer and price paid.
func (i *GroceryItem) MarkPurchased(memberID string, priceCents, now int64) {
	i.Purchased = true
	i.PurchasedBy = memberID
	i.ActualPriceCents = priceCents
	i.PurchasedAt = now
}

// UnmarkPurchased reverts a purchase.
func (i *GroceryItem) UnmarkPurchased() {
	i.Purchased = false
	i.PurchasedBy = ""
	i.ActualPriceCents = 0
	i.PurchasedAt = 0
}
