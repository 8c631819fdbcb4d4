package server

import "github.com/jagmansidhu/DaRoommate/internal/models"

// Response shapes. Money crosses the API as decimal dollars; the
// domain keeps integer cents throughout.

type memberResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	State       string `json:"state"`
	JoinedAt    int64  `json:"joinedAt"`
}

type roomResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address,omitempty"`
	Description string           `json:"description,omitempty"`
	Code        string           `json:"roomCode"`
	CreatedBy   string           `json:"createdBy"`
	State       string           `json:"state"`
	CreatedAt   int64            `json:"createdAt"`
	Members     []memberResponse `json:"members"`
}

func toRoomResponse(r *models.Room) roomResponse {
	resp := roomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
		Code:        r.Code,
		CreatedBy:   r.CreatedBy,
		State:       string(r.State),
		CreatedAt:   r.CreatedAt,
		Members:     []memberResponse{},
	}
	for _, m := range r.Members {
		resp.Members = append(resp.Members, memberResponse{
			ID:          m.ID,
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Role:        string(m.Role),
			State:       string(m.State),
			JoinedAt:    m.JoinedAt,
		})
	}
	return resp
}

func toRoomResponses(rooms []*models.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out
}

type choreResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	TemplateID string `json:"templateId"`
	ChoreName  string `json:"choreName"`
	DueAt      int64  `json:"dueAt"`
}

func toChoreResponses(instances []*models.ChoreInstance) []choreResponse {
	out := make([]choreResponse, 0, len(instances))
	for _, in := range instances {
		out = append(out, choreResponse{
			ID:         in.ID,
			RoomID:     in.RoomID,
			TemplateID: in.TemplateID,
			ChoreName:  in.Name,
			DueAt:      in.DueAt,
		})
	}
	return out
}

type utilityShareResponse struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

type utilityResponse struct {
	ID           string                 `json:"id"`
	RoomID       string                 `json:"roomId"`
	Name         string                 `json:"utilityName"`
	Description  string                 `json:"description,omitempty"`
	Price        float64                `json:"utilityPrice"`
	Distribution string                 `json:"utilDistributionEnum"`
	CreatedAt    int64                  `json:"createdAt"`
	Shares       []utilityShareResponse `json:"shares"`
}

func toUtilityResponse(u *models.Utility) utilityResponse {
	resp := utilityResponse{
		ID:           u.ID,
		RoomID:       u.RoomID,
		Name:         u.Name,
		Description:  u.Description,
		Price:        centsToDollars(u.PriceCents),
		Distribution: string(u.Distribution),
		CreatedAt:    u.CreatedAt,
		Shares:       []utilityShareResponse{},
	}
	for _, s := range u.Shares {
		resp.Shares = append(resp.Shares, utilityShareResponse{
			MemberID: s.MemberID,
			Amount:   centsToDollars(s.AmountCents),
		})
	}
	return resp
}

func toUtilityResponses(utilities []*models.Utility) []utilityResponse {
	out := make([]utilityResponse, 0, len(utilities))
	for _, u := range utilities {
		out = append(out, toUtilityResponse(u))
	}
	return out
}

type ledgerSplitResponse struct {
	ID       string  `json:"id"`
	EntryID  string  `json:"entryId"`
	MemberID string  `json:"memberId"`
	Owed     float64 `json:"owed"`
	Paid     float64 `json:"paid"`
	Status   string  `json:"status"`
	PaidAt   int64   `json:"paidAt,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

func toLedgerSplitResponse(s *models.LedgerSplit) ledgerSplitResponse {
	return ledgerSplitResponse{
		ID:       s.ID,
		EntryID:  s.EntryID,
		MemberID: s.MemberID,
		Owed:     centsToDollars(s.OwedCents),
		Paid:     centsToDollars(s.PaidCents),
		Status:   string(s.Status),
		PaidAt:   s.PaidAt,
		Notes:    s.Notes,
	}
}

type ledgerEntryResponse struct {
	ID          string                `json:"id"`
	RoomID      string                `json:"roomId"`
	CreatedBy   string                `json:"createdBy"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	EntryType   string                `json:"entryType"`
	Total       float64               `json:"total"`
	SplitType   string                `json:"splitType"`
	Status      string                `json:"status"`
	DueDate     int64                 `json:"dueDate,omitempty"`
	CreatedAt   int64                 `json:"createdAt"`
	Splits      []ledgerSplitResponse `json:"splits"`
}

func toLedgerEntryResponse(e *models.LedgerEntry) ledgerEntryResponse {
	resp := ledgerEntryResponse{
		ID:          e.ID,
		RoomID:      e.RoomID,
		CreatedBy:   e.CreatedBy,
		Title:       e.Title,
		Description: e.Description,
		EntryType:   string(e.EntryType),
		Total:       centsToDollars(e.TotalCents),
		SplitType:   string(e.SplitType),
		Status:      string(e.Status),
		DueDate:     e.DueDate,
		CreatedAt:   e.CreatedAt,
		Splits:      []ledgerSplitResponse{},
	}
	for i := range e.Splits {
		resp.Splits = append(resp.Splits, toLedgerSplitResponse(&e.Splits[i]))
	}
	return resp
}

func toLedgerEntryResponses(entries []*models.LedgerEntry) []ledgerEntryResponse {
	out := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out
}

type balanceResponse struct {
	MemberID     string  `json:"memberId"`
	TotalOwed    float64 `json:"totalOwed"`
	TotalPaid    float64 `json:"totalPaid"`
	Outstanding  float64 `json:"outstanding"`
	UnpaidSplits int     `json:"unpaidSplits"`
}

func toBalanceResponse(b models.MemberBalance) balanceResponse {
	return balanceResponse{
		MemberID:     b.MemberID,
		TotalOwed:    centsToDollars(b.TotalOwedCents),
		TotalPaid:    centsToDollars(b.TotalPaidCents),
		Outstanding:  centsToDollars(b.OutstandingCents),
		UnpaidSplits: b.UnpaidSplits,
	}
}

type groceryItemResponse struct {
	ID          string  `json:"id"`
	ListID      string  `json:"listId"`
	Name        string  `json:"name"`
	Quantity    string  `json:"quantity,omitempty"`
	Category    string  `json:"category,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Purchased   bool    `json:"purchased"`
	AddedBy     string  `json:"addedBy"`
	PurchasedBy string  `json:"purchasedBy,omitempty"`
	ActualPrice float64 `json:"actualPrice"`
	PurchasedAt int64   `json:"purchasedAt,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
}

func toGroceryItemResponse(i *models.GroceryItem) groceryItemResponse {
	return groceryItemResponse{
		ID:          i.ID,
		ListID:      i.ListID,
		Name:        i.Name,
		Quantity:    i.Quantity,
		Category:    i.Category,
		Notes:       i.Notes,
		Purchased:   i.Purchased,
		AddedBy:     i.AddedBy,
		PurchasedBy: i.PurchasedBy,
		ActualPrice: centsToDollars(i.ActualPriceCents),
		PurchasedAt: i.PurchasedAt,
		CreatedAt:   i.CreatedAt,
	}
}

type groceryListResponse struct {
	ID          string                `json:"id"`
	RoomID      string                `json:"roomId"`
	Name        string                `json:"name"`
	Status      string                `json:"status"`
	CreatedBy   string                `json:"createdBy"`
	CreatedAt   int64                 `json:"createdAt"`
	CompletedAt int64                 `json:"completedAt,omitempty"`
	TotalSpent  float64               `json:"totalSpent"`
	Items       []groceryItemResponse `json:"items"`
}

func toGroceryListResponse(l *models.GroceryList) groceryListResponse {
	resp := groceryListResponse{
		ID:          l.ID,
		RoomID:      l.RoomID,
		Name:        l.Name,
		Status:      string(l.Status),
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		CompletedAt: l.CompletedAt,
		TotalSpent:  centsToDollars(l.TotalSpentCents()),
		Items:       []groceryItemResponse{},
	}
	for i := range l.Items {
		resp.Items = append(resp.Items, toGroceryItemResponse(&l.Items[i]))
	}
	return resp
}

func toGroceryListResponses(lists []*models.GroceryList) []groceryListResponse {
	out := make([]groceryListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, toGroceryListResponse(l))
	}
	return out
}
