package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/service"
)

type createLedgerEntryRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	EntryType   string  `json:"entryType" binding:"required"`
	Total       float64 `json:"total"`
	SplitType   string  `json:"splitType" binding:"required"`
	DueDate     int64   `json:"dueDate"`
}

func (s *Server) createLedgerEntry(c *gin.Context) {
	var req createLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := s.ledger.CreateEntry(c.Request.Context(), actor(c).UserID, c.Param("roomId"), service.LedgerEntryParams{
		Title:       req.Title,
		Description: req.Description,
		EntryType:   models.LedgerEntryType(req.EntryType),
		TotalCents:  dollarsToCents(req.Total),
		SplitType:   models.SplitType(req.SplitType),
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLedgerEntryResponse(e))
}

func (s *Server) listLedgerEntries(c *gin.Context) {
	entries, err := s.ledger.ListEntries(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toLedgerEntryResponses(entries))
}

func (s *Server) getLedgerEntry(c *gin.Context) {
	e, err := s.ledger.GetEntry(c.Request.Context(), actor(c).UserID, c.Param("entryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toLedgerEntryResponse(e))
}

type splitAssignmentRequest struct {
	MemberID string  `json:"memberId" binding:"required"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes"`
}

type assignSplitsRequest struct {
	Splits []splitAssignmentRequest `json:"splits" binding:"required"`
}

func (s *Server) assignSplits(c *gin.Context) {
	var req assignSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	assignments := make([]service.SplitAssignment, 0, len(req.Splits))
	for _, sp := range req.Splits {
		assignments = append(assignments, service.SplitAssignment{
			MemberID:    sp.MemberID,
			AmountCents: dollarsToCents(sp.Amount),
			Notes:       sp.Notes,
		})
	}
	e, err := s.ledger.AssignSplits(c.Request.Context(), actor(c).UserID, c.Param("entryId"), assignments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toLedgerEntryResponse(e))
}

func (s *Server) equalSplits(c *gin.Context) {
	e, err := s.ledger.EqualSplits(c.Request.Context(), actor(c).UserID, c.Param("entryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toLedgerEntryResponse(e))
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

func (s *Server) recordPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sp, err := s.ledger.RecordPayment(c.Request.Context(), actor(c).UserID, c.Param("splitId"), dollarsToCents(req.Amount), req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toLedgerSplitResponse(sp))
}

func (s *Server) memberBalances(c *gin.Context) {
	balances, err := s.ledger.MemberBalances(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) memberBalance(c *gin.Context) {
	b, err := s.ledger.MemberBalance(c.Request.Context(), actor(c).UserID, c.Param("roomId"), c.Param("memberId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalanceResponse(*b))
}

func (s *Server) cancelLedgerEntry(c *gin.Context) {
	if err := s.ledger.CancelEntry(c.Request.Context(), actor(c).UserID, c.Param("entryId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteLedgerEntry(c *gin.Context) {
	if err := s.ledger.DeleteEntry(c.Request.Context(), actor(c).UserID, c.Param("entryId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
