package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/service"
)

type createListRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) createGroceryList(c *gin.Context) {
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l, err := s.groceries.CreateList(c.Request.Context(), actor(c).UserID, c.Param("roomId"), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroceryListResponse(l))
}

func (s *Server) listGroceryLists(c *gin.Context) {
	lists, err := s.groceries.ListByRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryListResponses(lists))
}

func (s *Server) getGroceryList(c *gin.Context) {
	l, err := s.groceries.GetList(c.Request.Context(), actor(c).UserID, c.Param("listId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryListResponse(l))
}

type groceryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

func (r groceryItemRequest) params() service.GroceryItemParams {
	return service.GroceryItemParams{
		Name:     r.Name,
		Quantity: r.Quantity,
		Category: r.Category,
		Notes:    r.Notes,
	}
}

func (s *Server) addGroceryItem(c *gin.Context) {
	var req groceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := s.groceries.AddItem(c.Request.Context(), actor(c).UserID, c.Param("listId"), req.params())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroceryItemResponse(item))
}

func (s *Server) updateGroceryItem(c *gin.Context) {
	var req groceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := s.groceries.UpdateItem(c.Request.Context(), actor(c).UserID, c.Param("itemId"), req.params())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryItemResponse(item))
}

type purchaseRequest struct {
	Price float64 `json:"price"`
}

func (s *Server) markItemPurchased(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := s.groceries.MarkPurchased(c.Request.Context(), actor(c).UserID, c.Param("itemId"), dollarsToCents(req.Price))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryItemResponse(item))
}

func (s *Server) unmarkItemPurchased(c *gin.Context) {
	item, err := s.groceries.UnmarkPurchased(c.Request.Context(), actor(c).UserID, c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryItemResponse(item))
}

func (s *Server) removeGroceryItem(c *gin.Context) {
	if err := s.groceries.RemoveItem(c.Request.Context(), actor(c).UserID, c.Param("itemId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) completeGroceryList(c *gin.Context) {
	l, err := s.groceries.CompleteList(c.Request.Context(), actor(c).UserID, c.Param("listId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryListResponse(l))
}

func (s *Server) archiveGroceryList(c *gin.Context) {
	l, err := s.groceries.ArchiveList(c.Request.Context(), actor(c).UserID, c.Param("listId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroceryListResponse(l))
}

func (s *Server) deleteGroceryList(c *gin.Context) {
	if err := s.groceries.DeleteList(c.Request.Context(), actor(c).UserID, c.Param("listId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
