package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

type createUtilityRequest struct {
	RoomID       string  `json:"roomId" binding:"required"`
	Name         string  `json:"utilityName" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"utilityPrice"`
	Distribution string  `json:"utilDistributionEnum" binding:"required"`
}

func (s *Server) createUtility(c *gin.Context) {
	var req createUtilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := s.utilities.Create(
		c.Request.Context(),
		actor(c).UserID,
		req.RoomID,
		req.Name,
		req.Description,
		dollarsToCents(req.Price),
		models.Distribution(req.Distribution),
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUtilityResponse(u))
}

func (s *Server) listRoomUtilities(c *gin.Context) {
	utilities, err := s.utilities.ListByRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUtilityResponses(utilities))
}

func (s *Server) listMemberUtilities(c *gin.Context) {
	utilities, err := s.utilities.ListForMember(c.Request.Context(), actor(c).UserID, c.Param("roomId"), c.Param("memberId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUtilityResponses(utilities))
}

func (s *Server) deleteUtility(c *gin.Context) {
	if err := s.utilities.Remove(c.Request.Context(), actor(c).UserID, c.Param("utilityId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
