package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

type createRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	claims := actor(c)
	room, err := s.rooms.CreateRoom(c.Request.Context(), claims.UserID, claims.DisplayName, req.Name, req.Address, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRoomResponse(room))
}

type joinRoomRequest struct {
	Code string `json:"code" binding:"required"`
}

func (s *Server) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	claims := actor(c)
	room, err := s.rooms.JoinRoom(c.Request.Context(), claims.UserID, claims.DisplayName, req.Code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func (s *Server) listRooms(c *gin.Context) {
	rooms, err := s.rooms.ListRooms(c.Request.Context(), actor(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(rooms))
}

func (s *Server) getRoom(c *gin.Context) {
	room, err := s.rooms.GetRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func (s *Server) deleteRoom(c *gin.Context) {
	if err := s.rooms.DeleteRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) leaveRoom(c *gin.Context) {
	if err := s.rooms.LeaveRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (s *Server) changeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := s.rooms.ChangeRole(c.Request.Context(), actor(c).UserID, c.Param("roomId"), c.Param("memberId"), models.Role(req.Role))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeMember(c *gin.Context) {
	err := s.rooms.RemoveMember(c.Request.Context(), actor(c).UserID, c.Param("roomId"), c.Param("memberId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type inviteRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	Email  string `json:"email" binding:"required"`
}

func (s *Server) invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.rooms.Invite(c.Request.Context(), actor(c).UserID, req.RoomID, req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "invitation queued"})
}
