package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/service"
)

type choreSpecRequest struct {
	ChoreName     string    `json:"choreName" binding:"required"`
	Frequency     int       `json:"frequency" binding:"required"`
	FrequencyUnit string    `json:"frequencyUnit" binding:"required"`
	Deadline      time.Time `json:"deadline" binding:"required"`
}

func (s *Server) createChores(c *gin.Context) {
	var reqs []choreSpecRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		badRequest(c, err)
		return
	}

	specs := make([]service.ChoreSpec, 0, len(reqs))
	for _, r := range reqs {
		specs = append(specs, service.ChoreSpec{
			Name:     r.ChoreName,
			Count:    r.Frequency,
			Unit:     models.FrequencyUnit(r.FrequencyUnit),
			Deadline: r.Deadline,
		})
	}

	instances, err := s.chores.DefineBatch(c.Request.Context(), actor(c).UserID, c.Param("roomId"), specs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChoreResponses(instances))
}

func (s *Server) listRoomChores(c *gin.Context) {
	instances, err := s.chores.ListByRoom(c.Request.Context(), actor(c).UserID, c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toChoreResponses(instances))
}

func (s *Server) listMyChores(c *gin.Context) {
	instances, err := s.chores.ListForUser(c.Request.Context(), actor(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toChoreResponses(instances))
}

func (s *Server) removeChoresByType(c *gin.Context) {
	removed, err := s.chores.RemoveByType(c.Request.Context(), actor(c).UserID, c.Param("roomId"), c.Param("choreName"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
