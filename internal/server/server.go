// Package server exposes the REST surface over the domain services:
// rooms and memberships, chore schedules, utility splits, the shared
// ledger and grocery lists. All routes except /healthz and /metrics
// require a bearer token from the identity service.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jagmansidhu/DaRoommate/internal/auth"
	"github.com/jagmansidhu/DaRoommate/internal/service"
)

// Server wires the domain services to their HTTP handlers.
type Server struct {
	rooms     *service.RoomService
	chores    *service.ChoreService
	utilities *service.UtilityService
	ledger    *service.LedgerService
	groceries *service.GroceryService
	jwt       *auth.JWTManager
}

// New creates a Server over the given services.
func New(
	rooms *service.RoomService,
	chores *service.ChoreService,
	utilities *service.UtilityService,
	ledger *service.LedgerService,
	groceries *service.GroceryService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		rooms:     rooms,
		chores:    chores,
		utilities: utilities,
		ledger:    ledger,
		groceries: groceries,
		jwt:       jwt,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router(mode string) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := r.Group("/", RequireAuth(s.jwt))

	rooms := authed.Group("/rooms")
	{
		rooms.POST("", s.createRoom)
		rooms.POST("/join", s.joinRoom)
		rooms.POST("/invite", s.invite)
		rooms.GET("", s.listRooms)
		rooms.GET("/:roomId", s.getRoom)
		rooms.DELETE("/:roomId", s.deleteRoom)
		rooms.POST("/:roomId/leave", s.leaveRoom)
		rooms.PUT("/:roomId/members/:memberId/role", s.changeRole)
		rooms.DELETE("/:roomId/members/:memberId", s.removeMember)
	}

	chores := authed.Group("/chores")
	{
		chores.POST("/room/:roomId", s.createChores)
		chores.GET("/room/:roomId", s.listRoomChores)
		chores.GET("/user/me", s.listMyChores)
		chores.DELETE("/room/:roomId/type/:choreName", s.removeChoresByType)
	}

	utility := authed.Group("/utility")
	{
		utility.POST("/create", s.createUtility)
		utility.GET("/room/:roomId", s.listRoomUtilities)
		utility.GET("/:memberId/room/:roomId", s.listMemberUtilities)
		utility.DELETE("/:utilityId", s.deleteUtility)
	}

	api := authed.Group("/api")
	{
		api.POST("/rooms/:roomId/ledger", s.createLedgerEntry)
		api.GET("/rooms/:roomId/ledger", s.listLedgerEntries)
		api.GET("/rooms/:roomId/ledger/balances", s.memberBalances)
		api.GET("/rooms/:roomId/ledger/balances/:memberId", s.memberBalance)
		api.GET("/ledger/:entryId", s.getLedgerEntry)
		api.PUT("/ledger/:entryId/splits", s.assignSplits)
		api.POST("/ledger/:entryId/splits/equal", s.equalSplits)
		api.POST("/ledger/splits/:splitId/pay", s.recordPayment)
		api.POST("/ledger/:entryId/cancel", s.cancelLedgerEntry)
		api.DELETE("/ledger/:entryId", s.deleteLedgerEntry)

		api.POST("/rooms/:roomId/groceries", s.createGroceryList)
		api.GET("/rooms/:roomId/groceries", s.listGroceryLists)
		api.GET("/groceries/:listId", s.getGroceryList)
		api.POST("/groceries/:listId/items", s.addGroceryItem)
		api.POST("/groceries/:listId/complete", s.completeGroceryList)
		api.POST("/groceries/:listId/archive", s.archiveGroceryList)
		api.DELETE("/groceries/:listId", s.deleteGroceryList)
		api.PUT("/groceries/items/:itemId", s.updateGroceryItem)
		api.PUT("/groceries/items/:itemId/purchase", s.markItemPurchased)
		api.DELETE("/groceries/items/:itemId/purchase", s.unmarkItemPurchased)
		api.DELETE("/groceries/items/:itemId", s.removeGroceryItem)
	}

	return r
}
