// File: /controllers/connection_controller.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/database"
	"alumninet-api/middleware"
	"alumninet-api/models"
)

type ConnectionController struct {
	db *gorm.DB
}

func NewConnectionController(db *gorm.DB) *ConnectionController {
	return &ConnectionController{db: db}
}

type SendRequestBody struct {
	ToUserID uint `json:"to_user_id" binding:"required"`
}

// SendRequest creates a pending connection between the caller and to_user_id.
// The pair is stored normalized so a single uniqueness constraint covers both
// request directions.
func (cc *ConnectionController) SendRequest(c *gin.Context) {
	fromID := middleware.UserID(c)

	var req SendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if req.ToUserID == fromID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send connection request to yourself"})
		return
	}

	low, high := models.NormalizePair(fromID, req.ToUserID)

	connection := models.Connection{
		UserA:       low,
		UserB:       high,
		Status:      models.ConnectionStatusPending,
		RequestedBy: fromID,
	}

	if err := cc.db.Create(&connection).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Connection request already exists"})
			return
		}
		fmt.Printf("sendRequest error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Connection request sent",
		"connection_id": connection.ConnectionID,
	})
}

type RespondRequestBody struct {
	ConnectionID uint   `json:"connection_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=accept reject"`
}

// RespondRequest transitions a pending connection to accepted or rejected.
// The transition is terminal; a resolved connection cannot be responded to
// again, and the original requester cannot answer their own request.
func (cc *ConnectionController) RespondRequest(c *gin.Context) {
	userID := middleware.UserID(c)

	var req RespondRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var connection models.Connection
	if err := cc.db.First(&connection, "connection_id = ?", req.ConnectionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Connection not found"})
		return
	}

	if connection.Status != models.ConnectionStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already responded"})
		return
	}

	if !connection.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	if connection.RequestedBy == userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot respond to your own request"})
		return
	}

	newStatus := models.ConnectionStatusAccepted
	if req.Action == "reject" {
		newStatus = models.ConnectionStatusRejected
	}

	if err := cc.db.Model(&connection).Update("status", newStatus).Error; err != nil {
		fmt.Printf("respondRequest error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request %s", newStatus)})
}

type ConnectionInfo struct {
	ConnectionID uint                    `json:"connection_id"`
	Status       models.ConnectionStatus `json:"status"`
	UserID       uint                    `json:"user_id"`
	Email        string                  `json:"email"`
	Role         models.UserRole         `json:"role"`
}

// GetConnections returns the caller's accepted connections joined with the
// other party's public identity.
func (cc *ConnectionController) GetConnections(c *gin.Context) {
	userID := middleware.UserID(c)

	var connections []models.Connection
	if err := cc.db.Where("(user_a = ? OR user_b = ?) AND status = ?",
		userID, userID, models.ConnectionStatusAccepted).Find(&connections).Error; err != nil {
		fmt.Printf("getConnections error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	peerIDs := make([]uint, 0, len(connections))
	for _, conn := range connections {
		peerIDs = append(peerIDs, conn.OtherParty(userID))
	}

	result := make([]ConnectionInfo, 0, len(connections))
	if len(peerIDs) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	var peers []models.User
	if err := cc.db.Where("user_id IN ?", peerIDs).Find(&peers).Error; err != nil {
		fmt.Printf("getConnections error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	peerByID := make(map[uint]models.User, len(peers))
	for _, peer := range peers {
		peerByID[peer.UserID] = peer
	}

	for _, conn := range connections {
		peer, ok := peerByID[conn.OtherParty(userID)]
		if !ok {
			continue
		}
		result = append(result, ConnectionInfo{
			ConnectionID: conn.ConnectionID,
			Status:       conn.Status,
			UserID:       peer.UserID,
			Email:        peer.Email,
			Role:         peer.Role,
		})
	}

	c.JSON(http.StatusOK, result)
}

type PendingRequestInfo struct {
	ConnectionID uint   `json:"connection_id"`
	RequestedBy  uint   `json:"requested_by"`
	Email        string `json:"email"`
}

// GetPendingRequests returns pending requests received by the caller. Requests
// the caller sent are excluded; there is no sent-awaiting-response view.
func (cc *ConnectionController) GetPendingRequests(c *gin.Context) {
	userID := middleware.UserID(c)

	var connections []models.Connection
	if err := cc.db.Where("(user_a = ? OR user_b = ?) AND status = ? AND requested_by != ?",
		userID, userID, models.ConnectionStatusPending, userID).Find(&connections).Error; err != nil {
		fmt.Printf("getPendingRequests error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	requesterIDs := make([]uint, 0, len(connections))
	for _, conn := range connections {
		requesterIDs = append(requesterIDs, conn.RequestedBy)
	}

	result := make([]PendingRequestInfo, 0, len(connections))
	if len(requesterIDs) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	var requesters []models.User
	if err := cc.db.Where("user_id IN ?", requesterIDs).Find(&requesters).Error; err != nil {
		fmt.Printf("getPendingRequests error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	emailByID := make(map[uint]string, len(requesters))
	for _, requester := range requesters {
		emailByID[requester.UserID] = requester.Email
	}

	for _, conn := range connections {
		result = append(result, PendingRequestInfo{
			ConnectionID: conn.ConnectionID,
			RequestedBy:  conn.RequestedBy,
			Email:        emailByID[conn.RequestedBy],
		})
	}

	c.JSON(http.StatusOK, result)
}
