// File: /controllers/message_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/middleware"
	"alumninet-api/models"
)

type MessageController struct {
	db *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{db: db}
}

type SendMessageBody struct {
	ToUserID    uint   `json:"to_user_id" binding:"required"`
	MessageText string `json:"message_text"`
}

// SendMessage creates a message if the two users have an accepted connection.
// The check queries both column orderings even though writes are normalized.
// The check and the insert are separate statements; messaging has no
// safety-critical invariant so the gap is accepted.
func (mc *MessageController) SendMessage(c *gin.Context) {
	fromID := middleware.UserID(c)

	var req SendMessageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var connection models.Connection
	err := mc.db.Where("((user_a = ? AND user_b = ?) OR (user_a = ? AND user_b = ?)) AND status = ?",
		fromID, req.ToUserID, req.ToUserID, fromID, models.ConnectionStatusAccepted).
		First(&connection).Error
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not connected"})
		return
	}

	message := models.Message{
		SenderID:    fromID,
		ReceiverID:  req.ToUserID,
		MessageText: req.MessageText,
		ReadStatus:  false,
	}

	if err := mc.db.Create(&message).Error; err != nil {
		fmt.Printf("sendMessage error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Message sent",
		"message_id":  message.MessageID,
		"read_status": false,
	})
}

// GetMessages returns the full thread with another user in chronological
// order. Connection state is not re-checked here; a previously accepted
// thread stays readable.
func (mc *MessageController) GetMessages(c *gin.Context) {
	userID := middleware.UserID(c)

	withUserID, err := strconv.ParseUint(c.Param("with_user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var messages []models.Message
	if err := mc.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, withUserID, withUserID, userID).
		Order("created_at ASC, message_id ASC").
		Find(&messages).Error; err != nil {
		fmt.Printf("getMessages error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

type MarkAsReadBody struct {
	MessageIDs []uint `json:"message_ids"`
}

// MarkAsRead flips the read receipt on messages addressed to the caller that
// are still unread. Ids not addressed to the caller or already read are
// silently skipped; the response carries only the count actually updated.
func (mc *MessageController) MarkAsRead(c *gin.Context) {
	userID := middleware.UserID(c)

	var req MarkAsReadBody
	if err := c.ShouldBindJSON(&req); err != nil || req.MessageIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message IDs"})
		return
	}

	if len(req.MessageIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No messages to mark as read"})
		return
	}

	now := time.Now()
	result := mc.db.Model(&models.Message{}).
		Where("message_id IN ? AND receiver_id = ? AND read_status = ?", req.MessageIDs, userID, false).
		Updates(map[string]interface{}{
			"read_status": true,
			"read_at":     now,
		})
	if result.Error != nil {
		fmt.Printf("markAsRead error: %v\n", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Messages marked as read",
		"updated_count": result.RowsAffected,
	})
}

// GetUnreadCount returns a sender_id -> unread count mapping for the caller.
// No total is computed; clients sum the mapping if they need one.
func (mc *MessageController) GetUnreadCount(c *gin.Context) {
	userID := middleware.UserID(c)

	var rows []struct {
		SenderID    uint  `json:"sender_id"`
		UnreadCount int64 `json:"unread_count"`
	}

	if err := mc.db.Model(&models.Message{}).
		Select("sender_id, COUNT(*) as unread_count").
		Where("receiver_id = ? AND read_status = ?", userID, false).
		Group("sender_id").
		Scan(&rows).Error; err != nil {
		fmt.Printf("getUnreadCount error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	unreadCounts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		unreadCounts[row.SenderID] = row.UnreadCount
	}

	c.JSON(http.StatusOK, unreadCounts)
}
