// File: /controllers/connection_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/models"
)

func connectionRouter(db *gorm.DB, userID uint) *gin.Engine {
	cc := NewConnectionController(db)

	r := gin.New()
	r.Use(asUser(userID, models.RoleStudent))
	r.POST("/connections/send", cc.SendRequest)
	r.POST("/connections/respond", cc.RespondRequest)
	r.GET("/connections/", cc.GetConnections)
	r.GET("/connections/pending", cc.GetPendingRequests)
	return r
}

func TestSendRequestNormalizesPair(t *testing.T) {
	db := setupTestDB(t)

	// Higher id sends to lower id; stored row must still be (low, high).
	router := connectionRouter(db, 12)
	w := doJSON(t, router, http.MethodPost, "/connections/send", gin.H{"to_user_id": 5})
	requireStatus(t, w, http.StatusCreated)

	var conn models.Connection
	if err := db.First(&conn).Error; err != nil {
		t.Fatalf("expected connection row: %v", err)
	}
	if conn.UserA != 5 || conn.UserB != 12 {
		t.Errorf("expected normalized pair (5, 12), got (%d, %d)", conn.UserA, conn.UserB)
	}
	if conn.RequestedBy != 12 {
		t.Errorf("expected requested_by 12, got %d", conn.RequestedBy)
	}
	if conn.Status != models.ConnectionStatusPending {
		t.Errorf("expected pending status, got %s", conn.Status)
	}
}

func TestSendRequestDuplicateEitherDirection(t *testing.T) {
	db := setupTestDB(t)

	w := doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/send", gin.H{"to_user_id": 12})
	requireStatus(t, w, http.StatusCreated)

	// Same direction
	w = doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/send", gin.H{"to_user_id": 12})
	requireStatus(t, w, http.StatusBadRequest)
	if decodeBody(t, w)["message"] != "Connection request already exists" {
		t.Errorf("expected duplicate message, got %s", w.Body.String())
	}

	// Opposite direction
	w = doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/send", gin.H{"to_user_id": 5})
	requireStatus(t, w, http.StatusBadRequest)

	var count int64
	db.Model(&models.Connection{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 connection row, got %d", count)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	db := setupTestDB(t)

	w := doJSON(t, connectionRouter(db, 7), http.MethodPost, "/connections/send", gin.H{"to_user_id": 7})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestSendRequestInvalidUserID(t *testing.T) {
	db := setupTestDB(t)

	w := doJSON(t, connectionRouter(db, 7), http.MethodPost, "/connections/send", gin.H{"to_user_id": "abc"})
	requireStatus(t, w, http.StatusBadRequest)

	w = doJSON(t, connectionRouter(db, 7), http.MethodPost, "/connections/send", gin.H{})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestRespondRequestAccept(t *testing.T) {
	db := setupTestDB(t)

	w := doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/send", gin.H{"to_user_id": 12})
	requireStatus(t, w, http.StatusCreated)
	connID := decodeBody(t, w)["connection_id"]

	w = doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": connID, "action": "accept"})
	requireStatus(t, w, http.StatusOK)

	var conn models.Connection
	db.First(&conn)
	if conn.Status != models.ConnectionStatusAccepted {
		t.Errorf("expected accepted, got %s", conn.Status)
	}
}

func TestRespondRequestTerminal(t *testing.T) {
	db := setupTestDB(t)

	doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/send", gin.H{"to_user_id": 12})

	var conn models.Connection
	db.First(&conn)

	w := doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "reject"})
	requireStatus(t, w, http.StatusOK)

	// Second response on a resolved connection fails; status never reverts.
	w = doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "accept"})
	requireStatus(t, w, http.StatusBadRequest)
	if decodeBody(t, w)["message"] != "Already responded" {
		t.Errorf("expected already responded, got %s", w.Body.String())
	}

	db.First(&conn)
	if conn.Status != models.ConnectionStatusRejected {
		t.Errorf("status reverted to %s", conn.Status)
	}
}

func TestRespondRequestAuthorization(t *testing.T) {
	db := setupTestDB(t)

	doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/send", gin.H{"to_user_id": 12})

	var conn models.Connection
	db.First(&conn)

	// Unknown connection
	w := doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": 9999, "action": "accept"})
	requireStatus(t, w, http.StatusNotFound)

	// Outsider
	w = doJSON(t, connectionRouter(db, 99), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "accept"})
	requireStatus(t, w, http.StatusForbidden)

	// The requester cannot answer their own request
	w = doJSON(t, connectionRouter(db, 5), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "accept"})
	requireStatus(t, w, http.StatusForbidden)

	// Unknown action
	w = doJSON(t, connectionRouter(db, 12), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "maybe"})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestGetConnectionsReturnsOtherParty(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "alice@example.com", models.RoleStudent, true)
	bob := createUser(t, db, "bob@example.com", models.RoleAlumni, true)

	w := doJSON(t, connectionRouter(db, alice.UserID), http.MethodPost, "/connections/send",
		gin.H{"to_user_id": bob.UserID})
	requireStatus(t, w, http.StatusCreated)

	var conn models.Connection
	db.First(&conn)
	doJSON(t, connectionRouter(db, bob.UserID), http.MethodPost, "/connections/respond",
		gin.H{"connection_id": conn.ConnectionID, "action": "accept"})

	// Each side sees the other party's identity
	w = doJSON(t, connectionRouter(db, alice.UserID), http.MethodGet, "/connections/", nil)
	requireStatus(t, w, http.StatusOK)
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(list))
	}
	if list[0]["email"] != "bob@example.com" || list[0]["role"] != "alumni" {
		t.Errorf("expected bob's identity, got %v", list[0])
	}

	w = doJSON(t, connectionRouter(db, bob.UserID), http.MethodGet, "/connections/", nil)
	list = decodeList(t, w)
	if len(list) != 1 || list[0]["email"] != "alice@example.com" {
		t.Errorf("expected alice's identity, got %v", list)
	}
}

func TestGetConnectionsExcludesUnaccepted(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "alice@example.com", models.RoleStudent, true)
	bob := createUser(t, db, "bob@example.com", models.RoleStudent, true)

	doJSON(t, connectionRouter(db, alice.UserID), http.MethodPost, "/connections/send",
		gin.H{"to_user_id": bob.UserID})

	w := doJSON(t, connectionRouter(db, alice.UserID), http.MethodGet, "/connections/", nil)
	requireStatus(t, w, http.StatusOK)
	if list := decodeList(t, w); len(list) != 0 {
		t.Errorf("pending connection leaked into accepted list: %v", list)
	}
}

func TestGetPendingRequestsOnlyReceived(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "alice@example.com", models.RoleStudent, true)
	bob := createUser(t, db, "bob@example.com", models.RoleStudent, true)
	carol := createUser(t, db, "carol@example.com", models.RoleStudent, true)

	// Alice sends to bob; carol sends to alice.
	doJSON(t, connectionRouter(db, alice.UserID), http.MethodPost, "/connections/send",
		gin.H{"to_user_id": bob.UserID})
	doJSON(t, connectionRouter(db, carol.UserID), http.MethodPost, "/connections/send",
		gin.H{"to_user_id": alice.UserID})

	// Alice sees only carol's request, not her own outgoing one.
	w := doJSON(t, connectionRouter(db, alice.UserID), http.MethodGet, "/connections/pending", nil)
	requireStatus(t, w, http.StatusOK)
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(list))
	}
	if list[0]["email"] != "carol@example.com" {
		t.Errorf("expected carol's request, got %v", list[0])
	}
	if uint(list[0]["requested_by"].(float64)) != carol.UserID {
		t.Errorf("expected requested_by %d, got %v", carol.UserID, list[0]["requested_by"])
	}
}
