// File: /controllers/admin_controller_test.go
package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/models"
)

func adminRouter(db *gorm.DB) *gin.Engine {
	adc := NewAdminController(db, testEmailService())

	r := gin.New()
	r.Use(asUser(1, models.RoleAdmin))
	r.GET("/admin/pending-users", adc.GetPendingUsers)
	r.POST("/admin/verify/:user_id", adc.VerifyUser)
	r.POST("/admin/revoke/:user_id", adc.RevokeUser)
	return r
}

func TestGetPendingUsers(t *testing.T) {
	db := setupTestDB(t)

	pending := createUser(t, db, "pending@example.com", models.RoleAlumni, false)
	createAlumniProfile(t, db, pending.UserID, "Pending Alum")

	verified := createUser(t, db, "verified@example.com", models.RoleAlumni, true)
	createAlumniProfile(t, db, verified.UserID, "Verified Alum")

	student := createUser(t, db, "student@example.com", models.RoleStudent, true)
	createStudentProfile(t, db, student.UserID, "Student")

	w := doJSON(t, adminRouter(db), http.MethodGet, "/admin/pending-users", nil)
	requireStatus(t, w, http.StatusOK)

	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("expected 1 pending alumni, got %d", len(list))
	}
	if list[0]["email"] != "pending@example.com" || list[0]["name"] != "Pending Alum" {
		t.Errorf("unexpected pending row: %v", list[0])
	}
}

func TestVerifyAndRevokeUser(t *testing.T) {
	db := setupTestDB(t)

	alum := createUser(t, db, "alum@example.com", models.RoleAlumni, false)
	createAlumniProfile(t, db, alum.UserID, "Alum")
	router := adminRouter(db)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/admin/verify/%d", alum.UserID), nil)
	requireStatus(t, w, http.StatusOK)

	var user models.User
	db.First(&user, alum.UserID)
	if !user.Verified {
		t.Error("user not verified after verify call")
	}

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/admin/revoke/%d", alum.UserID), nil)
	requireStatus(t, w, http.StatusOK)

	db.First(&user, alum.UserID)
	if user.Verified {
		t.Error("user still verified after revoke call")
	}
}

func TestVerifyUserRejectsNonAlumni(t *testing.T) {
	db := setupTestDB(t)

	student := createUser(t, db, "student@example.com", models.RoleStudent, true)
	router := adminRouter(db)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/admin/verify/%d", student.UserID), nil)
	requireStatus(t, w, http.StatusNotFound)

	w = doJSON(t, router, http.MethodPost, "/admin/verify/9999", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = doJSON(t, router, http.MethodPost, "/admin/verify/abc", nil)
	requireStatus(t, w, http.StatusBadRequest)
}
