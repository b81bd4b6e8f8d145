package userControllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userControllers "github.com/offanish/proshop/controllers/user"
	"github.com/offanish/proshop/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("is_admin", true)
		c.Next()
	}
}

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", userControllers.RegisterUser(db))
	r.POST("/users/login", userControllers.LoginUser(db))
	r.GET("/users/profile", fakeAuth(userID), userControllers.GetProfile(db))
	r.PUT("/users/profile", fakeAuth(userID), userControllers.UpdateProfile(db))
	r.GET("/users", fakeAuth(userID), userControllers.GetAllUsers(db))
	r.GET("/users/:id", fakeAuth(userID), userControllers.GetUserByID(db))
	r.PUT("/users/:id", fakeAuth(userID), userControllers.UpdateUser(db))
	r.DELETE("/users/:id", fakeAuth(userID), userControllers.DeleteUser(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newRouter(db, "")

	w, body := doJSON(t, r, http.MethodPost, "/users",
		`{"name":"Alice","email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Alice", body["name"])
	require.NotEmpty(t, body["token"])
	require.NotContains(t, w.Body.String(), "secret1", "credential must never be serialized")

	// stored credential is a hash, not the password
	var user models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))

	w, body = doJSON(t, r, http.MethodPost, "/users/login",
		`{"email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newRouter(db, "")

	w, _ := doJSON(t, r, http.MethodPost, "/users",
		`{"name":"Alice","email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := doJSON(t, r, http.MethodPost, "/users",
		`{"name":"Imposter","email":"a@b.com","password":"secret2"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User already exists", body["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newRouter(db, "")

	doJSON(t, r, http.MethodPost, "/users", `{"name":"Alice","email":"a@b.com","password":"secret1"}`)

	w, body := doJSON(t, r, http.MethodPost, "/users/login",
		`{"email":"a@b.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newRouter(db, "")

	_, body := doJSON(t, r, http.MethodPost, "/users",
		`{"name":"Alice","email":"a@b.com","password":"secret1"}`)
	userID := body["id"].(string)

	r = newRouter(db, userID)
	w, body := doJSON(t, r, http.MethodPut, "/users/profile",
		`{"name":"Alicia","password":"newsecret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["token"])

	w, body = doJSON(t, r, http.MethodPost, "/users/login",
		`{"email":"a@b.com","password":"newsecret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Alicia", body["name"])
}

func TestAdminUserManagement(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newRouter(db, "admin")

	_, body := doJSON(t, r, http.MethodPost, "/users",
		`{"name":"Alice","email":"a@b.com","password":"secret1"}`)
	userID := body["id"].(string)

	// promote
	w, _ := doJSON(t, r, http.MethodPut, "/users/"+userID, `{"isAdmin": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	require.True(t, user.IsAdmin)

	// delete
	w, _ = doJSON(t, r, http.MethodDelete, "/users/"+userID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/users/"+userID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", body["error"])
}
