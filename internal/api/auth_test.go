package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user", RegisterHandler(db))
	r.GET("/user", LoginHandler(db, "test-secret"))
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	rec, env := doRequest(t, r, http.MethodPost, "/user", gin.H{
		"email":    "Admin@Example.com",
		"username": "Admin",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	// Login with the normalized username
	rec, env = doRequest(t, r, http.MethodGet, "/user", gin.H{
		"username": "admin",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	cases := map[string]gin.H{
		"missing email":     {"username": "admin", "password": "supersecret"},
		"bad email":         {"email": "nope", "username": "admin", "password": "supersecret"},
		"numeric username":  {"email": "a@b.com", "username": "admin1", "password": "supersecret"},
		"short password":    {"email": "a@b.com", "username": "admin", "password": "short"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rec, env := doRequest(t, r, http.MethodPost, "/user", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	rec, _ := doRequest(t, r, http.MethodPost, "/user", gin.H{
		"email":    "admin@example.com",
		"username": "admin",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doRequest(t, r, http.MethodGet, "/user", gin.H{
		"username": "admin",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}
