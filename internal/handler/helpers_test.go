package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knowhive/knowhive/internal/handler"
	"github.com/knowhive/knowhive/internal/middleware"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/internal/testutil"
	"github.com/knowhive/knowhive/pkg/logger"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

// testEnv wires the full route table against an in-memory database, the
// same way cmd/server does against postgres.
type testEnv struct {
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	testDB := testutil.SetupTestDatabase(t)

	userRepo := repository.NewUserRepository(testDB.DB)
	profileRepo := repository.NewProfileRepository(testDB.DB)
	questionRepo := repository.NewQuestionRepository(testDB.DB)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, testJWTSecret, 1*time.Hour))
	profileHandler := handler.NewProfileHandler(service.NewProfileService(profileRepo))
	questionHandler := handler.NewQuestionHandler(service.NewQuestionService(questionRepo))

	authRequired := middleware.AuthMiddleware(userRepo, testJWTSecret)

	router := gin.New()

	auth := router.Group("/api/auth")
	{
		auth.GET("", authHandler.Status)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authRequired, authHandler.CurrentUser)
	}

	profile := router.Group("/api/profile")
	{
		profile.GET("", authRequired, profileHandler.GetOwn)
		profile.POST("", authRequired, profileHandler.Upsert)
		profile.DELETE("", authRequired, profileHandler.Delete)
		profile.GET("/:username", profileHandler.GetByUsername)
		profile.GET("/id/:id", profileHandler.GetByUserID)
		profile.GET("/find/everyone", profileHandler.List)
		profile.POST("/workrole", authRequired, profileHandler.AddWorkRole)
		profile.DELETE("/workrole/:w_id", authRequired, profileHandler.RemoveWorkRole)
	}

	questions := router.Group("/api/questions")
	{
		questions.GET("", questionHandler.List)
		questions.POST("", authRequired, questionHandler.Create)
		questions.POST("/answers/:id", authRequired, questionHandler.Answer)
		questions.POST("/upvote/:id", authRequired, questionHandler.Upvote)
		questions.DELETE("/delete/:id", authRequired, questionHandler.Delete)
		questions.DELETE("/deleteall", authRequired, questionHandler.DeleteAll)
	}

	return &testEnv{testDB: testDB, router: router}
}

// do performs a JSON request. token is the full "Bearer ..." value or ""
// for public routes.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// register creates an account through the API and returns the response.
func (e *testEnv) register(t *testing.T, name, email, password, gender string) map[string]interface{} {
	w := e.do(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"gender":   gender,
	})
	require.Equal(t, 200, w.Code, "register failed: %s", w.Body.String())
	return decode(t, w)
}

// login returns the "Bearer ..." token for the credentials.
func (e *testEnv) login(t *testing.T, email, password string) string {
	w := e.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, 200, w.Code, "login failed: %s", w.Body.String())

	resp := decode(t, w)
	token, ok := resp["token"].(string)
	require.True(t, ok, "login response missing token")
	return token
}
