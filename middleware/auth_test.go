package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carelink_backend_go/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func protectedRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		seen = userID
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &seen
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	r, seen := protectedRouter()

	userID := uuid.New()
	access, refresh, err := auth.GenerateTokenPair(userID)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid access token", "Bearer " + access, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nonsense", http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + refresh, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}

	if *seen != userID {
		t.Errorf("handler saw user %v, want %v", *seen, userID)
	}
}
