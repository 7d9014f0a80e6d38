package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/accounts-backend/internal/infrastructure/auth"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret")
	middleware := NewAuthMiddleware(tokens)

	router := gin.New()
	router.PUT("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})

	return router, tokens
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	router, tokens := setupAuthRouter(t)

	validToken, err := tokens.Sign(7)
	if err != nil {
		t.Fatalf("erro inesperado ao assinar: %v", err)
	}

	t.Run("sem token retorna 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", w.Code)
		}
	})

	t.Run("cookie sem prefixo Bearer retorna 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: validToken})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", w.Code)
		}
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "Bearer garbage"})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", w.Code)
		}
	})

	t.Run("token assinado com outro segredo retorna 401", func(t *testing.T) {
		forged, err := auth.NewTokenManager("wrong-secret").Sign(7)
		if err != nil {
			t.Fatalf("erro inesperado ao assinar: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "Bearer " + forged})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", w.Code)
		}
	})

	t.Run("cookie válido libera o handler", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "Bearer " + validToken})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("fallback para o header Authorization", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}
	})
}
