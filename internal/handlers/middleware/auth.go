package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/accounts-backend/internal/infrastructure/auth"
)

const (
	// AuthCookieName é o cookie que carrega o token de acesso
	AuthCookieName = "authorization"
	// UserIDContextKey é a chave do userId autenticado no contexto do Gin
	UserIDContextKey = "userId"
)

// AuthMiddleware valida o token de acesso antes dos handlers protegidos
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth extrai o bearer token do cookie `authorization` (ou do
// header Authorization), verifica a assinatura e disponibiliza o userId
// no contexto. Aborta com 401 antes do corpo do handler quando o token
// está ausente, malformado ou inválido.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := m.extractToken(c)
		if raw == "" {
			m.abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.abortUnauthorized(c)
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			m.abortUnauthorized(c)
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader("Authorization")
}

func (m *AuthMiddleware) abortUnauthorized(c *gin.Context) {
	// O pacote dto importa este pacote; montar o problema direto
	// evita um ciclo de importação com os helpers i18n
	problem := problems.NewStatusProblem(http.StatusUnauthorized)
	problem.Instance = c.Request.URL.Path
	c.AbortWithStatusJSON(http.StatusUnauthorized, problem)
}

// GetUserID retorna o userId autenticado do contexto
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDContextKey)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint)
	return userID, ok
}
