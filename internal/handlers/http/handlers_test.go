package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/accounts-backend/internal/domain/repositories"
	"github.com/rafabene/accounts-backend/internal/handlers/dto"
	"github.com/rafabene/accounts-backend/internal/handlers/middleware"
	"github.com/rafabene/accounts-backend/internal/infrastructure/auth"
	"github.com/rafabene/accounts-backend/internal/infrastructure/logging"
	"github.com/rafabene/accounts-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/accounts-backend/internal/services"
)

type testEnv struct {
	router      *gin.Engine
	userRepo    repositories.UserRepository
	infoRepo    repositories.UserInfoRepository
	historyRepo repositories.UserHistoryRepository
}

// setupEnv monta o router com a mesma cadeia do processo real,
// sobre um SQLite em memória
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := dto.RegisterCustomValidators(); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	log := logging.NewSlogLogger("error")
	userRepo := postgres.NewUserRepository(db)
	infoRepo := postgres.NewUserInfoRepository(db)
	historyRepo := postgres.NewUserHistoryRepository(db)
	uow := postgres.NewUnitOfWork(db)

	tokens := auth.NewTokenManager("test-secret")
	accountService := services.NewAccountService(userRepo, infoRepo, historyRepo, uow, nil, log)
	authService := services.NewAuthService(userRepo, tokens, log)

	userHandler := NewUserHandler(accountService)
	authHandler := NewAuthHandler(authService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	router := gin.New()
	router.POST("/users", userHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/users/:userId", userHandler.GetUser)
	router.GET("/users/:userId/histories", userHandler.ListHistories)
	router.PUT("/users/name", authMiddleware.RequireAuth(), userHandler.ChangeName)

	return &testEnv{
		router:      router,
		userRepo:    userRepo,
		infoRepo:    infoRepo,
		historyRepo: historyRepo,
	}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body map[string]any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"email":        email,
		"password":     "pass1234",
		"name":         "Alice",
		"age":          28,
		"gender":       "female",
		"profileImage": "https://example.com/alice.png",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupEnv(t)

	t.Run("primeiro cadastro retorna 201", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/users", registerBody("alice@example.com"), nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("esperava 201, obteve %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("email repetido retorna 409", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/users", registerBody("alice@example.com"), nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("esperava 409, obteve %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("corpo sem email retorna 400", func(t *testing.T) {
		body := registerBody("")
		delete(body, "email")
		w := env.doJSON(t, http.MethodPost, "/users", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("gênero não reconhecido retorna 400", func(t *testing.T) {
		body := registerBody("bob@example.com")
		body["gender"] = "dragon"
		w := env.doJSON(t, http.MethodPost, "/users", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGetUserEndpoint(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	w := env.doJSON(t, http.MethodPost, "/users", registerBody("carol@example.com"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("cadastro falhou: %d %s", w.Code, w.Body.String())
	}

	created, err := env.userRepo.FindByEmail(ctx, "carol@example.com")
	if err != nil || created == nil {
		t.Fatalf("usuário não encontrado após cadastro: %v", err)
	}

	t.Run("retorna o registro composto com gênero em maiúsculas", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/users/"+strconv.Itoa(int(created.UserID)), nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Data *dto.UserResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}
		if response.Data == nil {
			t.Fatal("esperava data preenchido")
		}
		if response.Data.Email != "carol@example.com" {
			t.Errorf("email inesperado: %q", response.Data.Email)
		}
		if response.Data.UserInfo == nil {
			t.Fatal("esperava perfil aninhado")
		}
		if response.Data.UserInfo.Gender != "FEMALE" {
			t.Errorf("esperava FEMALE, obteve %q", response.Data.UserInfo.Gender)
		}
		if response.Data.UserInfo.Name != "Alice" || response.Data.UserInfo.Age != 28 {
			t.Errorf("perfil inesperado: %+v", response.Data.UserInfo)
		}
	})

	t.Run("ausência retorna 200 com data null", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/users/99999", nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"data":null`) {
			t.Errorf("esperava data null, obteve %s", w.Body.String())
		}
	})
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			return cookie
		}
	}
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.doJSON(t, http.MethodPost, "/users", registerBody("dave@example.com"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("cadastro falhou: %d %s", w.Code, w.Body.String())
	}

	t.Run("email desconhecido retorna 401 sem cookie", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "pass1234",
		}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401, obteve %d", w.Code)
		}
		if authCookie(t, w) != nil {
			t.Error("não deveria haver cookie de autenticação")
		}
	})

	t.Run("senha incorreta retorna 401 sem cookie", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/login", map[string]any{
			"email":    "dave@example.com",
			"password": "wrong-pass",
		}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401, obteve %d", w.Code)
		}
		if authCookie(t, w) != nil {
			t.Error("não deveria haver cookie de autenticação")
		}
	})

	t.Run("credenciais corretas retornam 200 com cookie Bearer", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPost, "/login", map[string]any{
			"email":    "dave@example.com",
			"password": "pass1234",
		}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}

		cookie := authCookie(t, w)
		if cookie == nil {
			t.Fatal("esperava cookie de autenticação")
		}

		// O valor do cookie vem URL-encoded (Bearer%20<token>)
		value, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			t.Fatalf("cookie inválido: %v", err)
		}
		if !strings.HasPrefix(value, "Bearer ") || len(value) <= len("Bearer ") {
			t.Errorf("esperava 'Bearer <token>', obteve %q", value)
		}
	})
}

func TestChangeNameEndpoint(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	w := env.doJSON(t, http.MethodPost, "/users", registerBody("erin@example.com"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("cadastro falhou: %d %s", w.Code, w.Body.String())
	}
	created, err := env.userRepo.FindByEmail(ctx, "erin@example.com")
	if err != nil || created == nil {
		t.Fatalf("usuário não encontrado após cadastro: %v", err)
	}

	t.Run("sem cookie falha antes de qualquer escrita", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPut, "/users/name", map[string]any{"name": "Hacker"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401, obteve %d", w.Code)
		}

		info, err := env.infoRepo.FindByUserID(ctx, created.UserID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if info.Name != "Alice" {
			t.Errorf("nome não deveria ter mudado, obteve %q", info.Name)
		}
	})

	login := env.doJSON(t, http.MethodPost, "/login", map[string]any{
		"email":    "erin@example.com",
		"password": "pass1234",
	}, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("login falhou: %d %s", login.Code, login.Body.String())
	}
	cookie := authCookie(t, login)
	if cookie == nil {
		t.Fatal("esperava cookie de autenticação")
	}

	t.Run("com cookie atualiza nome e grava auditoria", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPut, "/users/name", map[string]any{"name": "Eve"}, []*http.Cookie{cookie})
		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}

		info, err := env.infoRepo.FindByUserID(ctx, created.UserID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if info.Name != "Eve" {
			t.Errorf("esperava Eve, obteve %q", info.Name)
		}

		histories, err := env.historyRepo.ListByUserID(ctx, created.UserID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(histories) != 1 {
			t.Fatalf("esperava exatamente 1 registro de auditoria, obteve %d", len(histories))
		}
		if histories[0].BeforeName != "Alice" || histories[0].AfterName != "Eve" {
			t.Errorf("registro inesperado: %+v", histories[0])
		}
	})

	t.Run("corpo sem nome retorna 400", func(t *testing.T) {
		w := env.doJSON(t, http.MethodPut, "/users/name", map[string]any{}, []*http.Cookie{cookie})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", w.Code)
		}
	})
}

func TestListHistoriesEndpoint(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	w := env.doJSON(t, http.MethodPost, "/users", registerBody("frank@example.com"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("cadastro falhou: %d %s", w.Code, w.Body.String())
	}
	created, err := env.userRepo.FindByEmail(ctx, "frank@example.com")
	if err != nil || created == nil {
		t.Fatalf("usuário não encontrado após cadastro: %v", err)
	}

	login := env.doJSON(t, http.MethodPost, "/login", map[string]any{
		"email":    "frank@example.com",
		"password": "pass1234",
	}, nil)
	cookie := authCookie(t, login)
	if cookie == nil {
		t.Fatal("esperava cookie de autenticação")
	}

	if w := env.doJSON(t, http.MethodPut, "/users/name", map[string]any{"name": "Francis"}, []*http.Cookie{cookie}); w.Code != http.StatusOK {
		t.Fatalf("troca de nome falhou: %d %s", w.Code, w.Body.String())
	}

	resp := env.doJSON(t, http.MethodGet, "/users/"+strconv.Itoa(int(created.UserID))+"/histories", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d", resp.Code)
	}

	var response struct {
		Data []dto.HistoryResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if len(response.Data) != 1 {
		t.Fatalf("esperava 1 registro, obteve %d", len(response.Data))
	}
	if response.Data[0].BeforeName != "Alice" || response.Data[0].AfterName != "Francis" {
		t.Errorf("registro inesperado: %+v", response.Data[0])
	}
}
