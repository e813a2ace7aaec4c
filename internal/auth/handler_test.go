package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/auth"
	authPostgres "github.com/frahmantamala/sistema-extras/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteExtra carries only the owner column the receipt gate reads.
type SQLiteExtra struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"column:user_id"`
}

func (SQLiteExtra) TableName() string {
	return "extras"
}

var _ = Describe("Auth Handler Integration", func() {
	var (
		db       *gorm.DB
		router   chi.Router
		tokenGen *auth.JWTTokenGenerator
	)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(email string) string {
		w := do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "senha1234"})
		Expect(w.Code).To(Equal(http.StatusOK))
		var tokens auth.AuthTokens
		Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())
		return tokens.AccessToken
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &SQLiteExtra{})).To(Succeed())

		hash, _ := bcrypt.GenerateFromPassword([]byte("senha1234"), bcrypt.MinCost)
		now := time.Now()
		for _, u := range []*userDatamodel.User{
			{ID: "u-admin", Email: "admin@example.com", PasswordHash: string(hash), Name: "Admin", Role: "admin", CreatedAt: now, UpdatedAt: now},
			{ID: "u-gestor", Email: "gestor@example.com", PasswordHash: string(hash), Name: "Gestor", Role: "gestor", CreatedAt: now, UpdatedAt: now},
			{ID: "u-lan", Email: "lan@example.com", PasswordHash: string(hash), Name: "Lan", Role: "lançador", CreatedAt: now, UpdatedAt: now},
		} {
			Expect(db.Create(u).Error).To(Succeed())
		}
		Expect(db.Create(&SQLiteExtra{ID: "e-own", UserID: "u-lan"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteExtra{ID: "e-other", UserID: "u-gestor"}).Error).To(Succeed())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		// every pooled connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		sqlxDB := sqlx.NewDb(sqlDB, "sqlite3")

		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
		service := auth.NewService(authPostgres.NewRepository(db), tokenGen, bcrypt.MinCost, slogger)
		handler := auth.NewHandler(transport.NewBaseHandler(slogger), service)
		rbac := auth.NewRBACAuthorization(slogger)
		ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

		router = chi.NewRouter()
		router.Post("/auth/login", handler.Login)
		router.Post("/auth/refresh", handler.RefreshToken)
		router.Group(func(r chi.Router) {
			r.Use(handler.AuthMiddleware)
			r.Post("/auth/logout", handler.Logout)
			r.Get("/auth/me", handler.Me)
			r.Put("/auth/password", handler.ChangePassword)
			r.With(rbac.RequireAdmin()).Get("/admin-only", ok)
			r.With(rbac.RequireManager()).Get("/manager-only", ok)
			r.With(auth.RequireReceiptAccess(auth.SQLOwnerLookup(sqlxDB), &auth.ABACPolicy{}, slogger)).
				Get("/recibos/{extraId}", ok)
		})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("logs in and returns the principal from /auth/me", func() {
		token := login("lan@example.com")

		w := do(http.MethodGet, "/auth/me", token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var me internal.User
		Expect(json.NewDecoder(w.Body).Decode(&me)).To(Succeed())
		Expect(me.ID).To(Equal("u-lan"))
		Expect(me.Role).To(Equal(internal.RoleLancador))
		Expect(me.AuthorizedCompanyIDs).To(BeEmpty())
	})

	It("answers bad credentials with 401", func() {
		w := do(http.MethodPost, "/auth/login", "", map[string]string{"email": "lan@example.com", "password": "nope"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("Invalid email or password"))
	})

	It("requires a bearer token", func() {
		Expect(do(http.MethodGet, "/auth/me", "", nil).Code).To(Equal(http.StatusUnauthorized))
		Expect(do(http.MethodGet, "/auth/me", "garbage", nil).Code).To(Equal(http.StatusUnauthorized))
	})

	It("logs out with 204", func() {
		Expect(do(http.MethodPost, "/auth/logout", login("admin@example.com"), nil).Code).To(Equal(http.StatusNoContent))
	})

	It("refreshes a token pair", func() {
		w := do(http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@example.com", "password": "senha1234"})
		var tokens auth.AuthTokens
		Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())

		w = do(http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken})
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("changes the password", func() {
		token := login("gestor@example.com")
		w := do(http.MethodPut, "/auth/password", token, map[string]string{
			"current_password": "senha1234",
			"new_password":     "outra9876",
		})
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodPost, "/auth/login", "", map[string]string{"email": "gestor@example.com", "password": "outra9876"})
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("rejects a token whose user was deleted", func() {
		token := login("lan@example.com")
		Expect(db.Where("id = ?", "u-lan").Delete(&userDatamodel.User{}).Error).To(Succeed())
		Expect(do(http.MethodGet, "/auth/me", token, nil).Code).To(Equal(http.StatusUnauthorized))
	})

	Describe("role gates", func() {
		It("limits admin routes to admins", func() {
			Expect(do(http.MethodGet, "/admin-only", login("admin@example.com"), nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/admin-only", login("gestor@example.com"), nil).Code).To(Equal(http.StatusForbidden))
		})

		It("admits admin and gestor as managers", func() {
			Expect(do(http.MethodGet, "/manager-only", login("admin@example.com"), nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/manager-only", login("gestor@example.com"), nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/manager-only", login("lan@example.com"), nil).Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("receipt scope", func() {
		It("lets a submitter reach their own receipt only", func() {
			token := login("lan@example.com")
			Expect(do(http.MethodGet, "/recibos/e-own", token, nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/recibos/e-other", token, nil).Code).To(Equal(http.StatusForbidden))
			Expect(do(http.MethodGet, "/recibos/e-missing", token, nil).Code).To(Equal(http.StatusNotFound))
		})

		It("lets managers through without a lookup", func() {
			Expect(do(http.MethodGet, "/recibos/e-missing", login("gestor@example.com"), nil).Code).To(Equal(http.StatusOK))
		})
	})
})

var _ = Describe("ABACPolicy", func() {
	p := &auth.ABACPolicy{}

	It("allows owners and managers", func() {
		Expect(p.CanAccessExtra(&internal.User{ID: "a", Role: internal.RoleLancador}, "a")).To(Succeed())
		Expect(p.CanAccessExtra(&internal.User{ID: "g", Role: internal.RoleGestor}, "a")).To(Succeed())
	})

	It("denies other submitters and anonymous callers", func() {
		Expect(p.CanAccessExtra(&internal.User{ID: "b", Role: internal.RoleLancador}, "a")).To(MatchError(internal.ErrUnauthorizedAccess))
		Expect(p.CanAccessExtra(nil, "a")).To(MatchError(internal.ErrUnauthorizedAccess))
	})
})
