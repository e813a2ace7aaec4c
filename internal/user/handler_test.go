package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/frahmantamala/sistema-extras/internal/user"
	userPostgres "github.com/frahmantamala/sistema-extras/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("User Handler Integration", func() {
	var (
		db     *gorm.DB
		router chi.Router
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{})).To(Succeed())

		repo := userPostgres.NewUserRepository(db)
		handler := user.NewHandler(transport.NewBaseHandler(slogger), user.NewService(repo, bcrypt.MinCost, slogger))

		router = chi.NewRouter()
		router.Get("/users", handler.ListUsers)
		router.Post("/users", handler.CreateUser)
		router.Get("/users/{email}", handler.GetUser)
		router.Put("/users/{email}", handler.UpdateUser)
		router.Delete("/users/{email}", handler.DeleteUser)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newUser := map[string]interface{}{
		"email":    "joao@example.com",
		"password": "senha1234",
		"name":     "João",
		"role":     "gestor",
	}

	It("creates and reads back a user without the password", func() {
		w := do(http.MethodPost, "/users", newUser)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		w = do(http.MethodGet, "/users/joao@example.com", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Name).To(Equal("João"))
		Expect(got.Role).To(Equal("gestor"))
		Expect(got.AuthorizedCompanyIDs).To(BeEmpty())
	})

	It("returns 400 for a duplicate email", func() {
		Expect(do(http.MethodPost, "/users", newUser).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPost, "/users", newUser)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["error"]).To(Equal("User already exists"))
		Expect(body["code"]).To(Equal("USER_ALREADY_EXISTS"))
	})

	It("rejects unknown fields in the body", func() {
		body := map[string]interface{}{"email": "a@b.com", "nickname": "x"}
		Expect(do(http.MethodPost, "/users", body).Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for a missing user", func() {
		w := do(http.MethodGet, "/users/ghost@example.com", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("User not found"))
	})

	It("merges updates and keeps the email", func() {
		Expect(do(http.MethodPost, "/users", newUser).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPut, "/users/joao@example.com", map[string]interface{}{
			"setor":                  "Portaria",
			"authorized_company_ids": []string{"c-1"},
		})
		Expect(w.Code).To(Equal(http.StatusOK))

		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Email).To(Equal("joao@example.com"))
		Expect(got.Name).To(Equal("João"))
		Expect(got.Setor).To(Equal("Portaria"))

		stored, err := userPostgres.NewUserRepository(db).GetByEmail(context.Background(), "joao@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect([]string(stored.AuthorizedCompanyIDs)).To(Equal([]string{"c-1"}))
	})

	It("deletes a user", func() {
		Expect(do(http.MethodPost, "/users", newUser).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodDelete, "/users/joao@example.com", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"success":true}`))

		Expect(do(http.MethodDelete, "/users/joao@example.com", nil).Code).To(Equal(http.StatusNotFound))
	})

	It("decodes percent-encoded emails in the path", func() {
		Expect(do(http.MethodPost, "/users", newUser).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodGet, "/users/joao%40example.com", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"email":"joao@example.com"`))

		w = do(http.MethodPut, "/users/joao%40example.com", map[string]interface{}{"setor": "Bar"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"setor":"Bar"`))

		Expect(do(http.MethodDelete, "/users/joao%40example.com", nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/users/joao@example.com", nil).Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a malformed escape in the path", func() {
		req := httptest.NewRequest(http.MethodGet, "/users/placeholder", nil)
		req.URL.Path = "/users/joao%zzexample.com"
		req.URL.RawPath = "/users/joao%zzexample.com"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
	})
})
