package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/company"
	companyPostgres "github.com/frahmantamala/sistema-extras/internal/company/postgres"
	companyDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/company"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Company Handler Integration", func() {
	var (
		db        *gorm.DB
		router    chi.Router
		principal *internal.User
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req = req.WithContext(internal.ContextWithUser(req.Context(), principal))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	create := func(name string) company.Company {
		w := do(http.MethodPost, "/companies", map[string]string{"name": name})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var c company.Company
		Expect(json.NewDecoder(w.Body).Decode(&c)).To(Succeed())
		return c
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		principal = &internal.User{ID: "admin", Role: internal.RoleAdmin}

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&companyDatamodel.Company{})).To(Succeed())

		service := company.NewService(companyPostgres.NewCompanyRepository(db), slogger)
		handler := company.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/companies", handler.ListCompanies)
		router.Get("/companies/authorized", handler.ListAuthorized)
		router.Post("/companies", handler.CreateCompany)
		router.Get("/companies/{id}", handler.GetCompany)
		router.Put("/companies/{id}", handler.UpdateCompany)
		router.Delete("/companies/{id}", handler.DeleteCompany)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("creates and reads back a company", func() {
		c := create("Arena Eventos")

		w := do(http.MethodGet, "/companies/"+c.ID, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var got company.Company
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Name).To(Equal("Arena Eventos"))
		Expect(got.Ativa).To(BeTrue())
	})

	It("lists companies by name", func() {
		create("Zeta")
		create("Alfa")

		w := do(http.MethodGet, "/companies", nil)
		var list []company.Company
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(2))
		Expect(list[0].Name).To(Equal("Alfa"))
	})

	It("scopes the authorized listing for non-admins", func() {
		alfa := create("Alfa")
		create("Beta")

		principal = &internal.User{ID: "g", Role: internal.RoleGestor, AuthorizedCompanyIDs: []string{alfa.ID}}
		w := do(http.MethodGet, "/companies/authorized", nil)
		var list []company.Company
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(1))
		Expect(list[0].ID).To(Equal(alfa.ID))
	})

	It("deactivates through PUT", func() {
		c := create("Arena")
		w := do(http.MethodPut, "/companies/"+c.ID, map[string]interface{}{"ativa": false})
		Expect(w.Code).To(Equal(http.StatusOK))

		count, err := companyPostgres.NewCompanyRepository(db).Count(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(1)))

		w = do(http.MethodGet, "/companies/"+c.ID, nil)
		var got company.Company
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Ativa).To(BeFalse())
	})

	It("returns 404 for a missing company and success on delete", func() {
		Expect(do(http.MethodGet, "/companies/missing", nil).Code).To(Equal(http.StatusNotFound))

		c := create("Arena")
		w := do(http.MethodDelete, "/companies/"+c.ID, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"success":true}`))
		Expect(do(http.MethodDelete, "/companies/"+c.ID, nil).Code).To(Equal(http.StatusNotFound))
	})

	It("answers validation failures with details", func() {
		w := do(http.MethodPost, "/companies", map[string]string{"name": "X", "cnpj": "123"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["code"]).To(Equal("VALIDATION_FAILED"))
		Expect(body).To(HaveKey("details"))
	})
})
