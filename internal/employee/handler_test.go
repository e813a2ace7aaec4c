package employee_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	employeeDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/employee"
	"github.com/frahmantamala/sistema-extras/internal/employee"
	employeePostgres "github.com/frahmantamala/sistema-extras/internal/employee/postgres"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Employee Handler Integration", func() {
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
		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		service := employee.NewService(employeePostgres.NewEmployeeRepository(db), slogger)
		handler := employee.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/employees", handler.ListEmployees)
		router.Post("/employees", handler.CreateEmployee)
		router.Get("/employees/{id}", handler.GetEmployee)
		router.Put("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("creates, filters, updates and deletes an employee", func() {
		w := do(http.MethodPost, "/employees", map[string]interface{}{
			"name":            "Ana Lima",
			"cpf":             "529.982.247-25",
			"data_nascimento": "1990-05-01",
			"pix_key":         "ana@pix",
			"company_id":      "c1",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = do(http.MethodGet, "/employees/"+created.ID, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var got employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.CPF).To(Equal("52998224725"))
		Expect(*got.DataNascimento).To(Equal("1990-05-01"))
		Expect(got.PixKey).To(Equal("ana@pix"))

		w = do(http.MethodGet, "/employees?company_id=c2", nil)
		var none []employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&none)).To(Succeed())
		Expect(none).To(BeEmpty())

		w = do(http.MethodPut, "/employees/"+created.ID, map[string]interface{}{"cargo": "Garçom", "ativo": false})
		Expect(w.Code).To(Equal(http.StatusOK))
		var updated employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.Cargo).To(Equal("Garçom"))
		Expect(updated.Ativo).To(BeFalse())
		Expect(updated.PixKey).To(Equal("ana@pix"))

		w = do(http.MethodDelete, "/employees/"+created.ID, nil)
		Expect(w.Body.String()).To(MatchJSON(`{"success":true}`))
		Expect(do(http.MethodGet, "/employees/"+created.ID, nil).Code).To(Equal(http.StatusNotFound))
	})

	It("answers 404 with the not found message", func() {
		w := do(http.MethodGet, "/employees/missing", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("Employee not found"))
	})
})
