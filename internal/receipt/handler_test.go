package receipt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	companyDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/company"
	employeeDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/employee"
	extraDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/extra"
	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	receiptPostgres "github.com/frahmantamala/sistema-extras/internal/receipt/postgres"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Receipt Handler Integration", func() {
	var (
		db     *gorm.DB
		repo   receipt.RepositoryAPI
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

	insertExtra := func(id, status string, approvedBy *string) {
		now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
		e := &extraDatamodel.Extra{
			ID:          id,
			UserID:      "u-1",
			EmployeeID:  "emp-1",
			CompanyID:   "comp-1",
			DataEvento:  "2024-03-15",
			HoraEntrada: "18:00",
			HoraSaida:   "23:00",
			Valor:       250,
			Setor:       "Bar",
			Status:      status,
			AprovadoPor: approvedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if approvedBy != nil {
			e.AprovadoEm = &now
		}
		Expect(db.Create(e).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(
			&userDatamodel.User{},
			&companyDatamodel.Company{},
			&employeeDatamodel.Employee{},
			&extraDatamodel.Extra{},
			&receiptDatamodel.Receipt{},
		)).To(Succeed())

		Expect(db.Create(&userDatamodel.User{ID: "u-1", Email: "lan@example.com", PasswordHash: "x", Name: "Lan", Role: internal.RoleLancador}).Error).To(Succeed())
		Expect(db.Create(&userDatamodel.User{ID: "g-1", Email: "ana@example.com", PasswordHash: "x", Name: "Ana Gestora", Role: internal.RoleGestor}).Error).To(Succeed())
		Expect(db.Create(&companyDatamodel.Company{ID: "comp-1", Name: "Casa de Show", Ativa: true}).Error).To(Succeed())
		Expect(db.Create(&employeeDatamodel.Employee{ID: "emp-1", Name: "João", CPF: "12345678901", PixKey: "joao@pix", Ativo: true}).Error).To(Succeed())

		approver := "g-1"
		insertExtra("x-approved", "aprovado", &approver)
		insertExtra("x-pending", "pendente", nil)

		repo = receiptPostgres.NewReceiptRepository(db)
		service := receipt.NewService(repo, receipt.NewPDFRenderer("Gestor"), slogger)
		handler := receipt.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Post("/recibos", handler.GenerateReceipt)
		router.Get("/recibos/{extraId}", handler.GetReceipt)
		router.Get("/recibos/{extraId}/pdf", handler.DownloadReceipt)
		router.Delete("/recibos/{extraId}", handler.DeleteReceipt)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("loads the receipt source with joined names", func() {
		src, err := repo.LoadSource(context.Background(), "x-approved")
		Expect(err).NotTo(HaveOccurred())
		Expect(src.CompanyName).To(Equal("Casa de Show"))
		Expect(src.EmployeeName).To(Equal("João"))
		Expect(src.PixKey).To(Equal("joao@pix"))
		Expect(*src.ApproverName).To(Equal("Ana Gestora"))
		Expect(src.AcknowledgedBy).To(BeNil())

		_, err = repo.LoadSource(context.Background(), "missing")
		Expect(err).To(MatchError(internal.ErrExtraNotFound))
	})

	It("generates, reads, downloads and deletes a receipt", func() {
		w := do(http.MethodPost, "/recibos", map[string]string{"extra_id": "x-approved"})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created receipt.ReceiptResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Total).To(Equal(250.0))
		Expect(created.PDFURL).To(HavePrefix("data:application/pdf;base64,"))

		w = do(http.MethodPost, "/recibos", map[string]string{"extra_id": "x-approved"})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var count int64
		Expect(db.Model(&receiptDatamodel.Receipt{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))

		w = do(http.MethodGet, "/recibos/x-approved/pdf", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="recibo_x-approved.pdf"`))
		Expect(strings.HasPrefix(w.Body.String(), "%PDF")).To(BeTrue())

		w = do(http.MethodDelete, "/recibos/x-approved", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"success": true}`))

		w = do(http.MethodDelete, "/recibos/x-approved", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("regenerates a missing receipt on read", func() {
		w := do(http.MethodGet, "/recibos/x-approved", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		ids, err := repo.ListMissing(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(BeEmpty())
	})

	It("lists eligible extras without receipts", func() {
		ids, err := repo.ListMissing(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(Equal([]string{"x-approved"}))
	})

	It("refuses receipts for pending extras", func() {
		w := do(http.MethodPost, "/recibos", map[string]string{"extra_id": "x-pending"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("receipt not available for status"))

		w = do(http.MethodGet, "/recibos/x-pending", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("Receipt not found"))
	})

	It("returns 404 for an unknown extra", func() {
		w := do(http.MethodPost, "/recibos", map[string]string{"extra_id": "nope"})
		Expect(w.Code).To(Equal(http.StatusNotFound))
		w = do(http.MethodGet, "/recibos/nope/pdf", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("validates the request body", func() {
		w := do(http.MethodPost, "/recibos", map[string]string{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
