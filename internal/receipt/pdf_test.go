package receipt_test

import (
	"bytes"
	"time"

	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PDFRenderer", func() {
	DescribeTable("FormatBRL",
		func(v float64, want string) {
			Expect(receipt.FormatBRL(v)).To(Equal(want))
		},
		Entry("zero", 0.0, "R$ 0,00"),
		Entry("cents", 0.5, "R$ 0,50"),
		Entry("hundreds", 150.0, "R$ 150,00"),
		Entry("thousands", 1234.56, "R$ 1.234,56"),
		Entry("millions", 1234567.891, "R$ 1.234.567,89"),
		Entry("negative", -42.1, "R$ -42,10"),
	)

	DescribeTable("FormatDate",
		func(in, want string) {
			Expect(receipt.FormatDate(in)).To(Equal(want))
		},
		Entry("iso date", "2024-03-15", "15/03/2024"),
		Entry("empty", "", "-"),
		Entry("unparsable", "amanhã", "amanhã"),
	)

	It("renders every optional line without failing", func() {
		approver := "Maria"
		ack := "Carlos"
		at := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)
		out, err := receipt.NewPDFRenderer("").Render(&receiptDatamodel.Source{
			ExtraID:        "x-1",
			DataEvento:     "2024-03-15",
			HoraEntrada:    "18:00",
			HoraSaida:      "23:00",
			Valor:          99.9,
			Vaga:           "Atração principal",
			Status:         "aprovado",
			AprovadoEm:     &at,
			CienciaEm:      &at,
			EmployeeName:   "José",
			PixKey:         "jose@pix",
			Banco:          "Banco do Brasil",
			ApproverName:   &approver,
			AcknowledgedBy: &ack,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes.HasPrefix(out, []byte("%PDF-"))).To(BeTrue())
		Expect(out).To(ContainSubstring("%%EOF"))
	})
})
