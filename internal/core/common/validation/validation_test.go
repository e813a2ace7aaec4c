package validation_test

import (
	"testing"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fieldCodes(err *internal.AppError) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	for _, e := range err.Details.(internal.ValidationErrors).Errors {
		out[e.Field] = e.Code
	}
	return out
}

var _ = Describe("ValidationBuilder", func() {
	It("passes a valid shift", func() {
		Expect(validation.NewValidator().Shift("", "2024-05-10", "18:00", "23:30", 150).Validate()).To(BeNil())
	})

	It("collects every failing field", func() {
		err := validation.NewValidator().Shift("", "10/05/2024", "25:00", "", -1).Validate()

		Expect(err).NotTo(BeNil())
		Expect(fieldCodes(err)).To(Equal(map[string]string{
			"data_evento":  string(internal.ErrCodeInvalidDate),
			"hora_entrada": string(internal.ErrCodeInvalidTime),
			"hora_saida":   string(internal.ErrCodeValidationFailed),
			"valor":        string(internal.ErrCodeInvalidValor),
		}))
	})

	It("prefixes batch item fields", func() {
		err := validation.NewValidator().Shift("items[1].", "2024-05-10", "18:00", "", 10).Validate()
		Expect(fieldCodes(err)).To(Equal(map[string]string{
			"items[1].hora_saida": string(internal.ErrCodeValidationFailed),
		}))
	})

	It("caps valor", func() {
		err := validation.NewValidator().Shift("", "2024-05-10", "18:00", "23:30", validation.MaxValor+1).Validate()
		Expect(fieldCodes(err)).To(HaveKeyWithValue("valor", string(internal.ErrCodeInvalidValor)))
	})

	It("checks email, length and allowed values", func() {
		long := "abcdefghijk"
		v := validation.NewValidator()
		v.Field("email", "not-an-email").Email()
		v.Field("name", &long).MaxLength(5)
		v.Field("role", "root").OneOf(internal.RoleAdmin, internal.RoleGestor)
		v.Field("optional", "").Email().Date().Clock()

		codes := fieldCodes(v.Validate())
		Expect(codes).To(HaveLen(3))
		Expect(codes).To(HaveKey("email"))
		Expect(codes).To(HaveKey("name"))
		Expect(codes).To(HaveKey("role"))
	})

	It("treats nil pointers as missing", func() {
		var s *string
		v := validation.NewValidator()
		v.Field("setor", s).Required()
		Expect(fieldCodes(v.Validate())).To(HaveKey("setor"))
	})
})

var _ = Describe("documents", func() {
	DescribeTable("ValidDocument",
		func(in string, n int, want bool) {
			Expect(validation.ValidDocument(validation.OnlyDigits(in), n)).To(Equal(want))
		},
		Entry("formatted cpf", "123.456.789-09", 11, true),
		Entry("repeated digits", "111.111.111-11", 11, false),
		Entry("short", "1234", 11, false),
		Entry("cnpj", "12.345.678/0001-95", 14, true),
	)

	It("validates digits through the builder", func() {
		v := validation.NewValidator()
		v.Field("cpf", "00000000000").Digits(11)
		Expect(fieldCodes(v.Validate())).To(HaveKeyWithValue("cpf", string(internal.ErrCodeInvalidDocument)))
	})
})

var _ = Describe("RoundValor", func() {
	It("rounds to centavos", func() {
		Expect(validation.RoundValor(150.456)).To(Equal(150.46))
		Expect(validation.RoundValor(10.001)).To(Equal(10.0))
	})
})

var _ = Describe("ValidatePassword", func() {
	It("requires length, letters and digits", func() {
		Expect(validation.ValidatePassword("password", "abc123")).NotTo(BeNil())
		Expect(validation.ValidatePassword("password", "abcdefghij")).NotTo(BeNil())
		Expect(validation.ValidatePassword("password", "1234567890")).NotTo(BeNil())
		Expect(validation.ValidatePassword("password", "senha12345")).To(BeNil())
	})

	It("reports the weak password code", func() {
		err := validation.ValidatePassword("new_password", "short1")
		Expect(fieldCodes(err)).To(HaveKeyWithValue("new_password", string(internal.ErrCodeWeakPassword)))
	})
})
