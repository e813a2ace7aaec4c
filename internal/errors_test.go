package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("matches sentinels through wrapping and WithCause", func() {
		err := fmt.Errorf("repo: %w", internal.ErrExtraNotFound.WithCause(errors.New("no rows")))

		Expect(errors.Is(err, internal.ErrExtraNotFound)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrReceiptNotFound)).To(BeFalse())
		Expect(err.Error()).To(ContainSubstring("Extra not found: no rows"))
	})

	It("never mutates the sentinel", func() {
		_ = internal.ErrUserNotFound.WithCause(errors.New("boom"))
		_ = internal.ErrUserNotFound.WithDetails("x")

		Expect(internal.ErrUserNotFound.Cause).To(BeNil())
		Expect(internal.ErrUserNotFound.Details).To(BeNil())
	})

	DescribeTable("maps onto HTTP status",
		func(err *internal.AppError, status int) {
			code, _ := err.ToHTTPResponse()
			Expect(code).To(Equal(status))
		},
		Entry("not found", internal.ErrExtraNotFound, http.StatusNotFound),
		Entry("duplicate user", internal.ErrUserExists, http.StatusBadRequest),
		Entry("duplicate row", internal.ErrDuplicate, http.StatusConflict),
		Entry("transition", internal.ErrInvalidTransition, http.StatusBadRequest),
		Entry("receipt not ready", internal.ErrReceiptNotReady, http.StatusBadRequest),
		Entry("credentials", internal.ErrInvalidCredentials, http.StatusUnauthorized),
		Entry("scope", internal.ErrCompanyNotAuthorized, http.StatusForbidden),
		Entry("internal", internal.NewInternalError("db down", nil), http.StatusInternalServerError),
	)

	It("joins field messages in the response body", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "valor", Message: "valor must be positive", Code: string(internal.ErrCodeInvalidValor)},
				{Field: "data_evento", Message: "data_evento is required", Code: string(internal.ErrCodeValidationFailed)},
			}})

		status, body := err.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body.Error).To(Equal("valor must be positive; data_evento is required"))
		Expect(body.Code).To(Equal(internal.ErrCodeValidationFailed))
		Expect(err.Error()).To(Equal("valor must be positive"))
	})

	It("marshals without status or cause", func() {
		raw, err := json.Marshal(internal.ErrExtraNotFound.WithCause(errors.New("secret")))
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(MatchJSON(`{"type":"NOT_FOUND","code":"EXTRA_NOT_FOUND","message":"Extra not found"}`))
	})

	It("is found by IsAppError only for application errors", func() {
		_, ok := internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())

		appErr, ok := internal.IsAppError(fmt.Errorf("wrap: %w", internal.ErrTokenExpired))
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeTokenExpired))
	})
})

var _ = Describe("User principal", func() {
	DescribeTable("NormalizeRole",
		func(in, want string) {
			Expect(internal.NormalizeRole(in)).To(Equal(want))
		},
		Entry(nil, "Admin", internal.RoleAdmin),
		Entry(nil, " gestor ", internal.RoleGestor),
		Entry(nil, "lançador", internal.RoleLancador),
		Entry(nil, "lancador", internal.RoleLancador),
		Entry(nil, "root", ""),
	)

	It("scopes companies for non-admins", func() {
		u := &internal.User{Role: internal.RoleLancador, AuthorizedCompanyIDs: []string{"c-1"}}
		Expect(u.CanAccessCompany("c-1")).To(BeTrue())
		Expect(u.CanAccessCompany("c-2")).To(BeFalse())
		Expect(u.IsManager()).To(BeFalse())

		admin := &internal.User{Role: internal.RoleAdmin}
		Expect(admin.CanAccessCompany("anything")).To(BeTrue())
		Expect(admin.IsManager()).To(BeTrue())

		var nobody *internal.User
		Expect(nobody.CanAccessCompany("c-1")).To(BeFalse())
	})

	It("round trips through the context", func() {
		u := &internal.User{ID: "u-1"}
		ctx := internal.ContextWithUser(context.Background(), u)

		got, ok := internal.UserFromContext(ctx)
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(u))
		Expect(internal.UserIDFromContext(ctx)).To(Equal("u-1"))

		_, ok = internal.UserFromContext(context.Background())
		Expect(ok).To(BeFalse())
	})
})
