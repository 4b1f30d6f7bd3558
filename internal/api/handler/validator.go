package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are keyed by JSON name.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(invoicePartyRule, invoiceRequest{})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures come back as a
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &domain.ValidationError{}
			for _, fe := range ve {
				out.Add(fe.Field(), fieldError(fe))
			}
			return out
		}
		return err
	}
	return nil
}

// invoicePartyRule enforces that a Receivable invoice names only a client and
// a Payable invoice names only a supplier.
func invoicePartyRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(invoiceRequest)
	switch domain.InvoiceType(req.Type) {
	case domain.InvoiceReceivable:
		if req.ClientID == nil {
			sl.ReportError(req.ClientID, "client_id", "ClientID", "required_for_receivable", "")
		}
		if req.SupplierID != nil {
			sl.ReportError(req.SupplierID, "supplier_id", "SupplierID", "excluded_for_receivable", "")
		}
	case domain.InvoicePayable:
		if req.SupplierID == nil {
			sl.ReportError(req.SupplierID, "supplier_id", "SupplierID", "required_for_payable", "")
		}
		if req.ClientID != nil {
			sl.ReportError(req.ClientID, "client_id", "ClientID", "excluded_for_payable", "")
		}
	}
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "date has wrong format, use YYYY-MM-DD"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "required_for_receivable":
		return "a client is required for a Receivable invoice"
	case "excluded_for_receivable":
		return "a supplier must not be set on a Receivable invoice"
	case "required_for_payable":
		return "a supplier is required for a Payable invoice"
	case "excluded_for_payable":
		return "a client must not be set on a Payable invoice"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
