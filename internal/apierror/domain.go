package apierror

// domain.go — typed domain errors shared by the sale, purchase-order and
// inventory workflows. Handlers translate these into HTTP responses via
// StatusCode; services return them so callers can distinguish retryable
// conflicts from input errors.

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrTransactionConflict is returned when a concurrent write is detected at
// commit time (serialization failure, exhausted invoice-number retry). It is
// the only error in the taxonomy that is safe to retry automatically.
var ErrTransactionConflict = errors.New("conflicto de transaccion, reintente la operacion")

// NotFoundError reports a referenced entity that does not resolve.
type NotFoundError struct {
	Entity string // "cliente", "producto", "metodo_pago", "proveedor", "orden", ...
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.Key)
}

// NotFound builds a NotFoundError for an entity keyed by anything printable.
func NotFound(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// InsufficientStockError names the offending product so the failure is
// user-actionable.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	BranchID    uuid.UUID
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return fmt.Sprintf("Stock insuficiente para %s (disponible: %s, pedido: %s)",
		name, e.Available.StringFixed(3), e.Requested.StringFixed(3))
}

// InvalidTransitionError reports a purchase-order status change that is not
// permitted from the current state.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transicion de estado invalida: %s → %s", e.From, e.To)
}

// InvalidInputError covers malformed or non-positive quantities/costs that
// survive DTO binding (domain-level validation).
type InvalidInputError struct {
	Detail string
}

func (e *InvalidInputError) Error() string { return e.Detail }

func InvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Detail: fmt.Sprintf(format, args...)}
}

// MissingProductsError is raised by purchase-order creation when one or more
// referenced products do not exist — validated as a set, reported as a set.
type MissingProductsError struct {
	IDs []uuid.UUID
}

func (e *MissingProductsError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}
	return "productos no encontrados: " + strings.Join(ids, ", ")
}

// StatusCode maps a domain error to its HTTP status. Unknown errors map to
// 500 so the error-handler middleware can log them without leaking detail.
func StatusCode(err error) int {
	var (
		nf *NotFoundError
		is *InsufficientStockError
		it *InvalidTransitionError
		ii *InvalidInputError
		mp *MissingProductsError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &mp):
		return http.StatusBadRequest
	case errors.As(err, &is), errors.As(err, &it):
		return http.StatusConflict
	case errors.As(err, &ii):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTransactionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
