// Package refund autoriza con PIN de administrador y registra reembolsos de pedidos pagados.
//
// Un reembolso no devuelve ingredientes al inventario: lo preparado ya se consumió.
// Las métricas de venta excluyen los pedidos reembolsados filtrando por payment_status.
package refund

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// RefundUseCase caso de uso de reembolsos.
type RefundUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewRefundUseCase construye el caso de uso.
func NewRefundUseCase(txRunner TxRunner, userRepo repository.UserRepository, log *logger.Logger) *RefundUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RefundUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		log:      log.WithComponent("refund"),
		now:      time.Now,
	}
}

// VerifyPin compara el PIN suministrado con el PIN de administrador del usuario.
// Los PIN guardados como hash bcrypt se verifican con bcrypt; los heredados en texto plano se
// comparan en tiempo constante sobre su SHA-256.
func (uc *RefundUseCase) VerifyPin(user *entity.User, pin string) bool {
	if user == nil || user.AdminPINHash == "" || pin == "" {
		return false
	}
	if strings.HasPrefix(user.AdminPINHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(user.AdminPINHash), []byte(pin)) == nil
	}
	stored := sha256.Sum256([]byte(user.AdminPINHash))
	supplied := sha256.Sum256([]byte(pin))
	return subtle.ConstantTimeCompare(stored[:], supplied[:]) == 1
}

// ProcessRefund valida el PIN, bloquea el pedido y lo marca como reembolsado junto con su RefundLog,
// todo en una transacción. Un segundo intento sobre el mismo pedido devuelve ErrAlreadyRefunded.
func (uc *RefundUseCase) ProcessRefund(ctx context.Context, in dto.RefundInput) (*dto.RefundResult, error) {
	ctx, span := tracer.Start(ctx, "refund.ProcessRefund")
	span.SetAttributes(attribute.String("order.id", in.OrderID), attribute.String("user.id", in.UserID))
	var err error
	defer func() { endSpan(span, err) }()

	res := &dto.RefundResult{OrderID: in.OrderID}
	fail := func(e error) (*dto.RefundResult, error) {
		err = e
		res.Success = false
		res.Message = e.Error()
		return res, e
	}

	refundType := strings.ToLower(strings.TrimSpace(in.Type))
	if refundType == "" {
		refundType = entity.RefundTypeFull
	}
	if refundType != entity.RefundTypeFull && refundType != entity.RefundTypePartial {
		return fail(fmt.Errorf("%w: tipo de reembolso %q", domain.ErrInvalidInput, in.Type))
	}

	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return fail(err)
	}
	if user == nil {
		return fail(domain.ErrUserNotFound)
	}
	if !uc.VerifyPin(user, in.PIN) {
		uc.log.Warn().Str("user_id", user.ID).Str("order_id", in.OrderID).Msg("reembolso rechazado: PIN inválido")
		return fail(domain.ErrInvalidPIN)
	}

	now := uc.now()
	var refundLog *entity.RefundLog
	txErr := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, in.OrderID)
		}
		if o.PaymentStatus == entity.PaymentStatusRefunded || o.Status == entity.OrderStatusRefunded {
			return domain.ErrAlreadyRefunded
		}
		if o.PaymentStatus == entity.PaymentStatusUnpaid || o.PaymentStatus == "" {
			return domain.ErrOrderUnpaid
		}
		amount, err := refundAmount(o, refundType, in.Amount)
		if err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, o.ID, entity.OrderStatusRefunded, entity.PaymentStatusRefunded); err != nil {
			return err
		}
		refundLog = &entity.RefundLog{
			ID:            uuid.New().String(),
			OrderID:       o.ID,
			UserID:        user.ID,
			Amount:        amount,
			Type:          refundType,
			PaymentMethod: o.PaymentMethod,
			Reason:        strings.TrimSpace(in.Reason),
			CreatedAt:     now,
		}
		return repos.Refunds.Create(ctx, refundLog)
	})
	if txErr != nil {
		uc.log.Warn().Err(txErr).Str("order_id", in.OrderID).Msg("reembolso rechazado")
		return fail(txErr)
	}

	res.Success = true
	res.Message = "Reembolso registrado"
	res.RefundLogID = refundLog.ID
	res.Amount = refundLog.Amount
	res.Type = refundLog.Type
	res.RefundedAt = &now
	span.SetAttributes(attribute.String("refund.amount", refundLog.Amount.String()))
	uc.log.Info().
		Str("order_id", in.OrderID).
		Str("user_id", user.ID).
		Str("type", refundType).
		Str("amount", refundLog.Amount.String()).
		Msg("pedido reembolsado")
	return res, nil
}

// refundAmount monto a reembolsar: el total del pedido en reembolsos completos; en parciales el
// monto indicado, que debe ser positivo y no superar el total.
func refundAmount(o *entity.Order, refundType string, amount *decimal.Decimal) (decimal.Decimal, error) {
	if refundType == entity.RefundTypeFull {
		return o.Total, nil
	}
	if amount == nil || !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: el monto del reembolso parcial debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if amount.GreaterThan(o.Total) {
		return decimal.Zero, fmt.Errorf("%w: el monto supera el total del pedido", domain.ErrInvalidInput)
	}
	return amount.Round(2), nil
}
