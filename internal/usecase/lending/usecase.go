package lending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"student-lending-core/internal/domain/uow"
	"student-lending-core/internal/domain/user"
	"student-lending-core/internal/infrastructure/metrics"
	"student-lending-core/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 100

// Usecase owns the request, offer, settlement and repayment flows. Every
// mutation runs in one UnitOfWork transaction; reads go straight to repos.
type Usecase struct {
	uow     uow.UnitOfWork
	repos   uow.Repos
	log     *zap.Logger
	metrics *metrics.LendingMetrics
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, reads uow.Repos, log *zap.Logger) *Usecase {
	return &Usecase{
		uow:     tx,
		repos:   reads,
		log:     log.Named("lending"),
		metrics: metrics.Lending(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) observe(op string, err error, fields ...zap.Field) {
	if err != nil {
		u.metrics.ObserveOperation(op, apperr.CodeOf(err))
		u.log.Info(op+" rejected", append(fields, zap.Error(err))...)
		return
	}
	u.metrics.ObserveOperation(op, "ok")
	u.log.Info(op, fields...)
}

// requireRole loads the user and checks the role. Unknown users are NotFound.
func requireRole(ctx context.Context, users user.Repository, userID string, role user.Role) (*user.User, error) {
	usr, err := users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %s", userID)
	}
	if !usr.Is(role) {
		return nil, apperr.NotOwner("user %s is not a %s", userID, role)
	}
	return usr, nil
}

// notFound maps a missing row to apperr.NotFound and passes other errors through.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
