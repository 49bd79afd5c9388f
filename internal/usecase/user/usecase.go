package user

import (
	"context"
	"errors"

	domain "student-lending-core/internal/domain/user"
	"student-lending-core/internal/domain/uow"
	"student-lending-core/pkg/apperr"
	"student-lending-core/pkg/id"
	"student-lending-core/pkg/money"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, uow: tx, log: log.Named("user")}
}

// Register creates the user and its empty wallet in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	p, err := profileOf(in)
	if err != nil {
		return nil, err
	}
	usr, err := domain.New(id.NewID32(), in.Name, in.Email, p)
	if err != nil {
		return nil, apperr.InvalidInput("%v", err)
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		return r.Wallets.Ensure(ctx, usr.UserID)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("registered", zap.String("user_id", usr.UserID), zap.String("role", string(usr.Role)))
	return toDTO(usr), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s", userID)
		}
		return nil, err
	}
	return toDTO(usr), nil
}

func profileOf(in RegisterInput) (domain.Profile, error) {
	switch domain.Role(in.Role) {
	case domain.RoleBorrower:
		if in.Income.IsNegative() {
			return nil, apperr.InvalidAmount("income must not be negative")
		}
		return &domain.BorrowerProfile{
			Income:           in.Income,
			CreditScore:      in.CreditScore,
			EmploymentStatus: in.EmploymentStatus,
		}, nil
	case domain.RoleLender:
		if in.MinInvestmentAmount.IsNegative() {
			return nil, apperr.InvalidAmount("min investment amount must not be negative")
		}
		return &domain.LenderProfile{
			InvestmentPreference: in.InvestmentPreference,
			MinInvestmentAmount:  in.MinInvestmentAmount,
		}, nil
	default:
		return nil, apperr.InvalidInput("role %q: must be borrower or lender", in.Role)
	}
}

func toDTO(usr *domain.User) *UserDTO {
	dto := &UserDTO{
		UserID:    usr.UserID,
		Name:      usr.Name,
		Email:     usr.Email,
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
	}
	switch p := usr.Profile().(type) {
	case *domain.BorrowerProfile:
		dto.Profile = map[string]any{
			"income":            money.Format(p.Income),
			"credit_score":      p.CreditScore,
			"employment_status": p.EmploymentStatus,
		}
	case *domain.LenderProfile:
		dto.Profile = map[string]any{
			"investment_preference": p.InvestmentPreference,
			"min_investment_amount": money.Format(p.MinInvestmentAmount),
		}
	}
	return dto
}
