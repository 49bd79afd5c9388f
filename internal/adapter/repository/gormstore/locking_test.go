package gormstore

import (
	"context"
	"database/sql/driver"
	"testing"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/domain/uow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The sqlite test database drops the locking clause, so the SQL that MySQL
// would receive is checked here against a mocked connection.
func newMySQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestLockQueries_UseForUpdate(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		query string
		cols  []string
		row   []driver.Value
		run   func(db *gorm.DB) error
	}{
		{
			name:  "borrower row",
			query: "SELECT \\* FROM `users` WHERE user_id = \\? .*FOR UPDATE$",
			cols:  []string{"id", "user_id", "name"},
			row:   []driver.Value{1, "b", "Budi"},
			run: func(db *gorm.DB) error {
				_, err := NewUserRepository(db).LockByUserID(ctx, "b")
				return err
			},
		},
		{
			name:  "active loan",
			query: "SELECT \\* FROM `active_loans` WHERE loan_id = \\? .*FOR UPDATE$",
			cols:  []string{"id", "loan_id"},
			row:   []driver.Value{1, "l1"},
			run: func(db *gorm.DB) error {
				_, err := NewActiveLoanRepository(db).LockByLoanID(ctx, "l1")
				return err
			},
		},
		{
			name:  "one request",
			query: "SELECT \\* FROM `loan_requests` WHERE request_id = \\? .*FOR UPDATE$",
			cols:  []string{"id", "request_id"},
			row:   []driver.Value{1, "r1"},
			run: func(db *gorm.DB) error {
				_, err := NewLoanRequestRepository(db).LockByRequestID(ctx, "r1")
				return err
			},
		},
		{
			name:  "pending requests",
			query: "SELECT \\* FROM `loan_requests` WHERE borrower_id = \\? AND status = \\? ORDER BY id ASC FOR UPDATE$",
			cols:  []string{"id", "request_id"},
			row:   []driver.Value{1, "r1"},
			run: func(db *gorm.DB) error {
				_, err := NewLoanRequestRepository(db).LockPendingByBorrower(ctx, "b")
				return err
			},
		},
		{
			name:  "pending offers",
			query: "SELECT \\* FROM `loan_offers` WHERE loan_request_id IN \\(\\?,\\?\\) AND status = \\? ORDER BY id ASC FOR UPDATE$",
			cols:  []string{"id", "offer_id"},
			row:   []driver.Value{1, "o1"},
			run: func(db *gorm.DB) error {
				_, err := NewOfferRepository(db).LockPendingByRequestIDs(ctx, 1, 2)
				return err
			},
		},
		{
			name:  "wallets",
			query: "SELECT \\* FROM `wallets` WHERE user_id IN \\(\\?\\) ORDER BY id ASC FOR UPDATE$",
			cols:  []string{"id", "user_id"},
			row:   []driver.Value{1, "u1"},
			run: func(db *gorm.DB) error {
				_, err := NewWalletRepository(db).LockByUserIDs(ctx, "u1")
				return err
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMySQLMock(t)
			mock.ExpectQuery(tc.query).WillReturnRows(sqlmock.NewRows(tc.cols).AddRow(tc.row...))

			require.NoError(t, tc.run(db))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormUoW_WithinLoanTx_LocksLoanFirst(t *testing.T) {
	db, mock := newMySQLMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `active_loans` WHERE loan_id = \\? .*FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "loan_id"}).AddRow(1, "l1"))
	mock.ExpectCommit()

	err := NewGormUoW(db).WithinLoanTx(context.Background(), "l1", func(_ uow.Repos, l *loan.ActiveLoan) error {
		require.Equal(t, "l1", l.LoanID)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
