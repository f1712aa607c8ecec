package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/usecase/services"
)

var testNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

type accountFixture struct {
	accounts  *fakeAccountRepo
	users     *fakeUserRepo
	transfers *fakeTransferRepo
	rates     *fakeRateProvider
	svc       *services.AccountService
}

func newAccountFixture(rates map[domain.Currency]decimal.Decimal, accounts ...domain.Account) *accountFixture {
	accountRepo := newFakeAccountRepo(accounts...)
	userRepo := newFakeUserRepo(
		domain.User{ID: "user-1", Login: "alice", Email: "alice@example.com"},
		domain.User{ID: "user-2", Login: "bob", Email: "bob@example.com"},
	)
	transferRepo := &fakeTransferRepo{}
	rateProvider := &fakeRateProvider{rates: rates}
	uow := &fakeUnitOfWork{accounts: accountRepo, users: userRepo, transfers: transferRepo}

	svc := services.NewAccountService(
		accountRepo,
		userRepo,
		transferRepo,
		services.NewConverterService(rateProvider),
		uow,
		fixedClock{now: testNow},
	)

	return &accountFixture{
		accounts:  accountRepo,
		users:     userRepo,
		transfers: transferRepo,
		rates:     rateProvider,
		svc:       svc,
	}
}

func rubOnlyRates() map[domain.Currency]decimal.Decimal {
	return map[domain.Currency]decimal.Decimal{
		domain.CurrencyRUB: decimal.NewFromInt(1),
	}
}

func openAccount(id, userID string, balance int64, currency domain.Currency) domain.Account {
	return domain.Account{
		ID:       id,
		UserID:   userID,
		Balance:  decimal.NewFromInt(balance),
		Currency: currency,
		IsOpen:   true,
		OpenedAt: testNow.Add(-time.Hour),
	}
}

func TestAccountServiceCreateAccount(t *testing.T) {
	f := newAccountFixture(rubOnlyRates())

	response, err := f.svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		UserID:   "user-1",
		Currency: "RUB",
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)
	require.Equal(t, "user-1", response.Data.UserID)
	require.Equal(t, "RUB", response.Data.Currency)
	require.Equal(t, "0", response.Data.Balance)
	require.True(t, response.Data.IsOpen)

	stored, err := f.accounts.GetByID(context.Background(), response.Data.ID)
	require.NoError(t, err)
	require.Equal(t, testNow, stored.OpenedAt)
}

func TestAccountServiceCreateAccountUnknownUser(t *testing.T) {
	f := newAccountFixture(rubOnlyRates())

	_, err := f.svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		UserID:   "nobody",
		Currency: "USD",
	})
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	f := newAccountFixture(rubOnlyRates())

	_, err := f.svc.CreateAccount(context.Background(), models.CreateAccountRequest{})
	require.Error(t, err)
}

func TestAccountServiceCloseAccount(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(), openAccount("acc-1", "user-1", 0, domain.CurrencyRUB))

	response, err := f.svc.CloseAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	require.True(t, response.Success)
	require.Equal(t, testNow.Format(time.RFC3339), response.Data.ClosedAt)

	stored, err := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	require.False(t, stored.IsOpen)
	require.NotNil(t, stored.ClosedAt)
}

func TestAccountServiceCloseAccountNonZeroBalance(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(), openAccount("acc-1", "user-1", 10, domain.CurrencyRUB))

	_, err := f.svc.CloseAccount(context.Background(), "acc-1")
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))

	stored, err := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	require.True(t, stored.IsOpen)
}

func TestAccountServiceCloseAccountAlreadyClosed(t *testing.T) {
	closedAt := testNow.Add(-time.Minute)
	f := newAccountFixture(rubOnlyRates(), domain.Account{
		ID:       "acc-1",
		UserID:   "user-1",
		Balance:  decimal.Zero,
		Currency: domain.CurrencyRUB,
		IsOpen:   false,
		OpenedAt: testNow.Add(-time.Hour),
		ClosedAt: &closedAt,
	})

	_, err := f.svc.CloseAccount(context.Background(), "acc-1")
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))
}

func TestAccountServiceCloseAccountNotFound(t *testing.T) {
	f := newAccountFixture(rubOnlyRates())

	_, err := f.svc.CloseAccount(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountServiceCalculateCommissionSameOwnerIsFree(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-1", 0, domain.CurrencyRUB),
	)

	commission, err := f.svc.CalculateCommission(context.Background(), decimal.NewFromInt(50), "acc-1", "acc-2")
	require.NoError(t, err)
	require.True(t, commission.IsZero(), "commission %s", commission)
}

func TestAccountServiceCalculateCommissionTwoPercent(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	cases := []struct {
		amount string
		want   string
	}{
		{"50", "1"},
		{"100", "2"},
		{"0.2", "0"},     // 0.4 rounds down to 0
		{"0.25", "0.01"}, // 0.5 rounds away from zero
		{"30.2", "0.6"},  // 60.4 rounds down to 60
		{"30.25", "0.61"},
		{"1", "0.02"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)

		commission, err := f.svc.CalculateCommission(context.Background(), amount, "acc-1", "acc-2")
		require.NoError(t, err)
		require.Equal(t, tc.want, commission.String(), "amount %s", tc.amount)
	}
}

func TestAccountServiceCalculateCommissionIsReadOnly(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	first, err := f.svc.CalculateCommission(context.Background(), decimal.NewFromInt(50), "acc-1", "acc-2")
	require.NoError(t, err)
	second, err := f.svc.CalculateCommission(context.Background(), decimal.NewFromInt(50), "acc-1", "acc-2")
	require.NoError(t, err)
	require.True(t, first.Equal(second))

	from, err := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	require.True(t, from.Balance.Equal(decimal.NewFromInt(100)))
	require.Empty(t, f.transfers.transfers)
}

func TestAccountServiceCalculateCommissionAccountNotFound(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(), openAccount("acc-1", "user-1", 100, domain.CurrencyRUB))

	_, err := f.svc.CalculateCommission(context.Background(), decimal.NewFromInt(50), "acc-1", "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountServiceTransferSameCurrencyDifferentOwners(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	response, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "50",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.NoError(t, err)
	require.True(t, response.Success)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	to, _ := f.accounts.GetByID(context.Background(), "acc-2")
	require.True(t, from.Balance.Equal(decimal.NewFromInt(50)), "from balance %s", from.Balance)
	// 50 debited, 2% commission of 1 absorbed, 49 credited
	require.True(t, to.Balance.Equal(decimal.NewFromInt(49)), "to balance %s", to.Balance)

	require.Len(t, f.transfers.transfers, 1)
	record := f.transfers.transfers[0]
	require.True(t, record.Amount.Equal(decimal.NewFromInt(50)), "recorded amount %s", record.Amount)
	require.Equal(t, domain.CurrencyRUB, record.Currency)
	require.Equal(t, "acc-1", record.FromAccountID)
	require.Equal(t, "acc-2", record.ToAccountID)
	require.Equal(t, testNow, record.CreatedAt)
}

func TestAccountServiceTransferCrossCurrency(t *testing.T) {
	rates := map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(200),
		domain.CurrencyRUB: decimal.NewFromInt(1),
	}
	f := newAccountFixture(rates,
		openAccount("acc-1", "user-1", 100, domain.CurrencyEUR),
		openAccount("acc-2", "user-2", 200, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "50",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.NoError(t, err)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	to, _ := f.accounts.GetByID(context.Background(), "acc-2")
	// 50 EUR debited; net 49 EUR converted at 200 RUB/EUR lands on top of 200
	require.True(t, from.Balance.Equal(decimal.NewFromInt(50)), "from balance %s", from.Balance)
	require.True(t, to.Balance.Equal(decimal.NewFromInt(10000)), "to balance %s", to.Balance)

	require.Len(t, f.transfers.transfers, 1)
	require.Equal(t, domain.CurrencyEUR, f.transfers.transfers[0].Currency)
}

func TestAccountServiceTransferSameOwnerCrossCurrencyNoCommission(t *testing.T) {
	rates := map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(200),
		domain.CurrencyUSD: decimal.NewFromInt(100),
	}
	f := newAccountFixture(rates,
		openAccount("acc-1", "user-1", 100, domain.CurrencyEUR),
		openAccount("acc-2", "user-1", 200, domain.CurrencyUSD),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "50",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.NoError(t, err)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	to, _ := f.accounts.GetByID(context.Background(), "acc-2")
	// no commission between own accounts; full 50 EUR converts to 100 USD
	require.True(t, from.Balance.Equal(decimal.NewFromInt(50)), "from balance %s", from.Balance)
	require.True(t, to.Balance.Equal(decimal.NewFromInt(300)), "to balance %s", to.Balance)
}

func TestAccountServiceTransferFullBalance(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "100",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.NoError(t, err)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	require.True(t, from.Balance.IsZero(), "from balance %s", from.Balance)
}

func TestAccountServiceTransferInsufficientBalance(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "100.01",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	to, _ := f.accounts.GetByID(context.Background(), "acc-2")
	require.True(t, from.Balance.Equal(decimal.NewFromInt(100)))
	require.True(t, to.Balance.IsZero())
	require.Empty(t, f.transfers.transfers)
}

func TestAccountServiceTransferFromClosedAccount(t *testing.T) {
	closed := openAccount("acc-1", "user-1", 100, domain.CurrencyRUB)
	closed.IsOpen = false
	f := newAccountFixture(rubOnlyRates(),
		closed,
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))
}

func TestAccountServiceTransferToClosedAccount(t *testing.T) {
	closed := openAccount("acc-2", "user-2", 0, domain.CurrencyRUB)
	closed.IsOpen = false
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		closed,
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))
}

func TestAccountServiceTransferToMissingAccount(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(), openAccount("acc-1", "user-1", 100, domain.CurrencyRUB))

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-1",
		ToAccountID:   "missing",
	})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	require.True(t, from.Balance.Equal(decimal.NewFromInt(100)))
	require.Empty(t, f.transfers.transfers)
}

func TestAccountServiceTransferRateUnavailableRollsBack(t *testing.T) {
	f := newAccountFixture(
		map[domain.Currency]decimal.Decimal{domain.CurrencyRUB: decimal.NewFromInt(1)},
		openAccount("acc-1", "user-1", 100, domain.CurrencyEUR),
		openAccount("acc-2", "user-2", 0, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
	})
	require.ErrorIs(t, err, domain.ErrRateUnavailable)

	from, _ := f.accounts.GetByID(context.Background(), "acc-1")
	to, _ := f.accounts.GetByID(context.Background(), "acc-2")
	require.True(t, from.Balance.Equal(decimal.NewFromInt(100)), "debit must roll back, got %s", from.Balance)
	require.True(t, to.Balance.IsZero())
	require.Empty(t, f.transfers.transfers)
}

func TestAccountServiceTransferValidationError(t *testing.T) {
	f := newAccountFixture(rubOnlyRates())

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{})
	require.Error(t, err)

	_, err = f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
	})
	require.Error(t, err)
}

func TestAccountServiceTransferLocksAccountsInSortedOrder(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-b", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-a", "user-2", 0, domain.CurrencyRUB),
	)

	_, err := f.svc.Transfer(context.Background(), models.TransferRequest{
		Amount:        "10",
		FromAccountID: "acc-b",
		ToAccountID:   "acc-a",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"acc-a", "acc-b"}, f.accounts.lockOrder)
}

func TestAccountServiceGetAccountsByUser(t *testing.T) {
	f := newAccountFixture(rubOnlyRates(),
		openAccount("acc-1", "user-1", 100, domain.CurrencyRUB),
		openAccount("acc-2", "user-1", 0, domain.CurrencyUSD),
		openAccount("acc-3", "user-2", 0, domain.CurrencyRUB),
	)

	response, err := f.svc.GetAccountsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	require.Len(t, *response.Data, 2)
}
