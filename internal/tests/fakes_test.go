package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

type fakeAccountRepo struct {
	accounts  map[string]domain.Account
	lockOrder []string
}

func newFakeAccountRepo(accounts ...domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[string]domain.Account)}
	for _, account := range accounts {
		repo.accounts[account.ID] = account
	}
	return repo
}

func (r *fakeAccountRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.accounts[account.ID] = account
	return account, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id string) (domain.Account, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) ListByUserID(_ context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range r.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *fakeAccountRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	account.Balance = balance
	r.accounts[id] = account
	return nil
}

func (r *fakeAccountRepo) Close(_ context.Context, id string, closedAt time.Time) error {
	account, ok := r.accounts[id]
	if !ok || !account.IsOpen {
		return domain.ErrRecordNotFound
	}
	account.IsOpen = false
	account.ClosedAt = &closedAt
	r.accounts[id] = account
	return nil
}

func (r *fakeAccountRepo) HasAccountsForUser(_ context.Context, userID string) (bool, error) {
	for _, account := range r.accounts {
		if account.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) snapshot() map[string]domain.Account {
	copied := make(map[string]domain.Account, len(r.accounts))
	for id, account := range r.accounts {
		copied[id] = account
	}
	return copied
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByLogin(_ context.Context, login string) (domain.User, error) {
	for _, user := range r.users {
		if user.Login == login {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) snapshot() map[string]domain.User {
	copied := make(map[string]domain.User, len(r.users))
	for id, user := range r.users {
		copied[id] = user
	}
	return copied
}

type fakeTransferRepo struct {
	transfers []domain.Transfer
}

func (r *fakeTransferRepo) Create(_ context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.transfers = append(r.transfers, transfer)
	return transfer, nil
}

func (r *fakeTransferRepo) ListByFromAccount(_ context.Context, accountID string) ([]domain.Transfer, error) {
	var transfers []domain.Transfer
	for _, transfer := range r.transfers {
		if transfer.FromAccountID == accountID {
			transfers = append(transfers, transfer)
		}
	}
	return transfers, nil
}

// fakeUnitOfWork mimics transactional semantics in memory: repository state
// is snapshotted before fn runs and restored if fn fails.
type fakeUnitOfWork struct {
	accounts  *fakeAccountRepo
	users     *fakeUserRepo
	transfers *fakeTransferRepo
}

func (u *fakeUnitOfWork) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	var accountsBefore map[string]domain.Account
	var usersBefore map[string]domain.User
	var transfersBefore []domain.Transfer

	if u.accounts != nil {
		accountsBefore = u.accounts.snapshot()
	}
	if u.users != nil {
		usersBefore = u.users.snapshot()
	}
	if u.transfers != nil {
		transfersBefore = append([]domain.Transfer(nil), u.transfers.transfers...)
	}

	if err := fn(ctx); err != nil {
		if u.accounts != nil {
			u.accounts.accounts = accountsBefore
		}
		if u.users != nil {
			u.users.users = usersBefore
		}
		if u.transfers != nil {
			u.transfers.transfers = transfersBefore
		}
		return err
	}

	return nil
}

type fakeRateProvider struct {
	rates map[domain.Currency]decimal.Decimal
	err   error
	calls int
}

func (p *fakeRateProvider) RubleRate(_ context.Context, currency domain.Currency) (decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return decimal.Decimal{}, p.err
	}
	rate, ok := p.rates[currency]
	if !ok {
		return decimal.Decimal{}, domain.ErrRateUnavailable
	}
	return rate, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
