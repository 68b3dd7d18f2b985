package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/core/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockAuthorizer *MockCompanyAuthorizer
	service        portssvc.AccountSvcFacade
	companyID      string
	userID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewAccountService(suite.mockRepo,
		services.WithAccountCompanyAuthorizer(suite.mockAuthorizer))

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) authorize(role domain.UserCompanyRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, role).Return(nil).Once()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.authorize(domain.RoleMember)
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, suite.companyID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(suite.companyID, created.CompanyID)
	suite.Equal("1010", created.Code)
	suite.True(created.IsActive)
	suite.Empty(created.ParentAccountID)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1010", Name: "Cash", AccountType: domain.Asset}

	suite.authorize(domain.RoleMember)
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, suite.companyID, req)

	suite.Nil(created)
	suite.ErrorIs(err, services.ErrAccountCodeTaken)
	// The duplicate sentinel must survive the wrap so the handler answers 409.
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code: "1011", Name: "Petty Cash", AccountType: domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.authorize(domain.RoleMember)
	suite.mockRepo.On("FindAccountByID", mock.Anything, parentID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, suite.companyID, req)

	suite.Nil(created)
	suite.ErrorIs(err, services.ErrParentAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInOtherCompany() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), CompanyID: uuid.NewString(), AccountType: domain.Asset}
	req := dto.CreateAccountRequest{
		Code: "1011", Name: "Petty Cash", AccountType: domain.Asset,
		ParentAccountID: &parent.AccountID,
	}

	suite.authorize(domain.RoleMember)
	suite.mockRepo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, suite.companyID, req)

	suite.ErrorIs(err, services.ErrParentAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, AccountType: domain.Expense}
	req := dto.CreateAccountRequest{
		Code: "1011", Name: "Petty Cash", AccountType: domain.Asset,
		ParentAccountID: &parent.AccountID,
	}

	suite.authorize(domain.RoleMember)
	suite.mockRepo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, suite.companyID, req)

	suite.ErrorIs(err, services.ErrParentTypeMismatch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_CrossCompanyIsNotFound() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "a1", CompanyID: uuid.NewString()}

	suite.authorize(domain.RoleReadOnly)
	suite.mockRepo.On("FindAccountByID", mock.Anything, "a1").Return(account, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.userID, suite.companyID, "a1")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_MissingAccount() {
	ctx := context.Background()
	present := domain.Account{AccountID: "a1", CompanyID: suite.companyID}

	suite.authorize(domain.RoleReadOnly)
	suite.mockRepo.On("FindAccountsByIDs", mock.Anything, []string{"a1", "a2"}).
		Return(map[string]domain.Account{"a1": present}, nil).Once()

	got, err := suite.service.GetAccountsByIDs(ctx, suite.userID, suite.companyID, []string{"a1", "a2"})

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorContains(err, "a2")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesProvidedFields() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID: "a1", CompanyID: suite.companyID,
		Code: "1010", Name: "Cash", Description: "old", IsActive: true,
	}
	newName := "Cash and Equivalents"
	inactive := false

	suite.authorize(domain.RoleMember)
	suite.authorize(domain.RoleReadOnly)
	suite.mockRepo.On("FindAccountByID", mock.Anything, "a1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Description == "old" && !acc.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.userID, suite.companyID, "a1", dto.UpdateAccountRequest{
		Name:     &newName,
		IsActive: &inactive,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("old", updated.Description, "description should be untouched when not provided")
	suite.False(updated.IsActive)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByPostings() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "a1", CompanyID: suite.companyID}

	suite.authorize(domain.RoleAdmin)
	suite.authorize(domain.RoleReadOnly)
	suite.mockRepo.On("FindAccountByID", mock.Anything, "a1").Return(existing, nil).Once()
	suite.mockRepo.On("HasJournalLines", mock.Anything, "a1").Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, suite.companyID, "a1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrAccountHasPostings)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "a1", CompanyID: suite.companyID}

	suite.authorize(domain.RoleAdmin)
	suite.authorize(domain.RoleReadOnly)
	suite.mockRepo.On("FindAccountByID", mock.Anything, "a1").Return(existing, nil).Once()
	suite.mockRepo.On("HasJournalLines", mock.Anything, "a1").Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", mock.Anything, "a1", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, suite.companyID, "a1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
