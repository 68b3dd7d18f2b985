package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/core/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/utils/coa"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, companyID string, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

// --- Mock AccountSvc (as used by the journal service) ---
type MockAccountSvc struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountSvc)(nil)

func (m *MockAccountSvc) CreateAccount(ctx context.Context, userID string, companyID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountByID(ctx context.Context, userID string, companyID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountsByIDs(ctx context.Context, userID string, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) ListAccounts(ctx context.Context, userID string, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountHierarchy(ctx context.Context, userID string, companyID string) ([]*coa.Node, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coa.Node), args.Error(1)
}

func (m *MockAccountSvc) UpdateAccount(ctx context.Context, userID string, companyID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, companyID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) DeleteAccount(ctx context.Context, userID string, companyID string, accountID string) error {
	args := m.Called(ctx, userID, companyID, accountID)
	return args.Error(0)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountSvc
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.JournalSvcFacade
	companyID       string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
	inactiveAccount domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountSvc)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc,
		services.WithJournalCompanyAuthorizer(suite.mockAuthorizer))

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1010",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4000",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1020",
		AccountType: domain.Asset,
		IsActive:    false,
	}
}

func (suite *JournalServiceTestSuite) authorizeMember() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
}

func (suite *JournalServiceTestSuite) authorizeReadOnly() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date:        "2026-03-15",
		Description: "Cash sale",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorizeMember()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.userID, suite.companyID,
		[]string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).Return(accountsMap, nil).Once()

	savedEntry := &domain.JournalEntry{}
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			entry.EntryNo = "JE-00042"
			*savedEntry = entry
		}).Return(savedEntry, nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.EntryID)
	suite.Equal("JE-00042", created.EntryNo)
	suite.Equal(suite.companyID, created.CompanyID)
	suite.Equal(req.Description, created.Description)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Len(created.Lines, 2)
	suite.Equal(created.EntryID, created.Lines[0].EntryID)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	suite.authorizeMember()

	created, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	suite.authorizeMember()

	_, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccountBalanced() {
	// A balanced entry posting both sides to one account is unusual but
	// valid double-entry; it must not be rejected.
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorizeMember()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.userID, suite.companyID,
		[]string{suite.cashAccount.AccountID}).
		Return(map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}, nil).Once()

	savedEntry := &domain.JournalEntry{}
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			entry.EntryNo = "JE-00043"
			*savedEntry = entry
		}).Return(savedEntry, nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().NoError(err)
	suite.Len(created.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AllZeroAmounts() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID},
			{AccountID: suite.revenueAccount.AccountID},
		},
	}

	suite.authorizeMember()

	_, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.inactiveAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorizeMember()
	accountsMap := map[string]domain.Account{
		suite.inactiveAccount.AccountID: suite.inactiveAccount,
		suite.revenueAccount.AccountID:  suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.userID, suite.companyID, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date: "2026-03-15",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "missing", Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorizeMember()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.userID, suite.companyID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Forbidden() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(ctx, suite.userID, suite.companyID, dto.CreateJournalEntryRequest{Date: "2026-03-15"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_CrossCompanyIsNotFound() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: "e1", CompanyID: uuid.NewString()}

	suite.authorizeReadOnly()
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, "e1").Return(entry, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, suite.userID, suite.companyID, "e1")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_AttachesLines() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{EntryID: "e1", CompanyID: suite.companyID},
		{EntryID: "e2", CompanyID: suite.companyID},
	}
	linesByEntry := map[string][]domain.JournalLine{
		"e1": {{LineID: "l1", EntryID: "e1"}},
		"e2": {{LineID: "l2", EntryID: "e2"}, {LineID: "l3", EntryID: "e2"}},
	}

	suite.authorizeReadOnly()
	suite.mockJournalRepo.On("ListEntries", mock.Anything, suite.companyID, (*time.Time)(nil), (*time.Time)(nil), 50, (*string)(nil)).
		Return(entries, "next-token", nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", mock.Anything, []string{"e1", "e2"}).Return(linesByEntry, nil).Once()

	got, nextToken, err := suite.service.ListEntries(ctx, suite.userID, suite.companyID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Len(got[0].Lines, 1)
	suite.Len(got[1].Lines, 2)
	suite.Require().NotNil(nextToken)
	suite.Equal("next-token", *nextToken)
}

func (suite *JournalServiceTestSuite) TestListEntries_ClampsLimit() {
	ctx := context.Background()

	suite.authorizeReadOnly()
	suite.mockJournalRepo.On("ListEntries", mock.Anything, suite.companyID, (*time.Time)(nil), (*time.Time)(nil), 100, (*string)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	got, nextToken, err := suite.service.ListEntries(ctx, suite.userID, suite.companyID, dto.ListEntriesParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.Nil(nextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_RequiresAdmin() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, suite.companyID, "e1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: "e1", CompanyID: suite.companyID, EntryNo: "JE-00007"}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, "e1").Return(entry, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", mock.Anything, "e1").Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, suite.companyID, "e1")

	suite.NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
