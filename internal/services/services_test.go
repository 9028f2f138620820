package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uglybaby/memo-engine/internal/deck"
	"github.com/uglybaby/memo-engine/internal/insights"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
	"github.com/uglybaby/memo-engine/pkg/config"
)

// In-memory repository fakes

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*models.Company
}

func (f *fakeCompanyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	if c, ok := f.companies[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, fmt.Errorf("company not found")
}

func (f *fakeCompanyRepo) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	var out []models.Company
	for _, c := range f.companies {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	var out []models.Company
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	copied := *company
	f.companies[company.ID] = &copied
	return nil
}

func (f *fakeCompanyRepo) Update(company *models.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return fmt.Errorf("company not found")
	}
	copied := *company
	f.companies[company.ID] = &copied
	return nil
}

func (f *fakeCompanyRepo) Delete(id uuid.UUID) error {
	delete(f.companies, id)
	return nil
}

type fakeQuestionnaireRepo struct {
	answers map[uuid.UUID]map[string]string
}

func (f *fakeQuestionnaireRepo) GetByCompany(companyID uuid.UUID) ([]models.QuestionnaireResponse, error) {
	var out []models.QuestionnaireResponse
	for key, answer := range f.answers[companyID] {
		out = append(out, models.QuestionnaireResponse{
			ID: uuid.New(), CompanyID: companyID, QuestionKey: key, Answer: answer,
		})
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) GetAnswer(companyID uuid.UUID, questionKey string) (*models.QuestionnaireResponse, error) {
	if answer, ok := f.answers[companyID][questionKey]; ok {
		return &models.QuestionnaireResponse{CompanyID: companyID, QuestionKey: questionKey, Answer: answer}, nil
	}
	return nil, fmt.Errorf("answer not found")
}

func (f *fakeQuestionnaireRepo) Upsert(resp *models.QuestionnaireResponse) error {
	if resp.ID == uuid.Nil {
		resp.ID = uuid.New()
	}
	if f.answers[resp.CompanyID] == nil {
		f.answers[resp.CompanyID] = make(map[string]string)
	}
	f.answers[resp.CompanyID][resp.QuestionKey] = resp.Answer
	return nil
}

func (f *fakeQuestionnaireRepo) DeleteByCompany(companyID uuid.UUID) error {
	delete(f.answers, companyID)
	return nil
}

type fakeMemoRepo struct {
	memos map[uuid.UUID]*models.Memo
}

func (f *fakeMemoRepo) GetByID(id uuid.UUID) (*models.Memo, error) {
	for _, m := range f.memos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("memo not found")
}

func (f *fakeMemoRepo) GetLatestByCompany(companyID uuid.UUID) (*models.Memo, error) {
	if m, ok := f.memos[companyID]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("memo not found")
}

func (f *fakeMemoRepo) Create(memo *models.Memo) error {
	if memo.ID == uuid.Nil {
		memo.ID = uuid.New()
	}
	f.memos[memo.CompanyID] = memo
	return nil
}

func (f *fakeMemoRepo) Update(memo *models.Memo) error {
	f.memos[memo.CompanyID] = memo
	return nil
}

func (f *fakeMemoRepo) DeleteByCompany(companyID uuid.UUID) error {
	delete(f.memos, companyID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
		}
	}
	return nil
}

type fakeTxManager struct {
	repos *repository.Repositories
}

func (f *fakeTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	return fn(f.repos)
}

func newFakeRepos() *repository.Repositories {
	repos := &repository.Repositories{
		Company:       &fakeCompanyRepo{companies: make(map[uuid.UUID]*models.Company)},
		Questionnaire: &fakeQuestionnaireRepo{answers: make(map[uuid.UUID]map[string]string)},
		Memo:          &fakeMemoRepo{memos: make(map[uuid.UUID]*models.Memo)},
		User:          &fakeUserRepo{users: make(map[string]*models.User)},
	}
	repos.Tx = &fakeTxManager{repos: repos}
	return repos
}

func seedCompany(t *testing.T, repos *repository.Repositories, ownerID uuid.UUID) *models.Company {
	t.Helper()
	company := &models.Company{
		Name:    "Acme Robotics",
		Stage:   "seed",
		OwnerID: ownerID,
	}
	require.NoError(t, repos.Company.Create(company))
	return company
}

func TestCompanyServiceOwnership(t *testing.T) {
	repos := newFakeRepos()
	svc := newCompanyService(repos)

	ownerID := uuid.New()
	strangerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.GetByID(company.ID.String(), ownerID, string(models.RoleFounder))
		require.NoError(t, err)
		assert.Equal(t, company.Name, got.Name)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetByID(company.ID.String(), strangerID, string(models.RoleFounder))
		assert.Error(t, err)
	})

	t.Run("investor can read any company", func(t *testing.T) {
		_, err := svc.GetByID(company.ID.String(), strangerID, string(models.RoleInvestor))
		assert.NoError(t, err)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		_, err := svc.GetByID("not-a-uuid", ownerID, string(models.RoleFounder))
		assert.Error(t, err)
	})
}

func TestCompanyServiceDeleteCascades(t *testing.T) {
	repos := newFakeRepos()
	svc := newCompanyService(repos)

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	require.NoError(t, repos.Questionnaire.Upsert(&models.QuestionnaireResponse{
		CompanyID: company.ID, QuestionKey: models.QuestionTraction, Answer: "Growing",
	}))
	require.NoError(t, repos.Memo.Create(&models.Memo{CompanyID: company.ID}))

	require.NoError(t, svc.Delete(company.ID.String(), ownerID, string(models.RoleFounder)))

	_, err := repos.Company.GetByID(company.ID)
	assert.Error(t, err)
	answers, _ := repos.Questionnaire.GetByCompany(company.ID)
	assert.Empty(t, answers)
	_, err = repos.Memo.GetLatestByCompany(company.ID)
	assert.Error(t, err)
}

func TestQuestionnaireServiceUpsertAndGet(t *testing.T) {
	repos := newFakeRepos()
	svc := newQuestionnaireService(repos, deck.NewImporter())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	resp, err := svc.UpsertAnswer(company.ID.String(), &models.UpsertAnswerRequest{
		QuestionKey: models.QuestionSolution,
		Answer:      "An automated audit platform.",
	}, ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	answers, err := svc.GetAnswers(company.ID.String(), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, models.QuestionSolution, answers[0].QuestionKey)
}

func TestQuestionnaireServiceImportDeck(t *testing.T) {
	repos := newFakeRepos()
	svc := newQuestionnaireService(repos, deck.NewImporter())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	csvDeck := "Problem,Manual audits are slow\nTraction,Grew 25% month over month"
	result, err := svc.ImportDeck(company.ID.String(), "csv",
		strings.NewReader(csvDeck), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.Len(t, result.Answers, 2)

	answers, err := svc.GetAnswers(company.ID.String(), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}

func TestQuestionnaireServiceImportDeckBadFormat(t *testing.T) {
	repos := newFakeRepos()
	svc := newQuestionnaireService(repos, deck.NewImporter())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	_, err := svc.ImportDeck(company.ID.String(), "pdf",
		strings.NewReader(""), ownerID, string(models.RoleFounder))
	assert.ErrorContains(t, err, "unsupported deck format")
}

func TestInsightServiceDifferentiation(t *testing.T) {
	repos := newFakeRepos()
	svc := newInsightService(repos, insights.NewEngine())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	require.NoError(t, repos.Questionnaire.Upsert(&models.QuestionnaireResponse{
		CompanyID:   company.ID,
		QuestionKey: models.QuestionSolution,
		Answer:      "Our AI-powered proprietary platform integrates via API and scales to enterprise, saving costs and delivering instant results",
	}))

	result, err := svc.Differentiation(company.ID.String(), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.Greater(t, result.Score, 80)
}

func TestInsightServiceMomentumNoAnswers(t *testing.T) {
	repos := newFakeRepos()
	svc := newInsightService(repos, insights.NewEngine())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	result, err := svc.Momentum(company.ID.String(), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, insights.TrajectoryEarly, result.Trajectory)
}

func TestInsightServiceActionPlanWithoutMemo(t *testing.T) {
	repos := newFakeRepos()
	svc := newInsightService(repos, insights.NewEngine())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	plan, err := svc.ActionPlan(company.ID.String(), ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(plan.Items), 3)
}

func TestInsightServiceContextMatchWithoutMemo(t *testing.T) {
	repos := newFakeRepos()
	svc := newInsightService(repos, insights.NewEngine())

	ownerID := uuid.New()
	company := seedCompany(t, repos, ownerID)

	match, err := svc.ContextMatch(company.ID.String(), "what about retention", ownerID, string(models.RoleFounder))
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	repos := newFakeRepos()
	svc := newAuthService(repos, &config.Config{JWTSecret: "test-secret"})

	user, err := svc.Register(&models.RegisterRequest{
		Email:    "founder@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleFounder), user.Role)
	assert.Empty(t, user.PasswordHash)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(&models.RegisterRequest{
			Email:    "founder@example.com",
			Password: "another password",
		})
		assert.Error(t, err)
	})

	t.Run("login succeeds with right password", func(t *testing.T) {
		resp, err := svc.Login("founder@example.com", "correct horse battery")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "founder@example.com", resp.User.Email)
	})

	t.Run("login fails with wrong password", func(t *testing.T) {
		_, err := svc.Login("founder@example.com", "wrong password")
		assert.Error(t, err)
	})

	t.Run("refresh issues new tokens", func(t *testing.T) {
		resp, err := svc.Login("founder@example.com", "correct horse battery")
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Token)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.Register(&models.RegisterRequest{
			Email:    "other@example.com",
			Password: "some password",
			Role:     "superuser",
		})
		assert.Error(t, err)
	})
}
