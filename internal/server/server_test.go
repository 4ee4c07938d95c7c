package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/config"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/blog"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/ledger"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/reminder"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/statistics"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SigningKey:       "0123456789abcdef0123456789abcdef",
		Issuer:           "https://expense-tracker.local/",
		Audience:         "https://expense-tracker.local/",
		ValidateLifetime: true,
		TokenTTLMinutes:  60,
	}
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return fmt.Errorf("user %q already exists: %w", user.Username, domain.ErrConflict)
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
}

// fakeExpenseRepo is an in-memory ExpenseRepository.
type fakeExpenseRepo struct {
	mu       sync.Mutex
	nextID   int
	expenses map[int]*models.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{nextID: 1, expenses: make(map[int]*models.Expense)}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	expense.ID = f.nextID
	f.nextID++
	clone := *expense
	f.expenses[expense.ID] = &clone
	return nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	expense, ok := f.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
	}
	clone := *expense
	return &clone, nil
}

func (f *fakeExpenseRepo) ListByUser(ctx context.Context, userID int) ([]models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Expense
	for _, expense := range f.expenses {
		if expense.UserID == userID {
			rows = append(rows, *expense)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if rows == nil {
		rows = []models.Expense{}
	}
	return rows, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.expenses[expense.ID]
	if !ok {
		return fmt.Errorf("expense %d: %w", expense.ID, domain.ErrNotFound)
	}
	existing.Description = expense.Description
	existing.Amount = expense.Amount
	existing.ExpenseGroupID = expense.ExpenseGroupID
	return nil
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.expenses[id]; !ok {
		return fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseRepo) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	expense, ok := f.expenses[id]
	if !ok {
		return 0, false, nil
	}
	return expense.UserID, true, nil
}

// fakeBlogRepo is an in-memory BlogRepository.
type fakeBlogRepo struct {
	mu     sync.Mutex
	nextID int
	blogs  map[int]*models.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{nextID: 1, blogs: make(map[int]*models.Blog)}
}

func (f *fakeBlogRepo) Create(ctx context.Context, post *models.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.nextID
	f.nextID++
	clone := *post
	f.blogs[post.ID] = &clone
	return nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.blogs[id]
	if !ok {
		return nil, fmt.Errorf("blog %d: %w", id, domain.ErrNotFound)
	}
	clone := *post
	return &clone, nil
}

func (f *fakeBlogRepo) List(ctx context.Context) ([]models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Blog
	for _, post := range f.blogs {
		rows = append(rows, *post)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if rows == nil {
		rows = []models.Blog{}
	}
	return rows, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, post *models.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.blogs[post.ID]
	if !ok {
		return fmt.Errorf("blog %d: %w", post.ID, domain.ErrNotFound)
	}
	existing.Description = post.Description
	existing.Author = post.Author
	existing.Text = post.Text
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[id]; !ok {
		return fmt.Errorf("blog %d: %w", id, domain.ErrNotFound)
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.blogs[id]
	if !ok {
		return 0, false, nil
	}
	return post.UserID, true, nil
}

// fakeIncomeRepo is an in-memory IncomeRepository.
type fakeIncomeRepo struct {
	mu      sync.Mutex
	nextID  int
	incomes map[int]*models.Income
}

func newFakeIncomeRepo() *fakeIncomeRepo {
	return &fakeIncomeRepo{nextID: 1, incomes: make(map[int]*models.Income)}
}

func (f *fakeIncomeRepo) Create(ctx context.Context, income *models.Income) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	income.ID = f.nextID
	f.nextID++
	clone := *income
	f.incomes[income.ID] = &clone
	return nil
}

func (f *fakeIncomeRepo) GetByID(ctx context.Context, id int) (*models.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	income, ok := f.incomes[id]
	if !ok {
		return nil, fmt.Errorf("income %d: %w", id, domain.ErrNotFound)
	}
	clone := *income
	return &clone, nil
}

func (f *fakeIncomeRepo) ListByUser(ctx context.Context, userID int) ([]models.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Income
	for _, income := range f.incomes {
		if income.UserID == userID {
			rows = append(rows, *income)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if rows == nil {
		rows = []models.Income{}
	}
	return rows, nil
}

func (f *fakeIncomeRepo) Update(ctx context.Context, income *models.Income) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.incomes[income.ID]
	if !ok {
		return fmt.Errorf("income %d: %w", income.ID, domain.ErrNotFound)
	}
	existing.Description = income.Description
	existing.Amount = income.Amount
	existing.IncomeGroupID = income.IncomeGroupID
	return nil
}

func (f *fakeIncomeRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.incomes[id]; !ok {
		return fmt.Errorf("income %d: %w", id, domain.ErrNotFound)
	}
	delete(f.incomes, id)
	return nil
}

func (f *fakeIncomeRepo) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	income, ok := f.incomes[id]
	if !ok {
		return 0, false, nil
	}
	return income.UserID, true, nil
}

// fakeReminderRepo is an in-memory ReminderRepository.
type fakeReminderRepo struct {
	mu        sync.Mutex
	nextID    int
	reminders map[int]*models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{nextID: 1, reminders: make(map[int]*models.Reminder)}
}

func (f *fakeReminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem.ID = f.nextID
	f.nextID++
	clone := *rem
	f.reminders[rem.ID] = &clone
	return nil
}

func (f *fakeReminderRepo) GetByID(ctx context.Context, id int) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem, ok := f.reminders[id]
	if !ok {
		return nil, fmt.Errorf("reminder %d: %w", id, domain.ErrNotFound)
	}
	clone := *rem
	return &clone, nil
}

func (f *fakeReminderRepo) ListByUser(ctx context.Context, userID int) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Reminder
	for _, rem := range f.reminders {
		if rem.UserID == userID {
			rows = append(rows, *rem)
		}
	}
	if rows == nil {
		rows = []models.Reminder{}
	}
	return rows, nil
}

func (f *fakeReminderRepo) Update(ctx context.Context, rem *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.reminders[rem.ID]
	if !ok {
		return fmt.Errorf("reminder %d: %w", rem.ID, domain.ErrNotFound)
	}
	existing.Title = rem.Title
	existing.Day = rem.Day
	existing.Active = rem.Active
	return nil
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reminders[id]; !ok {
		return fmt.Errorf("reminder %d: %w", id, domain.ErrNotFound)
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderRepo) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem, ok := f.reminders[id]
	if !ok {
		return 0, false, nil
	}
	return rem.UserID, true, nil
}

// fakeExpenseGroupRepo is an in-memory ExpenseGroupRepository.
type fakeExpenseGroupRepo struct {
	mu     sync.Mutex
	nextID int
	groups map[int]*models.ExpenseGroup
}

func newFakeExpenseGroupRepo() *fakeExpenseGroupRepo {
	return &fakeExpenseGroupRepo{nextID: 1, groups: make(map[int]*models.ExpenseGroup)}
}

func (f *fakeExpenseGroupRepo) Create(ctx context.Context, group *models.ExpenseGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	group.ID = f.nextID
	f.nextID++
	clone := *group
	f.groups[group.ID] = &clone
	return nil
}

func (f *fakeExpenseGroupRepo) GetByID(ctx context.Context, id int) (*models.ExpenseGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.groups[id]
	if !ok {
		return nil, fmt.Errorf("expense group %d: %w", id, domain.ErrNotFound)
	}
	clone := *group
	return &clone, nil
}

func (f *fakeExpenseGroupRepo) List(ctx context.Context) ([]models.ExpenseGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.ExpenseGroup{}
	for _, group := range f.groups {
		rows = append(rows, *group)
	}
	return rows, nil
}

func (f *fakeExpenseGroupRepo) Update(ctx context.Context, group *models.ExpenseGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.groups[group.ID]
	if !ok {
		return fmt.Errorf("expense group %d: %w", group.ID, domain.ErrNotFound)
	}
	existing.Name = group.Name
	existing.Description = group.Description
	return nil
}

func (f *fakeExpenseGroupRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[id]; !ok {
		return fmt.Errorf("expense group %d: %w", id, domain.ErrNotFound)
	}
	delete(f.groups, id)
	return nil
}

// fakeIncomeGroupRepo is an in-memory IncomeGroupRepository.
type fakeIncomeGroupRepo struct {
	mu     sync.Mutex
	nextID int
	groups map[int]*models.IncomeGroup
}

func newFakeIncomeGroupRepo() *fakeIncomeGroupRepo {
	return &fakeIncomeGroupRepo{nextID: 1, groups: make(map[int]*models.IncomeGroup)}
}

func (f *fakeIncomeGroupRepo) Create(ctx context.Context, group *models.IncomeGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	group.ID = f.nextID
	f.nextID++
	clone := *group
	f.groups[group.ID] = &clone
	return nil
}

func (f *fakeIncomeGroupRepo) GetByID(ctx context.Context, id int) (*models.IncomeGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.groups[id]
	if !ok {
		return nil, fmt.Errorf("income group %d: %w", id, domain.ErrNotFound)
	}
	clone := *group
	return &clone, nil
}

func (f *fakeIncomeGroupRepo) List(ctx context.Context) ([]models.IncomeGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.IncomeGroup{}
	for _, group := range f.groups {
		rows = append(rows, *group)
	}
	return rows, nil
}

func (f *fakeIncomeGroupRepo) Update(ctx context.Context, group *models.IncomeGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.groups[group.ID]
	if !ok {
		return fmt.Errorf("income group %d: %w", group.ID, domain.ErrNotFound)
	}
	existing.Name = group.Name
	existing.Description = group.Description
	return nil
}

func (f *fakeIncomeGroupRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[id]; !ok {
		return fmt.Errorf("income group %d: %w", id, domain.ErrNotFound)
	}
	delete(f.groups, id)
	return nil
}

// testEnv wires the full request pipeline over in-memory repositories.
type testEnv struct {
	router    http.Handler
	issuer    *auth.Issuer
	users     *fakeUserRepo
	blogs     *fakeBlogRepo
	expenses  *fakeExpenseRepo
	incomes   *fakeIncomeRepo
	reminders *fakeReminderRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtCfg := testJWTConfig()
	users := newFakeUserRepo()
	blogs := newFakeBlogRepo()
	expenses := newFakeExpenseRepo()
	incomes := newFakeIncomeRepo()
	reminders := newFakeReminderRepo()
	expenseGroups := newFakeExpenseGroupRepo()
	incomeGroups := newFakeIncomeGroupRepo()

	evaluator := authz.NewEvaluator()
	evaluator.Register(authz.ResourceBlog, blogs.GetOwnerID)
	evaluator.Register(authz.ResourceExpense, expenses.GetOwnerID)
	evaluator.Register(authz.ResourceIncome, incomes.GetOwnerID)
	evaluator.Register(authz.ResourceReminder, reminders.GetOwnerID)

	validate := validation.New()
	issuer := auth.NewIssuer(jwtCfg)

	router := NewRouter(RouterOptions{
		Authn:      middleware.NewAuthnMiddleware(auth.NewVerifier(jwtCfg)),
		Auth:       NewAuthHandlers(users, issuer, validate),
		Blogs:      NewBlogHandlers(blog.NewService(blogs, validate), evaluator),
		Expenses:   NewExpenseHandlers(ledger.NewExpenseService(expenses, validate), evaluator),
		Incomes:    NewIncomeHandlers(ledger.NewIncomeService(incomes, validate), evaluator),
		Groups:     NewGroupHandlers(ledger.NewExpenseGroupService(expenseGroups, validate), ledger.NewIncomeGroupService(incomeGroups, validate)),
		Reminders:  NewReminderHandlers(reminder.NewService(reminders, validate), evaluator),
		Statistics: NewStatisticsHandlers(statistics.NewService(expenses, incomes)),
	})

	return &testEnv{
		router:    router,
		issuer:    issuer,
		users:     users,
		blogs:     blogs,
		expenses:  expenses,
		incomes:   incomes,
		reminders: reminders,
	}
}

// seedUser registers a user directly against the repository and returns it.
func (env *testEnv) seedUser(t *testing.T, username string, accountType models.AccountType) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		AccountType:  accountType,
	}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func (env *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := env.issuer.Issue(user)
	require.NoError(t, err)
	return token
}

// do runs one request through the full router.
func (env *testEnv) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
