package service

import (
	"context"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
)

// In-memory mocks implementing the repository interfaces. Hand-written
// rather than generated: the interfaces are small and the tests read better
// when the fake behaviour is visible on the page.

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Add(_ context.Context, username, password string, accessLevel int) (int64, error) {
	for _, u := range m.users {
		if u.Username == username {
			return 0, apperror.Conflict("user", "username already taken")
		}
	}
	m.nextID++
	m.users[m.nextID] = &model.User{
		ID:          m.nextID,
		Username:    username,
		Password:    password,
		AccessLevel: accessLevel,
	}
	return m.nextID, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) IsAdmin(_ context.Context, id int64) (bool, error) {
	u, ok := m.users[id]
	if !ok {
		return false, apperror.NotFound("user", id)
	}
	return u.AccessLevel == model.AccessLevelAdmin, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

type mockSnippetRepo struct {
	snippets map[int64]*model.Snippet
	nextID   int64
}

func newMockSnippetRepo() *mockSnippetRepo {
	return &mockSnippetRepo{snippets: make(map[int64]*model.Snippet)}
}

func (m *mockSnippetRepo) Add(_ context.Context, snippet *model.Snippet) error {
	m.nextID++
	snippet.ID = m.nextID
	stored := *snippet
	m.snippets[snippet.ID] = &stored
	return nil
}

func (m *mockSnippetRepo) GetByID(_ context.Context, id int64) (*model.Snippet, error) {
	s, ok := m.snippets[id]
	if !ok {
		return nil, apperror.NotFound("snippet", id)
	}
	copied := *s
	return &copied, nil
}

func (m *mockSnippetRepo) VisibleTo(_ context.Context, requesterID int64) ([]model.Snippet, error) {
	result := make([]model.Snippet, 0)
	for _, s := range m.snippets {
		if !s.Private || (requesterID > 0 && s.UserID == requesterID) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSnippetRepo) Overwrite(_ context.Context, id int64, edit model.SnippetEdit) error {
	s, ok := m.snippets[id]
	if !ok {
		return apperror.NotFound("snippet", id)
	}
	replaced := model.Snippet{ID: id, UserID: s.UserID}
	if edit.Name != nil {
		replaced.Name = *edit.Name
	}
	if edit.Language != nil {
		replaced.Language = *edit.Language
	}
	if edit.Code != nil {
		replaced.Code = *edit.Code
	}
	replaced.ExampleCode = edit.ExampleCode
	replaced.Stdin = edit.Stdin
	replaced.ExpectedOutput = edit.ExpectedOutput
	if edit.Private != nil {
		replaced.Private = *edit.Private
	}
	m.snippets[id] = &replaced
	return nil
}

func (m *mockSnippetRepo) UpdateMeta(_ context.Context, id int64, name, language, code string) error {
	s, ok := m.snippets[id]
	if !ok {
		return apperror.NotFound("snippet", id)
	}
	s.Name = name
	s.Language = language
	s.Code = code
	return nil
}

func (m *mockSnippetRepo) Delete(_ context.Context, id int64) error {
	delete(m.snippets, id)
	return nil
}

type mockLanguageRepo struct {
	languages []model.Language
	failNext  error
}

func (m *mockLanguageRepo) ReplaceAll(_ context.Context, languages []model.Language) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.languages = append([]model.Language(nil), languages...)
	return nil
}

func (m *mockLanguageRepo) GetByID(_ context.Context, id int64) (*model.Language, error) {
	for _, l := range m.languages {
		if l.ID == id {
			copied := l
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("language", id)
}

func (m *mockLanguageRepo) List(_ context.Context) ([]model.Language, error) {
	return append([]model.Language(nil), m.languages...), nil
}
