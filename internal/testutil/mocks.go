package testutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/domain/user"
	"github.com/mindarch/studyplan/internal/pkg/errors"
)

// MockUserRepository is an in-memory implementation of user.Repository
type MockUserRepository struct {
	Users         map[int64]*user.User
	UsernameIndex map[string]*user.User
	NextID        int64
	CreateError   error
	GetError      error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:         make(map[int64]*user.User),
		UsernameIndex: make(map[string]*user.User),
		NextID:        1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.UsernameIndex[u.Username]; ok {
		return errors.Conflict("Username already exists")
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.UsernameIndex[u.Username] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.UsernameIndex[username]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

// MockPlanRepository is an in-memory implementation of plan.Repository.
// Documents are stored serialized so round trips exercise the same JSON
// path as the real store.
type MockPlanRepository struct {
	Plans     map[int64]string
	SaveError error
	GetError  error
	SaveCalls int
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		Plans: make(map[int64]string),
	}
}

func (m *MockPlanRepository) Save(ctx context.Context, userID int64, doc *plan.Document) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.SaveCalls++
	m.Plans[userID] = string(data)
	return nil
}

func (m *MockPlanRepository) Get(ctx context.Context, userID int64) (*plan.Document, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	data, ok := m.Plans[userID]
	if !ok {
		return nil, nil
	}
	var doc plan.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FakeGenerator is a scripted plan.Generator for tests
type FakeGenerator struct {
	Response string
	Err      error
	Calls    int
	Prompts  []string
}

func (f *FakeGenerator) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	f.Calls++
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeGenerator) Name() string { return "fake" }

// ValidPlanJSON returns a schema-conformant provider response covering the
// given number of days.
func ValidPlanJSON(days int) string {
	doc := plan.Document{
		Overview: "A focused plan to reach your goal.",
		Schedule: make([]plan.Day, 0, days),
	}
	for i := 0; i < days; i++ {
		doc.Schedule = append(doc.Schedule, plan.Day{
			DayOffset: i,
			Theme:     fmt.Sprintf("Day %d fundamentals", i+1),
			Tasks: []plan.Task{
				{Title: "Read", Description: "Work through the chapter", Minutes: 40},
				{Title: "Practice", Description: "Apply what you read", Minutes: 20},
			},
		})
	}
	data, _ := json.Marshal(doc)
	return string(data)
}
