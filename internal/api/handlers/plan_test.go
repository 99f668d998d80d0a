package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/mindarch/studyplan/internal/api/middleware"
	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/validator"
	"github.com/mindarch/studyplan/internal/services"
	"github.com/mindarch/studyplan/internal/testutil"
)

func newPlanHandler(gen *testutil.FakeGenerator) (*PlanHandler, *testutil.MockPlanRepository) {
	mockRepo := testutil.NewMockPlanRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := services.NewPlanService(mockRepo, gen, log)
	return NewPlanHandler(service, log, validator.New()), mockRepo
}

func authedRequest(method, path string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func sampleDocument() *plan.Document {
	return &plan.Document{
		Overview: "A focused two-day sprint.",
		Schedule: []plan.Day{
			{
				DayOffset: 0,
				Theme:     "Basics",
				Tasks: []plan.Task{
					{Title: "Read", Description: "Chapter 1", Minutes: 30},
				},
			},
			{
				DayOffset: 1,
				Theme:     "Review",
				Tasks: []plan.Task{
					{Title: "Quiz", Description: "Self-test", Minutes: 30},
				},
			},
		},
	}
}

func TestPlanHandler_SaveAndGet(t *testing.T) {
	handler, _ := newPlanHandler(&testutil.FakeGenerator{})
	doc := sampleDocument()
	body, _ := json.Marshal(doc)

	rr := httptest.NewRecorder()
	handler.Save(rr, authedRequest(http.MethodPost, "/api/plan", body, 1))
	if rr.Code != http.StatusOK {
		t.Fatalf("Save() status = %v, want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.Get(rr, authedRequest(http.MethodGet, "/api/plan", nil, 1))
	if rr.Code != http.StatusOK {
		t.Fatalf("Get() status = %v, want %v", rr.Code, http.StatusOK)
	}

	var got plan.Document
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !reflect.DeepEqual(&got, doc) {
		t.Errorf("Get() = %+v, want %+v", got, doc)
	}
}

func TestPlanHandler_GetWithoutPlan(t *testing.T) {
	handler, _ := newPlanHandler(&testutil.FakeGenerator{})

	rr := httptest.NewRecorder()
	handler.Get(rr, authedRequest(http.MethodGet, "/api/plan", nil, 7))
	if rr.Code != http.StatusOK {
		t.Fatalf("Get() status = %v, want %v", rr.Code, http.StatusOK)
	}

	// No stored plan reads back as JSON null
	if body := bytes.TrimSpace(rr.Body.Bytes()); string(body) != "null" {
		t.Errorf("Get() body = %s, want null", body)
	}
}

func TestPlanHandler_Unauthenticated(t *testing.T) {
	gen := &testutil.FakeGenerator{Response: testutil.ValidPlanJSON(3)}
	handler, repo := newPlanHandler(gen)

	doc, _ := json.Marshal(sampleDocument())
	genBody, _ := json.Marshal(map[string]interface{}{
		"subject": "Go", "goal": "Learn", "startDate": "2024-01-01",
		"endDate": "2024-01-03", "dailyMinutes": 60, "difficulty": "beginner",
	})

	tests := []struct {
		name   string
		invoke func(rr *httptest.ResponseRecorder)
	}{
		{
			name: "save plan",
			invoke: func(rr *httptest.ResponseRecorder) {
				handler.Save(rr, httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(doc)))
			},
		},
		{
			name: "get plan",
			invoke: func(rr *httptest.ResponseRecorder) {
				handler.Get(rr, httptest.NewRequest(http.MethodGet, "/api/plan", nil))
			},
		},
		{
			name: "generate",
			invoke: func(rr *httptest.ResponseRecorder) {
				handler.Generate(rr, httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(genBody)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.invoke(rr)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %v, want %v", rr.Code, http.StatusUnauthorized)
			}
		})
	}

	// Anonymous requests leave storage and provider untouched
	if repo.SaveCalls != 0 {
		t.Errorf("storage writes = %d, want 0", repo.SaveCalls)
	}
	if gen.Calls != 0 {
		t.Errorf("provider calls = %d, want 0", gen.Calls)
	}
}

func TestPlanHandler_Generate(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name: "valid request",
			body: map[string]interface{}{
				"subject": "Go", "goal": "Learn", "startDate": "2024-01-01",
				"endDate": "2024-01-03", "dailyMinutes": 60, "difficulty": "beginner",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "inverted date range",
			body: map[string]interface{}{
				"subject": "Go", "goal": "Learn", "startDate": "2024-01-05",
				"endDate": "2024-01-01", "dailyMinutes": 60, "difficulty": "beginner",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing subject",
			body: map[string]interface{}{
				"goal": "Learn", "startDate": "2024-01-01",
				"endDate": "2024-01-03", "dailyMinutes": 60, "difficulty": "beginner",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "non-positive daily minutes",
			body: map[string]interface{}{
				"subject": "Go", "goal": "Learn", "startDate": "2024-01-01",
				"endDate": "2024-01-03", "dailyMinutes": 0, "difficulty": "beginner",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo := newPlanHandler(&testutil.FakeGenerator{Response: testutil.ValidPlanJSON(3)})
			body, _ := json.Marshal(tt.body)

			rr := httptest.NewRecorder()
			handler.Generate(rr, authedRequest(http.MethodPost, "/generate", body, 1))

			if rr.Code != tt.expectedStatus {
				t.Errorf("Generate() status = %v, want %v, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var got plan.Document
				if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(got.Schedule) != 3 {
					t.Errorf("Generate() schedule length = %d, want 3", len(got.Schedule))
				}
			}

			// Generation never persists implicitly
			if repo.SaveCalls != 0 {
				t.Errorf("storage writes = %d, want 0", repo.SaveCalls)
			}
		})
	}
}

func TestPlanHandler_Generate_ProviderFailure(t *testing.T) {
	handler, _ := newPlanHandler(&testutil.FakeGenerator{Err: context.DeadlineExceeded})

	body, _ := json.Marshal(map[string]interface{}{
		"subject": "Go", "goal": "Learn", "startDate": "2024-01-01",
		"endDate": "2024-01-03", "dailyMinutes": 60, "difficulty": "beginner",
	})

	rr := httptest.NewRecorder()
	handler.Generate(rr, authedRequest(http.MethodPost, "/generate", body, 1))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Generate() status = %v, want %v", rr.Code, http.StatusInternalServerError)
	}
}
