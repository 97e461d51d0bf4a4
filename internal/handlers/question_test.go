package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"canova-go/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubQuestionRepo struct {
	created []*models.Question
	err     error
}

func (s *stubQuestionRepo) Create(ctx context.Context, q *models.Question) error {
	if s.err != nil {
		return s.err
	}
	q.ID = "created-question"
	s.created = append(s.created, q)
	return nil
}

func newQuestionRouter(repo *stubQuestionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQuestionHandler(repo, zap.NewNop())
	r := gin.New()
	r.POST("/api/question", handler.Create)
	return r
}

func postQuestion(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/question", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestCreateQuestion_MultipleChoice(t *testing.T) {
	repo := &stubQuestionRepo{}
	r := newQuestionRouter(repo)

	w, body := postQuestion(t, r,
		`{"formId":"f1","pageId":"p1","type":"multiple-choice","options":["Yes","No"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created-question", body["id"])
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.TypeMultipleChoice, repo.created[0].Type)
	assert.Equal(t, []string{"Yes", "No"}, []string(repo.created[0].Options))
}

func TestCreateQuestion_OptionTypesNeedTwoOptions(t *testing.T) {
	for _, typ := range []string{"multiple-choice", "checkbox", "dropdowns"} {
		repo := &stubQuestionRepo{}
		r := newQuestionRouter(repo)

		w, body := postQuestion(t, r,
			`{"formId":"f1","pageId":"p1","type":"`+typ+`","options":["Only"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "type %s must require two options", typ)
		assert.Contains(t, body["error"], "at least two options")
		assert.Empty(t, repo.created)
	}
}

func TestCreateQuestion_OptionsForbiddenForPlainTypes(t *testing.T) {
	repo := &stubQuestionRepo{}
	r := newQuestionRouter(repo)

	w, body := postQuestion(t, r,
		`{"formId":"f1","pageId":"p1","type":"short","options":["Yes","No"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "not allowed")
	assert.Empty(t, repo.created)
}

func TestCreateQuestion_PlainTypeWithoutOptions(t *testing.T) {
	repo := &stubQuestionRepo{}
	r := newQuestionRouter(repo)

	w, _ := postQuestion(t, r, `{"formId":"f1","pageId":"p1","type":"rating"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Empty(t, repo.created[0].Options)
}

func TestCreateQuestion_UnknownType(t *testing.T) {
	repo := &stubQuestionRepo{}
	r := newQuestionRouter(repo)

	w, body := postQuestion(t, r, `{"formId":"f1","pageId":"p1","type":"essay"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "unknown question type")
}

func TestCreateQuestion_MissingOwnership(t *testing.T) {
	repo := &stubQuestionRepo{}
	r := newQuestionRouter(repo)

	w, body := postQuestion(t, r, `{"pageId":"p1","type":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "formId")

	w, body = postQuestion(t, r, `{"formId":"f1","type":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "pageId")
}
