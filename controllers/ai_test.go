package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"aiinvoice-backend/models"
	"aiinvoice-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type cannedCompleter struct {
	reply string
	err   error
}

func (c cannedCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.reply}},
		},
	}, nil
}

func setupAIController(t *testing.T, completer services.ChatCompleter) *AIController {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BusinessProfile{}))

	svc := services.NewDraftService(completer, []string{"m1"}, zerolog.Nop())
	return NewAIController(svc, db, zerolog.Nop())
}

func TestGenerateDraftEndpoint(t *testing.T) {
	ac := setupAIController(t, cannedCompleter{reply: `{"invoiceNumber":"INV-9"}`})

	c, w := jsonRequest(t, "user-a", http.MethodPost, "/api/ai/generate", `{"prompt":"two days of design"}`, nil)
	ac.GenerateDraft(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	assert.Equal(t, "m1", resp["model"])
	assert.Equal(t, "INV-9", resp["data"].(map[string]interface{})["invoiceNumber"])
}

func TestGenerateDraftRequiresPrompt(t *testing.T) {
	ac := setupAIController(t, cannedCompleter{reply: `{}`})

	c, w := jsonRequest(t, "user-a", http.MethodPost, "/api/ai/generate", `{"prompt":"  "}`, nil)
	ac.GenerateDraft(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateDraftUpstreamFailure(t *testing.T) {
	ac := setupAIController(t, cannedCompleter{err: errors.New("model down")})

	c, w := jsonRequest(t, "user-a", http.MethodPost, "/api/ai/generate", `{"prompt":"x"}`, nil)
	ac.GenerateDraft(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
