package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-signalist/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userCreatedPayload(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"email":             "new@example.com",
		"name":              "New User",
		"country":           "US",
		"investmentGoals":   "Growth",
		"riskTolerance":     "Medium",
		"preferredIndustry": "Technology",
	})
	require.NoError(t, err)
	return raw
}

func TestWelcomeEmail_HappyPath(t *testing.T) {
	userRepo := &fakeUserRepo{}
	ai := &fakeAIRepo{introText: "A custom intro just for you."}
	mail := &fakeMailer{}
	s := NewWelcomeEmailStrategy(testLogger(t), newTestRunner(t), userRepo, ai, mail)

	result, err := s.Execute(context.Background(), userCreatedPayload(t))
	require.NoError(t, err)

	assert.Equal(t, SUCCESS, result)
	require.Len(t, userRepo.upserted, 1)
	assert.Equal(t, "new@example.com", userRepo.upserted[0].Email)
	assert.NotEmpty(t, userRepo.upserted[0].ID)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "new@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].msg.HTML, "A custom intro just for you.")
	assert.Contains(t, mail.sent[0].msg.Subject, "Welcome to Signalist")
}

func TestWelcomeEmail_AIFailureFallsBackToGenericIntro(t *testing.T) {
	ai := &fakeAIRepo{introErr: errors.New("model unavailable")}
	mail := &fakeMailer{}
	s := NewWelcomeEmailStrategy(testLogger(t), newTestRunner(t), &fakeUserRepo{}, ai, mail)

	result, err := s.Execute(context.Background(), userCreatedPayload(t))
	require.NoError(t, err)

	assert.Equal(t, SUCCESS, result)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].msg.HTML, mailer.DefaultWelcomeIntro)
}

func TestWelcomeEmail_EmptyAITextFallsBackToGenericIntro(t *testing.T) {
	ai := &fakeAIRepo{introText: ""}
	mail := &fakeMailer{}
	s := NewWelcomeEmailStrategy(testLogger(t), newTestRunner(t), &fakeUserRepo{}, ai, mail)

	_, err := s.Execute(context.Background(), userCreatedPayload(t))
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].msg.HTML, mailer.DefaultWelcomeIntro)
}

func TestWelcomeEmail_MissingEmailFails(t *testing.T) {
	mail := &fakeMailer{}
	s := NewWelcomeEmailStrategy(testLogger(t), newTestRunner(t), &fakeUserRepo{}, &fakeAIRepo{}, mail)

	result, err := s.Execute(context.Background(), json.RawMessage(`{"name":"No Email"}`))

	require.Error(t, err)
	assert.Equal(t, FAILED, result)
	assert.Empty(t, mail.sent)
}

func TestWelcomeEmail_SendFailureFails(t *testing.T) {
	mail := &fakeMailer{sendErr: errors.New("smtp unreachable")}
	s := NewWelcomeEmailStrategy(testLogger(t), newTestRunner(t), &fakeUserRepo{}, &fakeAIRepo{introText: "hi"}, mail)

	result, err := s.Execute(context.Background(), userCreatedPayload(t))

	require.Error(t, err)
	assert.Equal(t, FAILED, result)
}
