package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ubaidjmi/voiceai-be/internal/api"
	"github.com/ubaidjmi/voiceai-be/internal/auth"
	"github.com/ubaidjmi/voiceai-be/internal/config"
	"github.com/ubaidjmi/voiceai-be/internal/database"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

type testEnv struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		TrainingDelay:  5 * time.Millisecond,
		AllowedOrigins: []string{"*"},
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)

	router := api.NewRouter(cfg, db, tokens,
		services.NewUserService(db),
		services.NewConversationService(db),
		services.NewVoiceSampleService(db),
		services.NewSettingsService(db),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{t: t, srv: srv}
}

// request performs a JSON request and decodes the response body into out
// when out is non-nil.
func (e *testEnv) request(method, path, token string, body, out interface{}) int {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(e.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) register(username, email string) string {
	e.t.Helper()

	var out struct {
		Token string `json:"token"`
	}
	status := e.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "correct-horse-battery",
	}, &out)
	require.Equal(e.t, http.StatusCreated, status)
	require.NotEmpty(e.t, out.Token)
	return out.Token
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t)

	var root map[string]interface{}
	assert.Equal(t, http.StatusOK, env.request(http.MethodGet, "/", "", nil, &root))
	assert.Equal(t, "running", root["status"])

	var health map[string]string
	assert.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/health", "", nil, &health))
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "Connected", health["database"])

	assert.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/test", "", nil, nil))
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com")

	// Same username or email must be rejected.
	var dup map[string]string
	status := env.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "fresh@example.com", "password": "correct-horse-battery",
	}, &dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", dup["error"])

	var login struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	status = env.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "correct-horse-battery",
	}, &login)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User["username"])
	assert.NotContains(t, login.User, "password")
	assert.NotContains(t, login.User, "passwordHash")

	// Wrong password and unknown email produce identical failures.
	var wrongPass, unknownEmail map[string]string
	s1 := env.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "nope-nope-nope",
	}, &wrongPass)
	s2 := env.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "correct-horse-battery",
	}, &unknownEmail)
	assert.Equal(t, http.StatusBadRequest, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, wrongPass, unknownEmail)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	var missing map[string]string
	status := env.request(http.MethodGet, "/api/conversations", "", nil, &missing)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", missing["error"])

	var invalid map[string]string
	status = env.request(http.MethodGet, "/api/conversations", "garbage-token", nil, &invalid)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", invalid["error"])
}

func TestConversationEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	var created struct {
		ID       string `json:"id"`
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
	}
	status := env.request(http.MethodPost, "/api/conversations", token, map[string]interface{}{
		"messages": []map[string]interface{}{{"text": "hey", "isUser": true, "time": "10:00 AM"}},
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)

	status = env.request(http.MethodPost, "/api/conversations/"+created.ID+"/messages", token, map[string]interface{}{
		"text": "hello back", "isUser": false, "time": "10:01 AM",
	}, &created)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, created.Messages, 2)
	assert.Equal(t, "hey", created.Messages[0].Text)
	assert.Equal(t, "hello back", created.Messages[1].Text)

	var list []struct {
		ID string `json:"id"`
	}
	status = env.request(http.MethodGet, "/api/conversations", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)

	status = env.request(http.MethodDelete, "/api/conversations/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status = env.request(http.MethodDelete, "/api/conversations/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.register("alice", "alice@example.com")
	bobToken := env.register("bob", "bob@example.com")

	var conv struct {
		ID string `json:"id"`
	}
	status := env.request(http.MethodPost, "/api/conversations", aliceToken, map[string]interface{}{
		"messages": []map[string]interface{}{{"text": "private", "isUser": true}},
	}, &conv)
	require.Equal(t, http.StatusCreated, status)

	var sample struct {
		ID string `json:"id"`
	}
	status = env.request(http.MethodPost, "/api/voice-samples", aliceToken, map[string]interface{}{
		"quality": "high", "duration": 4.5, "filePath": "/recordings/one.wav",
	}, &sample)
	require.Equal(t, http.StatusCreated, status)

	// Bob's token grants no access to Alice's records; foreign records look
	// missing.
	assert.Equal(t, http.StatusNotFound,
		env.request(http.MethodPost, "/api/conversations/"+conv.ID+"/messages", bobToken,
			map[string]interface{}{"text": "intrusion"}, nil))
	assert.Equal(t, http.StatusNotFound,
		env.request(http.MethodDelete, "/api/conversations/"+conv.ID, bobToken, nil, nil))
	assert.Equal(t, http.StatusNotFound,
		env.request(http.MethodDelete, "/api/voice-samples/"+sample.ID, bobToken, nil, nil))

	var bobList []interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/conversations", bobToken, nil, &bobList))
	assert.Empty(t, bobList)

	// Alice's data is intact.
	var aliceList []interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/conversations", aliceToken, nil, &aliceList))
	assert.Len(t, aliceList, 1)
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	var settings map[string]interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/settings", token, nil, &settings))
	assert.Equal(t, "Hey Assistant", settings["wakeWord"])
	assert.Equal(t, float64(75), settings["sensitivity"])

	status := env.request(http.MethodPut, "/api/settings", token, map[string]interface{}{
		"darkMode": true, "sensitivity": 60,
	}, &settings)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, settings["darkMode"])
	assert.Equal(t, float64(60), settings["sensitivity"])
	assert.Equal(t, "Hey Assistant", settings["wakeWord"])

	status = env.request(http.MethodPost, "/api/settings/wake-word", token, map[string]string{
		"wakeWord": "Hey Jarvis",
	}, &settings)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hey Jarvis", settings["wakeWord"])
	assert.Equal(t, true, settings["darkMode"])
}

func TestAssistantEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	var reply map[string]string
	status := env.request(http.MethodPost, "/api/assistant/query", token, map[string]string{
		"message": "What's the weather?",
	}, &reply)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "It's sunny with a high of 75°F. Perfect for a walk!", reply["response"])

	// Priority order: weather is checked before hello.
	status = env.request(http.MethodPost, "/api/assistant/query", token, map[string]string{
		"message": "hello, how's the weather?",
	}, &reply)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "It's sunny with a high of 75°F. Perfect for a walk!", reply["response"])
}

func TestTrainVoice(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	addSample := func() {
		status := env.request(http.MethodPost, "/api/voice-samples", token, map[string]interface{}{
			"quality": "high", "duration": 3.5, "filePath": "/recordings/sample.wav",
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	// 0, 1 and 2 samples are not enough.
	for i := 0; i < 3; i++ {
		var body map[string]string
		status := env.request(http.MethodPost, "/api/assistant/train-voice", token, nil, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "More samples needed", body["error"])
		assert.Equal(t, "Please record at least 3 voice samples.", body["message"])
		addSample()
	}

	// Exactly 3 samples trains.
	var ok struct {
		Message     string `json:"message"`
		Success     bool   `json:"success"`
		SamplesUsed int    `json:"samplesUsed"`
	}
	status := env.request(http.MethodPost, "/api/assistant/train-voice", token, nil, &ok)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, ok.Success)
	assert.Equal(t, 3, ok.SamplesUsed)
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	var profile map[string]interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/profile", token, nil, &profile))
	assert.Equal(t, "alice", profile["username"])
	assert.NotContains(t, profile, "password")
	assert.NotContains(t, profile, "passwordHash")

	status := env.request(http.MethodPut, "/api/profile", token, map[string]string{
		"username": "alice2", "email": "alice2@example.com",
	}, &profile)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice2", profile["username"])

	var failure map[string]string
	status = env.request(http.MethodPost, "/api/profile/change-password", token, map[string]string{
		"currentPassword": "wrong-password", "newPassword": "brand-new-password",
	}, &failure)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Current password is incorrect", failure["error"])

	status = env.request(http.MethodPost, "/api/profile/change-password", token, map[string]string{
		"currentPassword": "correct-horse-battery", "newPassword": "brand-new-password",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	status = env.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice2@example.com", "password": "brand-new-password",
	}, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/conversations", token, map[string]interface{}{
		"messages": []map[string]interface{}{{"text": "hey", "isUser": true}},
	}, nil))
	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/voice-samples", token, map[string]interface{}{
		"quality": "high", "duration": 4.5, "filePath": "/recordings/one.wav",
	}, nil))

	var bundle struct {
		User          map[string]interface{}   `json:"user"`
		Conversations []map[string]interface{} `json:"conversations"`
		VoiceSamples  []map[string]interface{} `json:"voiceSamples"`
		Settings      map[string]interface{}   `json:"settings"`
		ExportedAt    string                   `json:"exportedAt"`
	}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/export", token, nil, &bundle))
	assert.Equal(t, "alice", bundle.User["username"])
	assert.Len(t, bundle.Conversations, 1)
	assert.Len(t, bundle.VoiceSamples, 1)
	assert.Equal(t, "Hey Assistant", bundle.Settings["wakeWord"])
	assert.NotEmpty(t, bundle.ExportedAt)
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/conversations", token, map[string]interface{}{
		"messages": []map[string]interface{}{{"text": "hey", "isUser": true}},
	}, nil))
	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/voice-samples", token, map[string]interface{}{
		"quality": "high", "duration": 4.5, "filePath": "/recordings/one.wav",
	}, nil))

	var settings map[string]interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodPut, "/api/settings", token, map[string]interface{}{
		"wakeWord": "Hey Jarvis", "darkMode": true,
	}, &settings))
	settingsID := settings["id"]

	var result map[string]string
	require.Equal(t, http.StatusOK, env.request(http.MethodPost, "/api/reset", token, map[string]string{
		"type": "all",
	}, &result))
	assert.Equal(t, "all data reset successfully", result["message"])

	var conversations, samples []interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/conversations", token, nil, &conversations))
	assert.Empty(t, conversations)
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/voice-samples", token, nil, &samples))
	assert.Empty(t, samples)

	// Settings were overwritten with defaults, not deleted.
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/settings", token, nil, &settings))
	assert.Equal(t, settingsID, settings["id"])
	assert.Equal(t, "Hey Assistant", settings["wakeWord"])
	assert.Equal(t, false, settings["darkMode"])
	assert.Equal(t, float64(75), settings["sensitivity"])
}

func TestResetScoped(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("alice", "alice@example.com")

	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/conversations", token, map[string]interface{}{
		"messages": []map[string]interface{}{{"text": "hey", "isUser": true}},
	}, nil))
	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/api/voice-samples", token, map[string]interface{}{
		"quality": "high", "duration": 4.5, "filePath": "/recordings/one.wav",
	}, nil))

	require.Equal(t, http.StatusOK, env.request(http.MethodPost, "/api/reset", token, map[string]string{
		"type": "conversations",
	}, nil))

	var conversations, samples []interface{}
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/conversations", token, nil, &conversations))
	assert.Empty(t, conversations)
	require.Equal(t, http.StatusOK, env.request(http.MethodGet, "/api/voice-samples", token, nil, &samples))
	assert.Len(t, samples, 1)
}
