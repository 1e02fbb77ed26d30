package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digital-twin-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkEvent(content string) string {
	return fmt.Sprintf(`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`+"\n\n", content)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b", req["model"])
		assert.InDelta(t, 0.9, req["temperature"], 1e-9)
		assert.InDelta(t, float64(defaultMaxTokens), req["max_completion_tokens"], 1e-9)
		messages := req["messages"].([]interface{})
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewProvider("key", srv.URL+"/", "llama-3.1-8b")
	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be nice"},
		{Role: llm.RoleUser, Content: "hello"},
	}, llm.WithTemperature(0.9))

	require.NoError(t, err)
	assert.Equal(t, "hi there", got)
}

func TestChat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewProvider("key", srv.URL+"/", "m").Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Hello", "", ", world"} {
			_, _ = w.Write([]byte(chunkEvent(part)))
		}
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	tokens, err := NewProvider("key", srv.URL+"/", "m").ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.NoError(t, err)

	var sb strings.Builder
	var last llm.StreamToken
	count := 0
	for tok := range tokens {
		require.NoError(t, tok.Error)
		sb.WriteString(tok.Content)
		last = tok
		count++
	}
	assert.Equal(t, "Hello, world", sb.String())
	assert.True(t, last.Done)
	assert.Equal(t, 3, count) // empty deltas are skipped
}

func TestChatStream_ErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(chunkEvent("par")))
		_, _ = w.Write([]byte(`data: {"error":{"message":"model overloaded"}}` + "\n\n"))
	}))
	defer srv.Close()

	tokens, err := NewProvider("key", srv.URL+"/", "m").ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.NoError(t, err)

	var got []llm.StreamToken
	for tok := range tokens {
		got = append(got, tok)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "par", got[0].Content)
	require.Error(t, got[1].Error)
	assert.Contains(t, got[1].Error.Error(), "model overloaded")
	assert.False(t, got[1].Done)
}

func TestChatStream_RequestRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewProvider("key", srv.URL+"/", "m").ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai stream")
}

func TestConvertMessages(t *testing.T) {
	got := convertMessages([]llm.Message{
		{Role: llm.RoleSystem, Content: "s"},
		{Role: llm.RoleAssistant, Content: "a"},
		{Role: "unknown", Content: "u"},
	})
	require.Len(t, got, 3)
	assert.NotNil(t, got[0].OfSystem)
	assert.NotNil(t, got[1].OfAssistant)
	assert.NotNil(t, got[2].OfUser)
}
