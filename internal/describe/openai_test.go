package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmorgan81/convergence/internal/remote"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type     string `json:"type"`
			Text     string `json:"text"`
			ImageURL struct {
				URL string `json:"url"`
			} `json:"image_url"`
		} `json:"content"`
	} `json:"messages"`
}

func newDescriber(t *testing.T, handler http.HandlerFunc) *OpenAIDescriber {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &OpenAIDescriber{
		Client: openai.NewClientWithConfig(remote.Config("sk-test", srv.URL+"/v1", srv.Client())),
		Model:  openai.GPT4VisionPreview,
	}
}

func TestDescribe(t *testing.T) {
	d := newDescriber(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openai.GPT4VisionPreview, req.Model)
		assert.Equal(t, MaxTokens, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
		require.Len(t, req.Messages[0].Content, 2)
		assert.Equal(t, "text", req.Messages[0].Content[0].Type)
		assert.Equal(t, "Describe the image in all details.", req.Messages[0].Content[0].Text)
		assert.Equal(t, "image_url", req.Messages[0].Content[1].Type)
		assert.True(t, strings.HasPrefix(req.Messages[0].Content[1].ImageURL.URL, "data:image/jpeg;base64,"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"A red circle on a white field."},"finish_reason":"stop"}]}`)
	})

	text, err := d.Describe(context.Background(), jpegBytes, "Describe the image in all details.")
	require.NoError(t, err)
	assert.Equal(t, "A red circle on a white field.", text)
}

func TestDescribeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   int
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`, http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError, `oops`, http.StatusInternalServerError},
		{"no choices", http.StatusOK, `{"choices":[]}`, 0},
		{"blank content", http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"  "}}]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDescriber(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := d.Describe(context.Background(), jpegBytes, "describe")
			var svcErr *remote.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, "describe", svcErr.Service)
			assert.Equal(t, tt.code, svcErr.StatusCode)
		})
	}
}

func TestDescribeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only notices the client hanging up once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond
	d := &OpenAIDescriber{
		Client: openai.NewClientWithConfig(remote.Config("sk-test", srv.URL+"/v1", client)),
		Model:  openai.GPT4VisionPreview,
	}

	_, err := d.Describe(context.Background(), jpegBytes, "describe")
	assert.True(t, remote.IsServiceError(err))
}

func TestDataURL(t *testing.T) {
	assert.True(t, strings.HasPrefix(DataURL(jpegBytes), "data:image/jpeg;base64,"))
	assert.True(t, strings.HasPrefix(DataURL(pngBytes), "data:image/png;base64,"))
	assert.Equal(t, "data:image/jpeg;base64,aGk=", DataURL([]byte("hi")))
}
