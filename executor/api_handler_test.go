package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/variables"
	"github.com/stretchr/testify/require"
)

func apiContext(nodeId string) *ExecContext {
	return &ExecContext{
		Session: model.NewSessionState("s1", nodeId),
		Vars:    variables.NewStore(nil),
		Walker: graph.NewWalker([]model.Connection{
			{From: model.Endpoint{NodeId: nodeId}, To: model.Endpoint{NodeId: "next"}},
		}),
	}
}

func TestApiNodeSuccess(t *testing.T) {
	var gotPath, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Token")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	handler := NewApiHandler(srv.Client())
	ec := apiContext("api")
	ec.Vars.Set("userId", "42")
	node := model.Node{
		Id:   "api",
		Type: model.NODE_TYPE_API,
		Data: model.NodeData{
			Url:            srv.URL + "/users/{{userId}}",
			Headers:        map[string]string{"X-Token": "token-{{userId}}"},
			SuccessMessage: "All done!",
		},
	}
	result, err := handler.Execute(context.Background(), ec, node)
	require.NoError(t, err)
	require.Equal(t, "next", result.NextNodeId)
	require.Equal(t, "All done!", result.Message)
	require.Equal(t, "/users/42", gotPath)
	require.Equal(t, "token-42", gotHeader)
	require.Equal(t, `{"ok":true}`, ec.Vars.Get("apiResponse"))
	require.Equal(t, 200, ec.Vars.Get("apiStatus"))
}

func TestApiNodePostBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	handler := NewApiHandler(srv.Client())
	ec := apiContext("api")
	ec.Vars.Set("email", "a@b.com")
	node := model.Node{
		Id:   "api",
		Type: model.NODE_TYPE_API,
		Data: model.NodeData{
			Url:    srv.URL,
			Method: "post",
			Body:   map[string]any{"email": "{{email}}"},
		},
	}
	result, err := handler.Execute(context.Background(), ec, node)
	require.NoError(t, err)
	require.Equal(t, DEFAULT_API_SUCCESS_MESSAGE, result.Message)
	require.Equal(t, "a@b.com", gotBody["email"])
}

func TestApiNodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	handler := NewApiHandler(srv.Client())
	ec := apiContext("api")
	node := model.Node{
		Id:   "api",
		Type: model.NODE_TYPE_API,
		Data: model.NodeData{Url: srv.URL, ErrorMessage: "Could not reach the service."},
	}
	result, err := handler.Execute(context.Background(), ec, node)
	require.NoError(t, err)
	require.Equal(t, "next", result.NextNodeId)
	require.Equal(t, "Could not reach the service.", result.Message)
	require.Nil(t, ec.Vars.Get("apiResponse"))
}

func TestApiNodeUnreachable(t *testing.T) {
	handler := NewApiHandler(&http.Client{})
	ec := apiContext("api")
	node := model.Node{
		Id:   "api",
		Type: model.NODE_TYPE_API,
		Data: model.NodeData{Url: "http://127.0.0.1:1/nope"},
	}
	result, err := handler.Execute(context.Background(), ec, node)
	require.NoError(t, err)
	require.Equal(t, "next", result.NextNodeId)
	require.Equal(t, DEFAULT_API_ERROR_MESSAGE, result.Message)
}

func TestApiValidate(t *testing.T) {
	handler := NewApiHandler(&http.Client{})
	require.Error(t, handler.Validate(model.Node{Id: "api"}))
	require.NoError(t, handler.Validate(model.Node{Id: "api", Data: model.NodeData{Url: "http://x"}}))
}
