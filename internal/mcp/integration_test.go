package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpc(t *testing.T, server *Server, id int, method string, params any) string {
	t.Helper()

	message, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	response := server.mcpServer.HandleMessage(context.Background(), message)
	require.NotNil(t, response)

	encoded, err := json.Marshal(response)
	require.NoError(t, err)
	return string(encoded)
}

func initialize(t *testing.T, server *Server) {
	t.Helper()
	rpc(t, server, 1, "initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test-client", "version": "1.0.0"},
	})
}

func TestServerToolsRegistration(t *testing.T) {
	server := newTestServer(t, testConfig(t.TempDir()))
	initialize(t, server)

	response := rpc(t, server, 2, "tools/list", map[string]any{})
	for _, tool := range []string{"analyze_document", "batch_analyze", "list_categories", "server_info"} {
		assert.Contains(t, response, `"name":"`+tool+`"`)
	}
}

func TestServerIntegration_ToolsCall(t *testing.T) {
	server := newTestServer(t, testConfig(t.TempDir()))
	initialize(t, server)

	response := rpc(t, server, 3, "tools/call", map[string]any{
		"name": "analyze_document",
		"arguments": map[string]any{
			"filename":  "aadhar card.png",
			"exam_type": "upsc",
		},
	})
	assert.Contains(t, response, "UPSC_photo_id_proof.png")
}

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func TestServer_Run_ServerMode(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Mode = "server"
	cfg.Port = freePort(t)
	server := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	metricsURL := fmt.Sprintf("http://%s/metrics", cfg.Address())
	require.Eventually(t, func() bool {
		resp, err := http.Get(metricsURL) //nolint:noctx // test helper
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}

func TestServer_Run_ServerModePortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg := testConfig(t.TempDir())
	cfg.Mode = "server"
	cfg.Port = listener.Addr().(*net.TCPAddr).Port
	server := newTestServer(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serve HTTP")
}
