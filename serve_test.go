package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestServeStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	a, closeSource, err := newApp(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	defer func() { _ = closeSource() }()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: a.routes(), ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, logger) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	assert.Equal(t, 1, logs.FilterMessage("server stopped").Len())
}

func TestServeReportsListenerFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = serve(context.Background(), &http.Server{ReadHeaderTimeout: time.Second}, ln, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve:")
}

func TestCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		viewport = 0
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	run := func(args ...string) string {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return buf.String()
	}

	out := run("show", "Sales", "--width", "390", "--color=false", "--log-level", "error")
	assert.Contains(t, out, "Insights dashboard: Sales (layout SINGLE_COLUMN)")

	out = run("factors", "Nobody", "--backend", "sqlite", "--log-level", "error")
	assert.Contains(t, out, "Factor analysis: Engineering Product")

	out = run("teams", "--log-level", "error")
	assert.Contains(t, out, "Customer Success")
}
