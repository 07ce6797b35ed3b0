package ksoap2utility

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoggingLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LoggingLevel
		wantErr bool
	}{
		{in: "", want: LoggingSilent},
		{in: "silent", want: LoggingSilent},
		{in: "Minimal", want: LoggingMinimal},
		{in: " medium ", want: LoggingMedium},
		{in: "VERBOSE", want: LoggingVerbose},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLoggingLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(got.String()), got.String())
		})
	}
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// exerciseClient runs one successful call, one failing call, and the error log operations.
func exerciseClient(t *testing.T, level LoggingLevel) string {
	t.Helper()

	srv := newASMXServer(t, map[string]asmxAnswer{
		"Login": answer("OK"),
		"Fail":  {fault: "boom"},
	})
	logger, buf := captureLogger()
	c := newTestClient(srv, WithLoggingLevel(level), WithLogger(logger))

	c.InvokeForString(context.Background(), "Auth.asmx", "Login", map[string]string{"user": "bob"})
	c.InvokeVoid(context.Background(), "Auth.asmx", "Fail", nil)
	c.ListErrors()
	c.ClearErrors()

	return buf.String()
}

func TestSilentLogsNothing(t *testing.T) {
	assert.Empty(t, exerciseClient(t, LoggingSilent))
}

func TestMinimalLogsFailuresOnly(t *testing.T) {
	out := exerciseClient(t, LoggingMinimal)

	assert.Contains(t, out, "call failed")
	assert.Contains(t, out, "tag=KSOAP2Utility")
	assert.Contains(t, out, "soap:Client (boom)")
	assert.NotContains(t, out, "entering")
}

func TestMediumLogsEntryAndExit(t *testing.T) {
	out := exerciseClient(t, LoggingMedium)

	assert.Contains(t, out, "msg=entering tag=KSOAP2Utility operation=InvokeForString")
	assert.Contains(t, out, "msg=exiting tag=KSOAP2Utility operation=InvokeVoid")
	assert.Contains(t, out, "operation=ListErrors")
	assert.Contains(t, out, "operation=ClearErrors")
	assert.Contains(t, out, "call failed")
	assert.NotContains(t, out, "parameters=")
	assert.NotContains(t, out, "calling service")
}

func TestVerboseLogsEverything(t *testing.T) {
	out := exerciseClient(t, LoggingVerbose)

	assert.Contains(t, out, "parameters=map[user:bob]")
	assert.Contains(t, out, "calling service")
	assert.Contains(t, out, "action=http://tempuri.org/Login")
	assert.Contains(t, out, "result=OK")
	assert.Contains(t, out, "error_type=*soap.Fault")
	assert.Contains(t, out, "count=1")
	assert.Contains(t, out, "recorded error")
	assert.Contains(t, out, "errors cleared")
}

func TestVerboseReachesInfoHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	c := New(testNamespace, "http://127.0.0.1:0/", WithLoggingLevel(LoggingVerbose), WithLogger(logger))

	c.InvokeVoid(context.Background(), "Svc.asmx", "Ping", nil)
	c.ListErrors()
	c.ClearErrors()

	out := buf.String()
	assert.Contains(t, out, "building request")
	assert.Contains(t, out, "calling service")
	assert.Contains(t, out, "count=1")
	assert.Contains(t, out, "recorded error")
	assert.Contains(t, out, "errors cleared")
}
