package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"user=bob", "filter=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "bob", "filter": "a=b", "empty": ""}, params)

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=x"})
	assert.Error(t, err)
}

func newScalarServer(t *testing.T, result string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		method := strings.TrimPrefix(strings.Trim(r.Header.Get("SOAPAction"), `"`), "http://tempuri.org/")
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = io.WriteString(w, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><`+
			method+`Response xmlns="http://tempuri.org/"><`+method+`Result>`+result+`</`+method+`Result></`+
			method+`Response></soap:Body></soap:Envelope>`)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("KSOAP2_CONFIG", "")

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root := NewRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnswerCommand(t *testing.T) {
	srv := newScalarServer(t, "OK")

	out, _, err := runRoot(t, "answer", "--address", srv.URL+"/", "Authenticate.asmx", "Login", "-p", "user=bob")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
}

func TestExecCommand(t *testing.T) {
	srv := newScalarServer(t, "")

	out, _, err := runRoot(t, "exec", "--address", srv.URL+"/", "Authenticate.asmx", "Logout")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestArrayCommand(t *testing.T) {
	srv := newScalarServer(t, "[1, 2, 3]")

	out, _, err := runRoot(t, "array", "--address", srv.URL+"/", "Data.asmx", "List")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]\n", out)
}

func TestArrayCommandRecordsParseFailure(t *testing.T) {
	srv := newScalarServer(t, "not json")

	out, errOut, err := runRoot(t, "array", "--address", srv.URL+"/", "Data.asmx", "List")
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error 1: json parse failure: ")
}

func TestAnswerCommandAcceptsUpperCaseLevel(t *testing.T) {
	srv := newScalarServer(t, "OK")

	out, _, err := runRoot(t, "answer", "-l", "VERBOSE", "--address", srv.URL+"/", "Authenticate.asmx", "Login")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
}

func TestCommandRejectsInvalidConfig(t *testing.T) {
	_, errOut, err := runRoot(t, "exec", "--address", "not a url", "Data.asmx", "List")
	assert.Error(t, err)
	assert.Equal(t, 1, strings.Count(errOut, "configuration:"), "config error is reported once")
	assert.Contains(t, errOut, "Error: configuration: invalid config value for Address")

	_, _, err = runRoot(t, "exec", "Data.asmx")
	assert.Error(t, err)
}
