// Package ksoap2utility calls ASP.NET (ASMX) SOAP web services with string parameters and
// returns a success flag, the raw scalar answer, or the answer parsed as a JSON array.
//
// Calls never return errors. Every failure is appended to the client's error log instead,
// which callers inspect with ListErrors and reset with ClearErrors.
package ksoap2utility

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bradlthomas/ksoap2utility/soap"
)

// ServiceClient calls the services hosted below one base address, all sharing one namespace.
type ServiceClient struct {
	namespace string
	address   string
	level     LoggingLevel

	logger     *slog.Logger
	httpClient *http.Client
	transport  *soap.Client
	log        logPolicy

	mu     sync.Mutex
	errors []ErrorRecord
}

// Option configures a ServiceClient.
type Option func(*ServiceClient)

// WithLoggingLevel sets the diagnostic verbosity. The default is LoggingSilent.
func WithLoggingLevel(level LoggingLevel) Option {
	return func(c *ServiceClient) {
		c.level = level
	}
}

// WithLogger sets the logger diagnostic lines are written to. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *ServiceClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used for all calls. The default is http.DefaultClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *ServiceClient) {
		c.httpClient = httpClient
	}
}

// New creates a ServiceClient. namespace is the XML namespace of the ASP.NET services
// (e.g. "http://tempuri.org/") and address the URL prefix the service names are appended to
// (e.g. "https://example.com/services/").
func New(namespace, address string, opts ...Option) *ServiceClient {
	c := &ServiceClient{
		namespace: namespace,
		address:   address,
		level:     LoggingSilent,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.transport = soap.NewClient(c.httpClient)
	c.log = newLogPolicy(c.level, c.logger)

	return c
}

// Namespace returns the service namespace.
func (c *ServiceClient) Namespace() string {
	return c.namespace
}

// Address returns the base address.
func (c *ServiceClient) Address() string {
	return c.address
}

// LoggingLevel returns the verbosity fixed at construction.
func (c *ServiceClient) LoggingLevel() LoggingLevel {
	return c.level
}

// InvokeVoid calls a method that returns no data. It reports whether the service answered without a fault.
func (c *ServiceClient) InvokeVoid(ctx context.Context, service, method string, params map[string]string) bool {
	const op = "InvokeVoid"
	c.log.enter(ctx, op, "service", service, "method", method, "parameters", params)

	_, err := c.call(ctx, service, method, params)
	ok := c.fold(ctx, op, err)

	c.log.exit(ctx, op, ok)
	return ok
}

// InvokeForString calls a method and returns its scalar answer as text. On failure it returns
// an empty string, which is indistinguishable from an empty answer; use InvokeForStringOK when that matters.
func (c *ServiceClient) InvokeForString(ctx context.Context, service, method string, params map[string]string) string {
	value, _ := c.invokeForString(ctx, "InvokeForString", service, method, params)
	return value
}

// InvokeForStringOK is InvokeForString with an explicit success flag.
func (c *ServiceClient) InvokeForStringOK(ctx context.Context, service, method string, params map[string]string) (string, bool) {
	return c.invokeForString(ctx, "InvokeForStringOK", service, method, params)
}

func (c *ServiceClient) invokeForString(ctx context.Context, op, service, method string, params map[string]string) (string, bool) {
	c.log.enter(ctx, op, "service", service, "method", method, "parameters", params)

	value, err := c.callForValue(ctx, service, method, params)
	ok := c.fold(ctx, op, err)
	if !ok {
		value = ""
	}

	c.log.exit(ctx, op, value)
	return value, ok
}

// InvokeForJSONArray calls a method whose scalar answer is a JSON array and returns it parsed.
// It returns nil on failure; records of answers that were not JSON arrays satisfy ErrorRecord.IsParseFailure.
func (c *ServiceClient) InvokeForJSONArray(ctx context.Context, service, method string, params map[string]string) JSONArray {
	const op = "InvokeForJSONArray"
	c.log.enter(ctx, op, "service", service, "method", method, "parameters", params)

	var result JSONArray
	value, err := c.callForValue(ctx, service, method, params)
	if err == nil {
		c.log.step(ctx, "parsing JSON array", "length", len(value))
		result, err = parseJSONArray(value)
	}
	if !c.fold(ctx, op, err) {
		result = nil
	}

	c.log.exit(ctx, op, result)
	return result
}

// ListErrors returns a copy of the errors recorded since the last ClearErrors, oldest first.
func (c *ServiceClient) ListErrors() []ErrorRecord {
	c.mu.Lock()
	records := make([]ErrorRecord, len(c.errors))
	copy(records, c.errors)
	c.mu.Unlock()

	c.log.errorLog(context.Background(), records)
	return records
}

// ClearErrors empties the error log.
func (c *ServiceClient) ClearErrors() {
	c.mu.Lock()
	c.errors = nil
	c.mu.Unlock()

	c.log.cleared(context.Background())
}

func (c *ServiceClient) call(ctx context.Context, service, method string, params map[string]string) (*soap.Primitive, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.log.step(ctx, "building request", "namespace", c.namespace, "method", method)
	operation := soap.NewOperation(c.namespace, method, params)

	url := c.address + service
	req, resp := soap.NewOperationRequest(url, operation)

	c.log.step(ctx, "calling service", "url", url, "action", operation.Action())
	if _, err := c.transport.Call(ctx, req); err != nil {
		return nil, err
	}
	c.log.step(ctx, "response received", "element", resp.Name.Local)

	return resp, nil
}

func (c *ServiceClient) callForValue(ctx context.Context, service, method string, params map[string]string) (string, error) {
	resp, err := c.call(ctx, service, method, params)
	if err != nil {
		return "", err
	}
	return resp.Value()
}

// fold turns a failed step into an error record and reports whether the step succeeded.
func (c *ServiceClient) fold(ctx context.Context, op string, err error) bool {
	if err == nil {
		return true
	}

	c.log.failure(ctx, op, err)

	c.mu.Lock()
	c.errors = append(c.errors, ErrorRecord{Message: err.Error()})
	c.mu.Unlock()

	return false
}
