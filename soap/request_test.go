package soap

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSerialize(t *testing.T) {
	tests := []struct {
		name       string
		headers    []interface{}
		contains   []string
		notContain string
	}{
		{
			name:       "no headers",
			contains:   []string{`<Ping xmlns="http://tempuri.org/"></Ping>`},
			notContain: "<Header",
		},
		{
			name:    "with headers",
			headers: []interface{}{headerExample{Attr1: 15, Value: "test header value"}, headerExample{Attr1: 2, Value: "second"}},
			contains: []string{
				`<Header xmlns="http://schemas.xmlsoap.org/soap/envelope/"><HeaderExample attr1="15">test header value</HeaderExample><HeaderExample attr1="2">second</HeaderExample></Header>`,
				`<Ping xmlns="http://tempuri.org/"></Ping>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := NewOperationRequest("http://example.com/Svc.asmx", NewOperation("http://tempuri.org/", "Ping", nil))
			for _, h := range tt.headers {
				req.AddHeader(h)
			}

			r, err := req.serialize()
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)

			out := string(data)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			if tt.notContain != "" {
				assert.NotContains(t, out, tt.notContain)
			}
		})
	}
}
