package xmlrpc

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kolo/xmlrpc"

	"github.com/getpatchwork/pwclient/internal/api"
)

// fault builds a server fault for handler injection.
func fault(msg string) error {
	return xmlrpc.FaultError{Code: 1, String: msg}
}

// rpcCall records one invocation seen by the fake transport.
type rpcCall struct {
	method string
	args   []any
}

// fakeCaller dispatches calls to per-method handlers and records every
// invocation. Handlers return the value to deliver into reply.
type fakeCaller struct {
	handlers map[string]func(args []any) (any, error)
	calls    []rpcCall
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{handlers: map[string]func(args []any) (any, error){}}
}

func (f *fakeCaller) on(method string, handler func(args []any) (any, error)) {
	f.handlers[method] = handler
}

func (f *fakeCaller) returns(method string, value any) {
	f.on(method, func([]any) (any, error) { return value, nil })
}

func (f *fakeCaller) Call(method string, args any, reply any) error {
	list, _ := args.([]any)
	// Record a snapshot of map arguments: a real transport serializes
	// them before the caller can mutate them for the next call.
	recorded := make([]any, len(list))
	for i, arg := range list {
		if m, ok := arg.(map[string]any); ok {
			cp := make(map[string]any, len(m))
			for k, v := range m {
				cp[k] = v
			}
			recorded[i] = cp
			continue
		}
		recorded[i] = arg
	}
	f.calls = append(f.calls, rpcCall{method: method, args: recorded})

	handler, ok := f.handlers[method]
	if !ok {
		return xmlrpc.FaultError{Code: 1, String: "unknown method: " + method}
	}
	value, err := handler(list)
	if err != nil {
		return err
	}
	if value != nil {
		reflect.ValueOf(reply).Elem().Set(reflect.ValueOf(value))
	}
	return nil
}

// callsTo returns the recorded invocations of one method.
func (f *fakeCaller) callsTo(method string) []rpcCall {
	var out []rpcCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestClient(t *testing.T, fake *fakeCaller, opts ...Option) *Client {
	t.Helper()
	opts = append(opts, WithCaller(fake))
	c, err := New("http://patchwork.example.com/xmlrpc/", api.Credentials{}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsToken(t *testing.T) {
	_, err := New("http://patchwork.example.com/xmlrpc/", api.Credentials{Token: "abc"})
	if !api.IsConfigError(err) {
		t.Errorf("want ConfigError, got %v", err)
	}
}

func TestNewRejectsLoneUsername(t *testing.T) {
	_, err := New("http://patchwork.example.com/xmlrpc/", api.Credentials{Username: "jdoe"})
	if !api.IsConfigError(err) {
		t.Errorf("want ConfigError, got %v", err)
	}
}

func TestCallTranslatesFaults(t *testing.T) {
	fake := newFakeCaller()
	fake.on("patch_get", func([]any) (any, error) {
		return nil, xmlrpc.FaultError{Code: 1, String: "something broke"}
	})
	c := newTestClient(t, fake)

	_, err := c.PatchGet(context.Background(), 1)
	if !api.IsAPIError(err) {
		t.Fatalf("want APIError, got %v", err)
	}

	var fault xmlrpc.FaultError
	if !errors.As(err, &fault) || fault.String != "something broke" {
		t.Errorf("fault not preserved in %v", err)
	}
}

func TestCallHonorsCanceledContext(t *testing.T) {
	fake := newFakeCaller()
	c := newTestClient(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.PatchGet(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("call went out despite canceled context")
	}
}

func TestIsUnknownMethodFault(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{xmlrpc.FaultError{String: "unknown method patch_get_by_project_hash"}, true},
		{xmlrpc.FaultError{String: "Unsupported method"}, true},
		{xmlrpc.FaultError{String: "method not supported here"}, true},
		{xmlrpc.FaultError{String: "permission denied"}, false},
		{errors.New("plain error"), false},
	}
	for _, tc := range tests {
		wrapped := &api.APIError{Operation: "test", Err: tc.err}
		if got := isUnknownMethodFault(wrapped); got != tc.want {
			t.Errorf("isUnknownMethodFault(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestNonNumericIDIsFatal(t *testing.T) {
	fake := newFakeCaller()
	fake.returns("patch_get", xmlPatch{ID: "not-a-number", Name: "p"})
	c := newTestClient(t, fake)

	_, err := c.PatchGet(context.Background(), 7)
	if !api.IsAPIError(err) {
		t.Errorf("want APIError for non-numeric ID, got %v", err)
	}
}

func TestPatchGetEmptyRecordIsNil(t *testing.T) {
	fake := newFakeCaller()
	fake.returns("patch_get", xmlPatch{})
	c := newTestClient(t, fake)

	p, err := c.PatchGet(context.Background(), 999)
	if err != nil {
		t.Fatalf("PatchGet: %v", err)
	}
	if p != nil {
		t.Errorf("want nil patch, got %+v", p)
	}
}
