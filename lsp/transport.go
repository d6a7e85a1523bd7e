package lsp

import (
	"context"
	"encoding/json"
	"os/exec"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/zylacode/editorcore/coreerr"
)

// transport owns one spawned LSP server process and the jrpc2 client
// framed over its stdio using the Content-Length wire format
// (channel.LSP implements exactly that framing on both read and write
// sides). Grounded on vito-dang/cmd/dang/main.go's
// jrpc2.NewServer+channel.LSP(reader, writer) pairing, mirrored here on
// the client side against a child process instead of os.Stdin/Stdout.
type transport struct {
	cmd    *exec.Cmd
	client *jrpc2.Client
}

// spawn starts argv[0] with argv[1:], wiring its stdout/stdin through a
// length-prefixed JSON-RPC channel. onNotify receives every server->client
// notification (diagnostics, show-message, etc.) by method name and raw
// params. Returns ServerSpawnFailed if the executable cannot be started.
func spawn(argv []string, onNotify func(method string, params json.RawMessage)) (*transport, error) {
	cmd := exec.Command(argv[0], argv[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, coreerr.Wrap(coreerr.ServerSpawnFailed, "lsp: stdin pipe", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, coreerr.Wrap(coreerr.ServerSpawnFailed, "lsp: stdout pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, coreerr.Wrap(coreerr.ServerSpawnFailed, "lsp: spawn "+argv[0], err)
	}

	ch := channel.LSP(stdout, stdin)
	client := jrpc2.NewClient(ch, &jrpc2.ClientOptions{
		OnNotify: func(req *jrpc2.Request) {
			if onNotify == nil {
				return
			}
			var params json.RawMessage
			req.UnmarshalParams(&params)
			onNotify(req.Method(), params)
		},
	})

	return &transport{cmd: cmd, client: client}, nil
}

// call issues a request and decodes its result into out, translating a
// jrpc2 protocol-level failure into ProtocolError.
func (t *transport) call(ctx context.Context, method string, params, out interface{}) error {
	rsp, err := t.client.Call(ctx, method, params)
	if err != nil {
		if ctx.Err() != nil {
			return coreerr.Wrap(coreerr.TimedOut, "lsp: "+method, err)
		}
		return coreerr.Wrap(coreerr.ProtocolError, "lsp: "+method, err)
	}
	if out == nil {
		return nil
	}
	if err := rsp.UnmarshalResult(out); err != nil {
		return coreerr.Wrap(coreerr.ProtocolError, "lsp: "+method+" result", err)
	}
	return nil
}

// notify issues a notification (no response expected).
func (t *transport) notify(ctx context.Context, method string, params interface{}) error {
	if err := t.client.Notify(ctx, method, params); err != nil {
		return coreerr.Wrap(coreerr.ProtocolError, "lsp: notify "+method, err)
	}
	return nil
}

// close shuts down the client and terminates the process.
func (t *transport) close() {
	t.client.Close()
	if t.cmd.Process != nil {
		t.cmd.Process.Kill()
	}
	t.cmd.Wait()
}
