package lsp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/zylacode/editorcore/coreerr"
)

// ServerState is a server's lifecycle stage.
type ServerState int

const (
	Starting ServerState = iota
	Initialized
	Dead
)

// reservedInitializeID is the id reserved for the initial initialize
// request; every subsequent request on that server uses an id above it.
const reservedInitializeID = 1

// requestIDAllocator hands out per-server monotonic request ids above the
// reserved initialize id. Kept as a small standalone counter (rather than
// reading jrpc2's internal wire id) so the monotonicity invariant
// so request-id monotonicity is directly testable without a live transport.
type requestIDAllocator struct {
	mu      sync.Mutex
	counter uint64
}

func newRequestIDAllocator() *requestIDAllocator {
	return &requestIDAllocator{counter: reservedInitializeID + 1}
}

func (a *requestIDAllocator) next() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.counter
	a.counter++
	return id
}

// serverEntry is one running (or starting, or dead) LSP server for a
// language.
type serverEntry struct {
	language     string
	transport    *transport
	state        ServerState
	ids          *requestIDAllocator
	capabilities capabilitySet
}

// Pool is the process-wide, lazily-started set of LSP servers, one per
// language. It is the single process-wide singleton: server lookup, spawn
// and the initialize handshake are serialized by its lock; requests are
// then issued on the server's own jrpc2 client after the lock is released.
type Pool struct {
	mu          sync.Mutex
	servers     map[string]*serverEntry
	workspaceFS string
	diagnostics *DiagnosticsStore
}

// NewPool returns an empty Pool rooted at workspaceFolder (passed to each
// server's initialize request).
func NewPool(workspaceFolder string) *Pool {
	return &Pool{
		servers:     make(map[string]*serverEntry),
		workspaceFS: workspaceFolder,
		diagnostics: NewDiagnosticsStore(),
	}
}

// Diagnostics returns the pool's shared DiagnosticsStore, fed by every
// server's publishDiagnostics notifications.
func (p *Pool) Diagnostics() *DiagnosticsStore {
	return p.diagnostics
}

// ensure returns the running server for language, lazily spawning and
// initializing it if this is the first request. A server previously
// marked Dead is restarted.
func (p *Pool) ensure(ctx context.Context, language string) (*serverEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.servers[language]; ok && e.state != Dead {
		return e, nil
	}

	argv, ok := commandFor(language)
	if !ok {
		return nil, coreerr.New(coreerr.UnsupportedLanguage, "lsp: no server registered for "+language)
	}

	t, err := spawn(argv, func(method string, params json.RawMessage) {
		if method != "textDocument/publishDiagnostics" {
			return
		}
		var body struct {
			URI         string       `json:"uri"`
			Diagnostics []Diagnostic `json:"diagnostics"`
		}
		if json.Unmarshal(params, &body) == nil {
			p.diagnostics.Publish(body.URI, body.Diagnostics)
		}
	})
	if err != nil {
		return nil, err
	}

	e := &serverEntry{
		language:  language,
		transport: t,
		state:     Starting,
		ids:       newRequestIDAllocator(),
	}
	p.servers[language] = e

	var result struct {
		Capabilities map[string]json.RawMessage `json:"capabilities"`
	}
	params := map[string]interface{}{
		"processId":    nil,
		"rootUri":      "file://" + p.workspaceFS,
		"capabilities": map[string]interface{}{},
	}
	if err := t.call(ctx, "initialize", params, &result); err != nil {
		e.state = Dead
		return nil, err
	}
	t.notify(ctx, "initialized", map[string]interface{}{})
	e.capabilities = newCapabilitySet(result.Capabilities)
	e.state = Initialized

	return e, nil
}

// Shutdown sends a best-effort shutdown request to every running server
// and terminates its process.
func (p *Pool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	servers := make([]*serverEntry, 0, len(p.servers))
	for _, e := range p.servers {
		servers = append(servers, e)
	}
	p.servers = make(map[string]*serverEntry)
	p.mu.Unlock()

	for _, e := range servers {
		if e.state == Dead {
			continue
		}
		e.transport.call(ctx, "shutdown", nil, nil)
		e.transport.notify(ctx, "exit", nil)
		e.transport.close()
	}
}

// State reports the lifecycle state of language's server, or Dead if
// none has ever been started.
func (p *Pool) State(language string) ServerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.servers[language]
	if !ok {
		return Dead
	}
	return e.state
}

// Languages returns the languages with a currently-running server, for
// workspace-symbol fan-out.
func (p *Pool) Languages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for lang, e := range p.servers {
		if e.state == Initialized {
			out = append(out, lang)
		}
	}
	return out
}
