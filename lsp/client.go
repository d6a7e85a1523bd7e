package lsp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zylacode/editorcore/coreerr"
)

// DefaultRequestTimeout is the per-request timeout (10 s) applied when
// the caller does not supply its own context deadline.
const DefaultRequestTimeout = 10 * time.Second

// Client is the normalized LSP surface, keyed by (file_path, line,
// character) in LSP zero-based coordinates over the process-wide Pool.
// Every method lazily starts the language's server on first use.
type Client struct {
	pool *Pool
}

// NewClient returns a Client dispatching through pool.
func NewClient(pool *Pool) *Client {
	return &Client{pool: pool}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, DefaultRequestTimeout)
}

func uri(path string) string {
	return "file://" + path
}

func posParams(path string, line, character int) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri(path)},
		Position:     Position{Line: line, Character: character},
	}
}

// GotoDefinition returns the first Location from either a single-Location
// or array-of-Location response; ok is false when the server returned
// nothing.
func (c *Client) GotoDefinition(ctx context.Context, language, path string, line, character int) (Location, bool, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return Location{}, false, err
	}
	if !e.capabilities.has(capDefinition) {
		return Location{}, false, coreerr.New(coreerr.UnsupportedCapability, "lsp: goto_definition not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var raw json.RawMessage
	if err := e.transport.call(ctx, "textDocument/definition", posParams(path, line, character), &raw); err != nil {
		return Location{}, false, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return Location{}, false, nil
	}

	var single Location
	if json.Unmarshal(raw, &single) == nil && single.URI != "" {
		return single, true, nil
	}
	var list []Location
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return list[0], true, nil
	}
	return Location{}, false, nil
}

// FindReferences returns every reference location, optionally including
// the declaration itself.
func (c *Client) FindReferences(ctx context.Context, language, path string, line, character int, includeDeclaration bool) ([]Location, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capReferences) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: find_references not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := struct {
		textDocumentPositionParams
		Context struct {
			IncludeDeclaration bool `json:"includeDeclaration"`
		} `json:"context"`
	}{textDocumentPositionParams: posParams(path, line, character)}
	params.Context.IncludeDeclaration = includeDeclaration

	var locs []Location
	if err := e.transport.call(ctx, "textDocument/references", params, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// Hover flattens whatever content shape the server used (scalar string,
// array of strings, or MarkupContent) into plain text.
func (c *Client) Hover(ctx context.Context, language, path string, line, character int) (string, bool, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return "", false, err
	}
	if !e.capabilities.has(capHover) {
		return "", false, coreerr.New(coreerr.UnsupportedCapability, "lsp: hover not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var raw struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := e.transport.call(ctx, "textDocument/hover", posParams(path, line, character), &raw); err != nil {
		return "", false, err
	}
	text := flattenHoverContents(raw.Contents)
	return text, text != "", nil
}

func flattenHoverContents(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var scalar string
	if json.Unmarshal(raw, &scalar) == nil {
		return scalar
	}
	var markup struct {
		Value string `json:"value"`
	}
	if json.Unmarshal(raw, &markup) == nil && markup.Value != "" {
		return markup.Value
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		var out string
		for i, item := range list {
			if i > 0 {
				out += "\n"
			}
			out += flattenHoverContents(item)
		}
		return out
	}
	return ""
}

// Rename requests a WorkspaceEdit renaming the symbol at the position to
// newName.
func (c *Client) Rename(ctx context.Context, language, path string, line, character int, newName string) (*WorkspaceEdit, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capRename) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: rename not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := struct {
		textDocumentPositionParams
		NewName string `json:"newName"`
	}{textDocumentPositionParams: posParams(path, line, character), NewName: newName}

	var edit WorkspaceEdit
	if err := e.transport.call(ctx, "textDocument/rename", params, &edit); err != nil {
		return nil, err
	}
	return &edit, nil
}

// CodeActions requests code actions for range with the given context
// diagnostics.
func (c *Client) CodeActions(ctx context.Context, language, path string, r Range, diagnostics []Diagnostic) ([]CodeAction, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capCodeAction) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: code_actions not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{
		"textDocument": textDocumentIdentifier{URI: uri(path)},
		"range":        r,
		"context":      map[string]interface{}{"diagnostics": diagnostics},
	}
	var actions []CodeAction
	if err := e.transport.call(ctx, "textDocument/codeAction", params, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// Completion flattens either a CompletionList or a raw CompletionItem
// array into a single slice.
func (c *Client) Completion(ctx context.Context, language, path string, line, character int) ([]CompletionItem, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capCompletion) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: completion not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var raw json.RawMessage
	if err := e.transport.call(ctx, "textDocument/completion", posParams(path, line, character), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list completionList
	if json.Unmarshal(raw, &list) == nil && len(list.Items) > 0 {
		return list.Items, nil
	}
	var items []CompletionItem
	json.Unmarshal(raw, &items)
	return items, nil
}

// SignatureHelp requests signature help at the position.
func (c *Client) SignatureHelp(ctx context.Context, language, path string, line, character int) (*SignatureHelp, bool, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, false, err
	}
	if !e.capabilities.has(capSignatureHelp) {
		return nil, false, coreerr.New(coreerr.UnsupportedCapability, "lsp: signature_help not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var help SignatureHelp
	if err := e.transport.call(ctx, "textDocument/signatureHelp", posParams(path, line, character), &help); err != nil {
		return nil, false, err
	}
	return &help, len(help.Signatures) > 0, nil
}

// InlayHints requests inlay hints for range.
func (c *Client) InlayHints(ctx context.Context, language, path string, r Range) ([]InlayHint, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capInlayHint) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: inlay_hints not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{
		"textDocument": textDocumentIdentifier{URI: uri(path)},
		"range":        r,
	}
	var hints []InlayHint
	if err := e.transport.call(ctx, "textDocument/inlayHint", params, &hints); err != nil {
		return nil, err
	}
	return hints, nil
}

// CodeLens requests code lenses for the whole document.
func (c *Client) CodeLens(ctx context.Context, language, path string) ([]CodeLens, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capCodeLens) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: code_lens not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{"textDocument": textDocumentIdentifier{URI: uri(path)}}
	var lenses []CodeLens
	if err := e.transport.call(ctx, "textDocument/codeLens", params, &lenses); err != nil {
		return nil, err
	}
	return lenses, nil
}

// DocumentSymbols requests the document's symbols, converting a legacy
// flat SymbolInformation response into the nested DocumentSymbol shape
// using each entry's location range for both Range and SelectionRange.
func (c *Client) DocumentSymbols(ctx context.Context, language, path string) ([]DocumentSymbol, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capDocumentSymbol) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: document_symbols not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{"textDocument": textDocumentIdentifier{URI: uri(path)}}
	var raw json.RawMessage
	if err := e.transport.call(ctx, "textDocument/documentSymbol", params, &raw); err != nil {
		return nil, err
	}
	return normalizeDocumentSymbols(raw), nil
}

// rawSymbol covers both DocumentSymbol and the legacy SymbolInformation
// wire shapes at once; Location is only present on the legacy one, and is
// what distinguishes them (a field-presence check, not just which decode
// happens not to error, since JSON unmarshal ignores unknown keys and
// zero-fills missing ones).
type rawSymbol struct {
	Name           string           `json:"name"`
	Kind           int              `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
	Location       *Location        `json:"location,omitempty"`
}

func normalizeDocumentSymbols(raw json.RawMessage) []DocumentSymbol {
	var items []rawSymbol
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]DocumentSymbol, 0, len(items))
	for _, s := range items {
		if s.Location != nil {
			out = append(out, DocumentSymbol{
				Name:           s.Name,
				Kind:           s.Kind,
				Range:          s.Location.Range,
				SelectionRange: s.Location.Range,
			})
			continue
		}
		out = append(out, DocumentSymbol{
			Name:           s.Name,
			Kind:           s.Kind,
			Range:          s.Range,
			SelectionRange: s.SelectionRange,
			Children:       s.Children,
		})
	}
	return out
}

// SemanticTokens requests the whole document's semantic token data.
func (c *Client) SemanticTokens(ctx context.Context, language, path string) (*SemanticTokens, bool, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, false, err
	}
	if !e.capabilities.has(capSemanticTokens) {
		return nil, false, coreerr.New(coreerr.UnsupportedCapability, "lsp: semantic_tokens not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{"textDocument": textDocumentIdentifier{URI: uri(path)}}
	var toks SemanticTokens
	if err := e.transport.call(ctx, "textDocument/semanticTokens/full", params, &toks); err != nil {
		return nil, false, err
	}
	return &toks, len(toks.Data) > 0, nil
}

// RangeFormat requests formatting edits for range, using the fixed
// formatting options (4-space soft tabs, trim trailing whitespace, insert
// final newline — never configurable from this surface).
func (c *Client) RangeFormat(ctx context.Context, language, path string, r Range) ([]TextEdit, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capRangeFormat) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: range_format not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{
		"textDocument": textDocumentIdentifier{URI: uri(path)},
		"range":        r,
		"options":      fixedFormattingOptions(),
	}
	var edits []TextEdit
	if err := e.transport.call(ctx, "textDocument/rangeFormatting", params, &edits); err != nil {
		return nil, err
	}
	return edits, nil
}

// DocumentLinks requests the document's links.
func (c *Client) DocumentLinks(ctx context.Context, language, path string) ([]DocumentLink, error) {
	e, err := c.pool.ensure(ctx, language)
	if err != nil {
		return nil, err
	}
	if !e.capabilities.has(capDocumentLink) {
		return nil, coreerr.New(coreerr.UnsupportedCapability, "lsp: document_links not supported by "+language)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := map[string]interface{}{"textDocument": textDocumentIdentifier{URI: uri(path)}}
	var links []DocumentLink
	if err := e.transport.call(ctx, "textDocument/documentLink", params, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// WorkspaceSymbols fans the query out to every currently-running server
// and concatenates their results.
func (c *Client) WorkspaceSymbols(ctx context.Context, query string) ([]SymbolInformation, error) {
	var all []SymbolInformation
	for _, lang := range c.pool.Languages() {
		e, err := c.pool.ensure(ctx, lang)
		if err != nil {
			continue
		}
		if !e.capabilities.has(capWorkspaceSym) {
			continue
		}
		reqCtx, cancel := c.withTimeout(ctx)
		var syms []SymbolInformation
		err = e.transport.call(reqCtx, "workspace/symbol", map[string]interface{}{"query": query}, &syms)
		cancel()
		if err != nil {
			continue
		}
		all = append(all, syms...)
	}
	return all, nil
}
