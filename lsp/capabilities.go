package lsp

import "encoding/json"

// capabilitySet records which optional server capabilities an
// initialize response advertised, so the normalized surface can gate
// calls instead of dispatching a request a server is known not to
// support and waiting out its timeout for nothing. Grounded on the
// original editor's capability-gating of renameProvider/codeActionProvider
// etc. before issuing the corresponding request.
type capabilitySet map[string]bool

func newCapabilitySet(raw map[string]json.RawMessage) capabilitySet {
	cs := make(capabilitySet, len(raw))
	for name, v := range raw {
		// A capability value of `false` explicitly disables it; anything
		// else (true, an options object) enables it.
		if string(v) == "false" {
			cs[name] = false
			continue
		}
		cs[name] = true
	}
	return cs
}

func (cs capabilitySet) has(name string) bool {
	return cs[name]
}

// Capability keys this package checks before dispatching, named per the
// LSP initialize result's ServerCapabilities fields.
const (
	capDefinition     = "definitionProvider"
	capReferences     = "referencesProvider"
	capHover          = "hoverProvider"
	capRename         = "renameProvider"
	capCodeAction     = "codeActionProvider"
	capCompletion     = "completionProvider"
	capSignatureHelp  = "signatureHelpProvider"
	capInlayHint      = "inlayHintProvider"
	capCodeLens       = "codeLensProvider"
	capDocumentSymbol = "documentSymbolProvider"
	capSemanticTokens = "semanticTokensProvider"
	capRangeFormat    = "documentRangeFormattingProvider"
	capDocumentLink   = "documentLinkProvider"
	capWorkspaceSym   = "workspaceSymbolProvider"
)
