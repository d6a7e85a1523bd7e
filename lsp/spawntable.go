package lsp

// spawnTable is the fixed language→command table. Each
// entry is the exact argv (binary plus flags) the operator is expected to
// have on PATH.
var spawnTable = map[string][]string{
	"rust": {"rust-analyzer"},

	"c":   {"clangd"},
	"cpp": {"clangd"},
	"c++": {"clangd"},
	"h":   {"clangd"},
	"hpp": {"clangd"},
	"hxx": {"clangd"},
	"cc":  {"clangd"},
	"cxx": {"clangd"},

	"go": {"gopls"},

	"typescript": {"typescript-language-server", "--stdio"},
	"tsx":        {"typescript-language-server", "--stdio"},
	"javascript": {"typescript-language-server", "--stdio"},
	"jsx":        {"typescript-language-server", "--stdio"},

	"python": {"pylsp"},
	"ruby":   {"solargraph", "stdio"},
	"php":    {"intelephense", "--stdio"},

	"vue":     {"vue-language-server", "--stdio"},
	"svelte":  {"svelteserver", "--stdio"},
	"astro":   {"astro-ls", "--stdio"},
	"java":    {"jdtls"},
	"kotlin":  {"kotlin-language-server"},
	"scala":   {"metals"},
	"csharp":  {"omnisharp", "--languageserver"},
	"haskell": {"haskell-language-server-wrapper", "--lsp"},
	"elixir":  {"elixir-ls"},
	"ocaml":   {"ocamllsp"},
	"lua":     {"lua-language-server"},
	"swift":   {"sourcekit-lsp"},
	"dart":    {"dart", "language-server"},
	"zig":     {"zls"},

	"shell": {"bash-language-server", "start"},
	"bash":  {"bash-language-server", "start"},
	"zsh":   {"bash-language-server", "start"},

	"html": {"vscode-html-language-server", "--stdio"},
	"css":  {"vscode-css-language-server", "--stdio"},
	"scss": {"vscode-css-language-server", "--stdio"},
	"less": {"vscode-css-language-server", "--stdio"},
	"sass": {"vscode-css-language-server", "--stdio"},
	"json": {"vscode-json-language-server", "--stdio"},
	"yaml": {"vscode-yaml-language-server", "--stdio"},

	"xml":      {"lemminx"},
	"toml":     {"taplo", "lsp", "stdio"},
	"markdown": {"marksman", "server"},
	"sql":      {"sql-language-server", "up", "--method", "stdio"},
}

// commandFor returns the argv for language, and whether one is
// registered.
func commandFor(language string) ([]string, bool) {
	argv, ok := spawnTable[language]
	if !ok {
		return nil, false
	}
	return append([]string(nil), argv...), true
}
