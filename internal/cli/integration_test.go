package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parsec/internal/cli"
	"github.com/yaklabco/parsec/internal/configloader"
)

const listGrammar = `
List   = "[" [ number { "," number } ] "]" .
number = digit { digit } .
digit  = "0" … "9" .
`

type result struct {
	stdout string
	stderr string
	err    error
}

func (r result) code() int {
	return cli.ExitCode(r.err)
}

// execute runs the root command with stdin as standard input.
func execute(t *testing.T, stdin io.Reader, args ...string) result {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIntegration_ParseBuiltinGrammars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		grammar string
		input   string
		want    string
	}{
		{name: "arith", grammar: "arith", input: "2 * (3 + 4) - 1", want: "13\n"},
		{name: "intlist", grammar: "intlist", input: "[1, -2, 3]", want: "[1 -2 3]\n"},
		{name: "identifier", grammar: "identifier", input: "_tmp42", want: "_tmp42\n"},
		{name: "keyvalue", grammar: "keyvalue", input: "name = parsec\n# comment\nlevel = 3\n", want: "name = parsec\nlevel = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, strings.NewReader(tt.input), "parse", "--grammar", tt.grammar)

			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
			assert.Equal(t, cli.ExitSuccess, res.code())
		})
	}
}

func TestIntegration_ParseFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "expr.txt", "10 / (4 - 2)")

	res := execute(t, nil, "parse", "-g", "arith", path)

	require.NoError(t, res.err)
	assert.Equal(t, "5\n", res.stdout)
}

func TestIntegration_SyntaxErrorShowsCaret(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("[1,]"), "parse", "-g", "intlist")

	require.Error(t, res.err)
	require.ErrorIs(t, res.err, cli.ErrParseFailed)
	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "<stdin>:1:4  syntax error  expected integer, found ']'")
	assert.Contains(t, res.stderr, "        [1,]\n           ^\n")
}

func TestIntegration_WeakFailure(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("x"), "parse", "-g", "integer")

	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Contains(t, res.stderr, "<stdin>:1:1  no match")
}

func TestIntegration_TabWidth(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("\t[1,]"), "parse", "-g", "intlist", "--tab-width", "4")

	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Contains(t, res.stderr, "<stdin>:1:8")
	assert.Contains(t, res.stderr, "            [1,]\n               ^\n")
}

func TestIntegration_RequireEOF(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("1 + 1 junk"), "parse", "-g", "arith")
	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Contains(t, res.stderr, "end of input")

	res = execute(t, strings.NewReader("1 + 1 junk"), "parse", "-g", "arith", "--require-eof=false")
	require.NoError(t, res.err)
	assert.Equal(t, "2\n", res.stdout)
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("a = 1\nb = two\n"), "parse", "-g", "keyvalue", "--format", "json")
	require.NoError(t, res.err)

	var report struct {
		Grammar string `json:"grammar"`
		OK      bool   `json:"ok"`
		Value   []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
			Line  int    `json:"line"`
		} `json:"value"`
		End struct {
			Line int `json:"line"`
		} `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))

	assert.Equal(t, "keyvalue", report.Grammar)
	assert.True(t, report.OK)
	require.Len(t, report.Value, 2)
	assert.Equal(t, "b", report.Value[1].Key)
	assert.Equal(t, "two", report.Value[1].Value)
	assert.Equal(t, 2, report.Value[1].Line)
	assert.Equal(t, 3, report.End.Line)
}

func TestIntegration_JSONFailure(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("[1,]"), "parse", "-g", "intlist", "-f", "json")
	assert.Equal(t, cli.ExitParseFailure, res.code())

	var report struct {
		OK    bool `json:"ok"`
		Error struct {
			Kind     string   `json:"kind"`
			Expected []string `json:"expected"`
			Found    string   `json:"found"`
			Position struct {
				Offset int64 `json:"offset"`
				Line   int   `json:"line"`
				Column int   `json:"column"`
			} `json:"position"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))

	assert.False(t, report.OK)
	assert.Equal(t, "fatal", report.Error.Kind)
	assert.Equal(t, []string{"integer"}, report.Error.Expected)
	assert.Equal(t, "']'", report.Error.Found)
	assert.Equal(t, int64(3), report.Error.Position.Offset)
	assert.Equal(t, 4, report.Error.Position.Column)
}

func TestIntegration_EBNF(t *testing.T) {
	t.Parallel()

	grammar := writeFile(t, t.TempDir(), "list.ebnf", listGrammar)

	res := execute(t, strings.NewReader("[1,22]"), "parse", "--ebnf", grammar, "--start", "List")
	require.NoError(t, res.err)
	assert.Equal(t, "[1,22]\n", res.stdout)

	// The only root production is the default start.
	res = execute(t, strings.NewReader(" [ 1 , 22 ] "), "parse", "--ebnf", grammar, "--skip-blanks")
	require.NoError(t, res.err)
	assert.Equal(t, "[1,22]\n", res.stdout)

	res = execute(t, strings.NewReader("[1,]"), "parse", "--ebnf", grammar)
	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Contains(t, res.stderr, "syntax error")
}

func TestIntegration_EBNFStartRequired(t *testing.T) {
	t.Parallel()

	grammar := writeFile(t, t.TempDir(), "split.ebnf", `A = "a" . B = "b" .`)

	res := execute(t, strings.NewReader("a"), "parse", "--ebnf", grammar)

	require.ErrorIs(t, res.err, cli.ErrStartRequired)
	assert.Equal(t, cli.ExitConfigError, res.code())
}

func TestIntegration_StreamFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	grammar := writeFile(t, dir, "ab.ebnf", `S = "ab" | "ac" .`)
	input := writeFile(t, dir, "in.txt", "ac")

	res := execute(t, nil, "parse", "--ebnf", grammar, "--stream", input)

	require.NoError(t, res.err)
	assert.Equal(t, "ac\n", res.stdout)
}

func TestIntegration_StreamCannotRewindStdin(t *testing.T) {
	t.Parallel()

	grammar := writeFile(t, t.TempDir(), "ab.ebnf", `S = "ab" | "ac" .`)
	stdin := struct{ io.Reader }{strings.NewReader("ac")}

	res := execute(t, stdin, "parse", "--ebnf", grammar, "--stream")

	assert.Equal(t, cli.ExitParseFailure, res.code())
	assert.Contains(t, res.stderr, "input cannot be rewound")

	// Buffered stdin can rewind.
	res = execute(t, struct{ io.Reader }{strings.NewReader("ac")}, "parse", "--ebnf", grammar)
	require.NoError(t, res.err)
	assert.Equal(t, "ac\n", res.stdout)
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	res := execute(t, strings.NewReader("1 + 2"), "parse", "--stats")

	require.NoError(t, res.err)
	assert.Equal(t, "3\n", res.stdout)
	assert.Contains(t, res.stderr, "parsed 5 bytes of <stdin> with arith (1 line)")
}

func TestIntegration_Trace(t *testing.T) {
	t.Parallel()

	grammar := writeFile(t, t.TempDir(), "list.ebnf", listGrammar)

	res := execute(t, strings.NewReader("[7]"), "parse", "--ebnf", grammar, "--trace")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "parser=number")
	assert.Contains(t, res.stderr, "match")
}

func TestIntegration_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown grammar", args: []string{"parse", "-g", "nope"}, want: cli.ExitConfigError},
		{name: "missing input", args: []string{"parse", "/nonexistent/input.txt"}, want: cli.ExitIOError},
		{name: "missing grammar file", args: []string{"parse", "--ebnf", "/nonexistent/g.ebnf"}, want: cli.ExitConfigError},
		{name: "too many arguments", args: []string{"parse", "a", "b"}, want: cli.ExitInvalidUsage},
		{name: "unknown flag", args: []string{"parse", "--bogus"}, want: cli.ExitInvalidUsage},
		{name: "invalid format", args: []string{"parse", "--format", "xml"}, want: cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, strings.NewReader("1"), tt.args...)

			require.Error(t, res.err)
			assert.Equal(t, tt.want, res.code())
		})
	}
}

func TestIntegration_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlConfig := writeFile(t, dir, "parsec.yml", "grammar: intlist\n")
	res := execute(t, strings.NewReader("[4]"), "--config", yamlConfig, "parse")
	require.NoError(t, res.err)
	assert.Equal(t, "[4]\n", res.stdout)

	// Grammar paths resolve against the config file's directory.
	writeFile(t, dir, "list.ebnf", listGrammar)
	tomlConfig := writeFile(t, dir, "parsec.toml", "[ebnf]\npath = \"list.ebnf\"\nstart = \"List\"\n")
	res = execute(t, strings.NewReader("[5]"), "--config", tomlConfig, "parse")
	require.NoError(t, res.err)
	assert.Equal(t, "[5]\n", res.stdout)

	// Flags win over the config file.
	res = execute(t, strings.NewReader("6"), "--config", yamlConfig, "parse", "-g", "integer")
	require.NoError(t, res.err)
	assert.Equal(t, "6\n", res.stdout)
}

func TestIntegration_EnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "parsec.yml", "grammar: intlist\n")
	t.Setenv("PARSEC_GRAMMAR", "integer")

	res := execute(t, strings.NewReader("42"), "--config", config, "parse")

	require.NoError(t, res.err)
	assert.Equal(t, "42\n", res.stdout)
}

func TestIntegration_Check(t *testing.T) {
	t.Parallel()

	grammar := writeFile(t, t.TempDir(), "list.ebnf", listGrammar)

	res := execute(t, nil, "check", grammar)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "PRODUCTION")
	assert.Contains(t, res.stdout, "lexical")
	assert.Contains(t, res.stdout, "3 productions, start List")

	res = execute(t, nil, "check", "--format", "json", grammar)
	require.NoError(t, res.err)

	var report struct {
		Start       string `json:"start"`
		Productions []struct {
			Name    string `json:"name"`
			Lexical bool   `json:"lexical"`
			Start   bool   `json:"start"`
		} `json:"productions"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, "List", report.Start)
	require.Len(t, report.Productions, 3)
	assert.True(t, report.Productions[0].Start)
	assert.True(t, report.Productions[1].Lexical)
}

func TestIntegration_CheckErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	undefined := writeFile(t, dir, "undefined.ebnf", `A = B .`)
	res := execute(t, nil, "check", undefined)
	assert.Equal(t, cli.ExitConfigError, res.code())

	res = execute(t, nil, "check", filepath.Join(dir, "missing.ebnf"))
	assert.Equal(t, cli.ExitIOError, res.code())

	res = execute(t, nil, "check")
	assert.Equal(t, cli.ExitInvalidUsage, res.code())
}

func TestIntegration_Grammars(t *testing.T) {
	t.Parallel()

	res := execute(t, nil, "grammars")
	require.NoError(t, res.err)
	for _, name := range []string{"arith", "identifier", "integer", "intlist", "keyvalue"} {
		assert.Contains(t, res.stdout, name)
	}

	res = execute(t, nil, "grammars", "--format", "json")
	require.NoError(t, res.err)

	var infos []struct {
		Name    string `json:"name"`
		Example string `json:"example"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, "arith", infos[0].Name)
}

func TestIntegration_Env(t *testing.T) {
	t.Parallel()

	res := execute(t, nil, "env")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "PARSEC_GRAMMAR")
	assert.Contains(t, res.stdout, "PARSEC_EBNF_SKIP_BLANKS")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".parsec.yml")

	res := execute(t, nil, "init", "--output", path)
	require.NoError(t, res.err)

	cfg, err := configloader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "arith", cfg.Grammar)

	res = execute(t, nil, "init", "--output", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = execute(t, nil, "init", "--output", path, "--force")
	require.NoError(t, res.err)

	tomlPath := filepath.Join(dir, "parsec.toml")
	res = execute(t, nil, "init", "--output", tomlPath)
	require.NoError(t, res.err)

	cfg, err = configloader.LoadFile(context.Background(), tomlPath)
	require.NoError(t, err)
	assert.True(t, *cfg.RequireEOF)

	res = execute(t, nil, "init", "--output", filepath.Join(dir, "parsec.json"))
	require.Error(t, res.err)
}
