package cmd

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	ippclog "github.com/msto63/ippcode/foundation/core/log"
	"github.com/msto63/ippcode/internal/server"
	"github.com/msto63/ippcode/pkg/core/config"
	"github.com/msto63/ippcode/pkg/core/logging"
)

const program = `.IPPcode18
# Kommentar
DEFVAR GF@x # Variable
WRITE GF@x
`

// writeConfig creates a quiet config so that tests do not depend on
// files in the working directory
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ippc.toml")
	content := "[general]\nlog_level = \"error\"\n" + extra
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", writeConfig(t, "")}, args...)
	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParse_Stdin(t *testing.T) {
	code, stdout, stderr := execute(t, program, "parse")
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode18">
  <instruction order="1" opcode="DEFVAR">
    <arg1 type="var">GF@x</arg1>
  </instruction>
  <instruction order="2" opcode="WRITE">
    <arg1 type="var">GF@x</arg1>
  </instruction>
</program>
`
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestParse_Files(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.src")
	out := filepath.Join(dir, "prog.xml")
	if err := os.WriteFile(src, []byte(program), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := execute(t, "", "parse", "--src", src, "--out", out)
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `opcode="WRITE"`) {
		t.Errorf("output file = %s, want WRITE instruction", data)
	}
}

func TestParse_StatsOrder(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  string
	}{
		{"loc first", []string{"--loc", "--comments"}, "2\n2\n"},
		{"comments first", []string{"--comments", "--loc"}, "2\n2\n"},
		{"only comments", []string{"-c"}, "2\n"},
		{"only loc", []string{"-l"}, "2\n"},
		{"no metrics", nil, ""},
		{"repeated flag", []string{"-l", "-c", "-l"}, "2\n2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statsFile := filepath.Join(t.TempDir(), "stats.txt")
			args := append([]string{"parse", "--stats", statsFile}, tt.flags...)

			code, _, stderr := execute(t, program, args...)
			if code != ippcerr.ExitSuccess {
				t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
			}
			data, err := os.ReadFile(statsFile)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("stats = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestParse_StatsOrderDistinct(t *testing.T) {
	// 3 instruction lines, 1 comment
	src := ".IPPcode18\nCREATEFRAME\nPUSHFRAME # x\nPOPFRAME\n"

	tests := []struct {
		flags []string
		want  string
	}{
		{[]string{"--loc", "--comments"}, "3\n1\n"},
		{[]string{"--comments", "--loc"}, "1\n3\n"},
		{[]string{"-c", "-l"}, "1\n3\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.flags, " "), func(t *testing.T) {
			statsFile := filepath.Join(t.TempDir(), "stats.txt")
			args := append([]string{"parse", "--stats", statsFile}, tt.flags...)

			if code, _, stderr := execute(t, src, args...); code != ippcerr.ExitSuccess {
				t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
			}
			data, _ := os.ReadFile(statsFile)
			if string(data) != tt.want {
				t.Errorf("stats = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestParse_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.src")
	unwritable := filepath.Join(dir, "no", "such", "dir", "out.xml")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  int
	}{
		{"loc without stats", program, []string{"parse", "--loc"}, ippcerr.ExitParameter},
		{"comments without stats", program, []string{"parse", "-c"}, ippcerr.ExitParameter},
		{"unknown flag", program, []string{"parse", "--bogus"}, ippcerr.ExitParameter},
		{"unexpected argument", program, []string{"parse", "extra"}, ippcerr.ExitParameter},
		{"input missing", "", []string{"parse", "--src", missing}, ippcerr.ExitInputOpen},
		{"output unwritable", program, []string{"parse", "--out", unwritable}, ippcerr.ExitOutputOpen},
		{"missing header", "WRITE GF@x\n", []string{"parse"}, ippcerr.ExitSourceFormat},
		{"unknown opcode", ".IPPcode18\nJUMPY l\n", []string{"parse"}, ippcerr.ExitSourceFormat},
		{"bad argument", ".IPPcode18\nWRITE int@x\n", []string{"parse"}, ippcerr.ExitSourceFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := execute(t, tt.stdin, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %v, want %v", code, tt.want)
			}
		})
	}
}

func TestParse_SourceErrorWritesNothing(t *testing.T) {
	code, stdout, stderr := execute(t, "CREATEFRAME\n", "parse")
	if code != ippcerr.ExitSourceFormat {
		t.Fatalf("exit code = %v, want %v", code, ippcerr.ExitSourceFormat)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "line 1: expected header, got 'CREATEFRAME'") {
		t.Errorf("stderr = %q, want diagnostic", stderr)
	}
}

func TestTokens(t *testing.T) {
	code, stdout, stderr := execute(t, ".IPPcode18\nMOVE GF@x int@5\n", "tokens")
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}

	for _, want := range []string{
		"   1  HEADER  .IPPcode18",
		"   2  OPCODE  MOVE",
		"   2  var     GF@x [1]",
		"   2  int     5 [2]",
		"EOF",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tokens output missing %q:\n%s", want, stdout)
		}
	}
}

func TestTokens_Error(t *testing.T) {
	code, stdout, _ := execute(t, ".IPPcode18\nMOVE GF@x int@x\n", "tokens")
	if code != ippcerr.ExitSourceFormat {
		t.Errorf("exit code = %v, want %v", code, ippcerr.ExitSourceFormat)
	}
	if !strings.Contains(stdout, "OPCODE  MOVE") {
		t.Errorf("tokens output = %q, want tokens read before the error", stdout)
	}
}

func writeCase(t *testing.T, dir, name, src, rc string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".src"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if rc != "" {
		if err := os.WriteFile(filepath.Join(dir, name+".rc"), []byte(rc), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "ok", program, "0")
	writeCase(t, dir, "lexical", "WRITE\n", "21")
	writeCase(t, dir, "wrong", program, "21")
	writeCase(t, dir, "generated", program, "")

	db := filepath.Join(t.TempDir(), "history.db")
	code, stdout, stderr := execute(t, "", "test", "-d", dir, "--history", db)
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "3/4 Successful tests.") {
		t.Errorf("report = %q, want summary 3/4", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "generated.rc")); err != nil {
		t.Errorf("generated.rc not created: %v", err)
	}

	code, stdout, stderr = execute(t, "", "results", "--history", db, "--list")
	if code != ippcerr.ExitSuccess {
		t.Fatalf("results exit code = %v, want 0 (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "3/4") {
		t.Errorf("results --list = %q, want stored run 3/4", stdout)
	}
}

func TestTestCommand_MissingDirectory(t *testing.T) {
	code, _, _ := execute(t, "", "test", "-d", filepath.Join(t.TempDir(), "missing"))
	if code != ippcerr.ExitInputOpen {
		t.Errorf("exit code = %v, want %v", code, ippcerr.ExitInputOpen)
	}
}

func TestTestCommand_BadFormat(t *testing.T) {
	code, _, _ := execute(t, "", "test", "-d", t.TempDir(), "--format", "xml")
	if code != ippcerr.ExitParameter {
		t.Errorf("exit code = %v, want %v", code, ippcerr.ExitParameter)
	}
}

func TestResults_NoDatabase(t *testing.T) {
	code, _, _ := execute(t, "", "results", "--list")
	if code != ippcerr.ExitParameter {
		t.Errorf("exit code = %v, want %v", code, ippcerr.ExitParameter)
	}
}

func TestConfigErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "parse"},
		strings.NewReader(program), &stdout, &stderr)
	if code != ippcerr.ExitParameter {
		t.Errorf("exit code = %v, want %v", code, ippcerr.ExitParameter)
	}
	if !strings.HasPrefix(stderr.String(), "Fehler: ") {
		t.Errorf("stderr = %q, want Fehler prefix", stderr.String())
	}
}

func TestConfigOutputSettings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := writeConfig(t, "[output]\nindent = \"\\t\"\nlanguage = \"IPPcode18x\"\n")
	code := Run([]string{"--config", cfg, "parse"},
		strings.NewReader(".IPPcode18\nBREAK\n"), &stdout, &stderr)
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr.String())
	}
	want := "<program language=\"IPPcode18x\">\n\t<instruction order=\"1\" opcode=\"BREAK\"/>\n"
	if !strings.Contains(stdout.String(), want) {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "", "version")
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0", code)
	}
	if !strings.HasPrefix(stdout, "ippc ") {
		t.Errorf("version output = %q, want ippc prefix", stdout)
	}
}

func startServer(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	srv, err := server.New(server.Config{
		Server: config.Default().Server,
		Logger: logging.Wrap(ippclog.Discard(), "test"),
	})
	if err != nil {
		t.Fatalf("server.New() error = %v", err)
	}
	go srv.Serve(lis)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return lis.Addr().String()
}

func TestParse_Remote(t *testing.T) {
	addr := startServer(t)
	statsFile := filepath.Join(t.TempDir(), "stats.txt")

	code, stdout, stderr := execute(t, program, "parse", "--server", addr, "--stats", statsFile, "--comments", "--loc")
	if code != ippcerr.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, `<instruction order="2" opcode="WRITE">`) {
		t.Errorf("stdout = %q, want translated program", stdout)
	}
	data, _ := os.ReadFile(statsFile)
	if string(data) != "2\n2\n" {
		t.Errorf("stats = %q, want %q", data, "2\n2\n")
	}

	code, stdout, _ = execute(t, "MOVE\n", "parse", "--server", addr)
	if code != ippcerr.ExitSourceFormat {
		t.Errorf("remote rejection exit code = %v, want %v", code, ippcerr.ExitSourceFormat)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}
