package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"rsafront/internal/app"
	"rsafront/internal/errors"
)

// execute runs the root command with fresh flags in an empty working dir.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	flagEngine, flagConfig, flagDebug, flagQuiet = "", "", false, false
	encTimeout = 0
	cfg = nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err = run(context.Background(), args)
	return out.String(), errOut.String(), err
}

// workdir moves the test into an empty directory with no config files.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	return dir
}

// stubEngine writes a shell-script engine. Unix only.
func stubEngine(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script engines need a Unix shell")
	}
	path := filepath.Join(t.TempDir(), "rsa_encrypt")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

const goodEngine = `[ $# -eq 0 ] && { echo "usage: rsa_encrypt encrypt <in> <out> <key>"; exit 1; }
cp "$2" "$3"
printf 'n=3233\ne=17\n' > "$4"
echo "Encryption successful!"`

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestTerminal(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := newTerminal(&out, &errOut, false)
		p := term.Presenter()

		p.AppendLine("🔄 Starting encryption...")
		p.SetStatus("Encrypting file...", app.Info)
		p.SetEngine("/opt/rsa_encrypt", "Executable ready", app.Success)
		p.ShowInfo("Success", "File encrypted successfully!")
		p.ShowError("Encryption failed")

		if out.String() != "🔄 Starting encryption...\n" {
			t.Errorf("out = %q", out.String())
		}
		e := errOut.String()
		if strings.Contains(e, "\x1b[") {
			t.Errorf("colors used on a non-terminal: %q", e)
		}
		if strings.Contains(e, "Encrypting file...") {
			t.Error("status line drawn on a non-terminal")
		}
		for _, want := range []string{
			"Engine: /opt/rsa_encrypt [Executable ready]",
			"Success\nFile encrypted successfully!",
			"Error: Encryption failed",
		} {
			if !strings.Contains(e, want) {
				t.Errorf("errOut missing %q:\n%s", want, e)
			}
		}
	})

	t.Run("Quiet", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := newTerminal(&out, &errOut, true)

		term.Line("log")
		term.Info("Success", "done")
		term.Engine("/e", "Executable ready", app.Success)
		term.Error("boom")
		term.Label("Key file", "/k")

		if out.String() != "Key file: /k\n" {
			t.Errorf("out = %q", out.String())
		}
		if errOut.String() != "Error: boom\n" {
			t.Errorf("errOut = %q", errOut.String())
		}
	})

	t.Run("UnknownEngineSkipped", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := newTerminal(&out, &errOut, false)
		term.Engine("/e", "Checking executable...", app.Info)
		if errOut.Len() != 0 {
			t.Errorf("errOut = %q", errOut.String())
		}
	})
}

func TestExecuteGate(t *testing.T) {
	// Save original args
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	for _, args := range [][]string{
		{"rsafront"},
		{"rsafront", "-psn_0_12345"},
		{"rsafront", "report.pdf"},
	} {
		os.Args = args
		if Execute("test") {
			t.Errorf("Execute(%q) = true; want GUI", args)
		}
	}

	for _, name := range []string{"encrypt", "probe", "locate", "paths", "help", "--version"} {
		if !subcommands[name] {
			t.Errorf("%q is not routed to the CLI", name)
		}
	}
}

func TestPathsCommand(t *testing.T) {
	dir := workdir(t)
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "notes_keys.key"))

	out, _, err := execute(t, "paths", "notes.txt")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if !strings.Contains(out, "Encrypted file: "+filepath.Join(dir, "notes_encrypted_1.enc")) {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(out, "Key file: "+filepath.Join(dir, "notes_keys_1.key")) {
		t.Errorf("out = %q", out)
	}
}

func TestLocateCommand(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		workdir(t)

		out, errOut, err := execute(t, "locate")
		if !errors.Is(err, errors.ErrEngineNotFound) {
			t.Errorf("err = %v; want ErrEngineNotFound", err)
		}
		if !strings.HasPrefix(out, "rsa_encrypt") {
			t.Errorf("out = %q; want the default name", out)
		}
		if !strings.Contains(errOut, "Error:") {
			t.Errorf("errOut = %q", errOut)
		}
	})

	t.Run("Found", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("bare engine names are not searched on windows")
		}
		dir := workdir(t)
		touch(t, filepath.Join(dir, "build", "rsa_encrypt"))

		out, _, err := execute(t, "locate")
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if strings.TrimSpace(out) != filepath.Join(dir, "build", "rsa_encrypt") {
			t.Errorf("out = %q", out)
		}
	})

	t.Run("ConfigCandidates", func(t *testing.T) {
		dir := workdir(t)
		touch(t, filepath.Join(dir, "tools", "engine.bin"))
		if err := os.WriteFile(filepath.Join(dir, "rsafront.yaml"),
			[]byte("engine:\n  candidates:\n    - tools/engine.bin\n"), 0644); err != nil {
			t.Fatal(err)
		}

		out, _, err := execute(t, "locate")
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if strings.TrimSpace(out) != filepath.Join(dir, "tools", "engine.bin") {
			t.Errorf("out = %q", out)
		}
	})
}

func TestProbeCommand(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		workdir(t)
		engine := stubEngine(t, goodEngine)

		out, _, err := execute(t, "probe", "--engine", engine)
		if err != nil {
			t.Fatalf("probe: %v", err)
		}
		for _, want := range []string{"Engine: " + engine, "Status: Executable ready", "Format: script"} {
			if !strings.Contains(out, want) {
				t.Errorf("out missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("Missing", func(t *testing.T) {
		dir := workdir(t)

		out, errOut, err := execute(t, "probe", "-e", filepath.Join(dir, "nope"))
		if !errors.Is(err, errors.ErrEngineNotFound) {
			t.Errorf("err = %v; want ErrEngineNotFound", err)
		}
		if !strings.Contains(out, "Status: Executable not found") {
			t.Errorf("out = %q", out)
		}
		if !strings.Contains(errOut, "not found") {
			t.Errorf("errOut = %q", errOut)
		}
	})

	t.Run("Broken", func(t *testing.T) {
		workdir(t)
		engine := stubEngine(t, "exit 3")

		_, _, err := execute(t, "probe", "--engine", engine)
		if !errors.Is(err, errors.ErrEngineFailed) {
			t.Errorf("err = %v; want ErrEngineFailed", err)
		}
	})
}

func TestEncryptCommand(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		dir := workdir(t)
		engine := stubEngine(t, goodEngine)
		touch(t, filepath.Join(dir, "letter.txt"))

		out, errOut, err := execute(t, "encrypt", "--engine", engine, "letter.txt")
		if err != nil {
			t.Fatalf("encrypt: %v\n%s", err, errOut)
		}
		for _, want := range []string{"Selected file: letter.txt", "SUCCESS!", "n=3233", "Keep the key file safe"} {
			if !strings.Contains(out, want) {
				t.Errorf("out missing %q:\n%s", want, out)
			}
		}
		if !strings.Contains(errOut, "File encrypted successfully!") {
			t.Errorf("errOut = %q", errOut)
		}
		data, err := os.ReadFile(filepath.Join(dir, "letter_encrypted.enc"))
		if err != nil || string(data) != "hello" {
			t.Errorf("encrypted file = %q, %v", data, err)
		}
	})

	t.Run("Quiet", func(t *testing.T) {
		dir := workdir(t)
		engine := stubEngine(t, goodEngine)
		touch(t, filepath.Join(dir, "letter.txt"))

		out, errOut, err := execute(t, "encrypt", "-q", "-e", engine, "letter.txt")
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		want := "Encrypted file: " + filepath.Join(dir, "letter_encrypted.enc") + "\n" +
			"Key file: " + filepath.Join(dir, "letter_keys.key") + "\n"
		if out != want {
			t.Errorf("out = %q; want %q", out, want)
		}
		if errOut != "" {
			t.Errorf("errOut = %q", errOut)
		}
	})

	t.Run("EngineFailure", func(t *testing.T) {
		dir := workdir(t)
		engine := stubEngine(t, `[ $# -eq 0 ] && exit 1
echo "cannot read input" >&2
exit 2`)
		touch(t, filepath.Join(dir, "letter.txt"))

		out, errOut, err := execute(t, "encrypt", "--engine", engine, "letter.txt")
		if !errors.Is(err, errors.ErrEngineFailed) {
			t.Errorf("err = %v; want ErrEngineFailed", err)
		}
		if !strings.Contains(out, "cannot read input") {
			t.Errorf("stderr of the engine not logged:\n%s", out)
		}
		if n := strings.Count(errOut, "Error:"); n != 1 {
			t.Errorf("errOut has %d errors; want 1:\n%s", n, errOut)
		}
		if !strings.Contains(errOut, "Encryption failed. Check output for details.") {
			t.Errorf("errOut = %q", errOut)
		}
	})

	t.Run("MissingInput", func(t *testing.T) {
		workdir(t)
		engine := stubEngine(t, goodEngine)

		_, errOut, err := execute(t, "encrypt", "--engine", engine, "missing.txt")
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("err = %v; want ErrInvalidInput", err)
		}
		if !strings.Contains(errOut, "Please select a valid input file") {
			t.Errorf("errOut = %q", errOut)
		}
	})

	t.Run("EngineFromConfig", func(t *testing.T) {
		dir := workdir(t)
		engine := stubEngine(t, goodEngine)
		touch(t, filepath.Join(dir, "letter.txt"))
		config := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(config, []byte("engine:\n  path: "+engine+"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		_, _, err := execute(t, "encrypt", "--config", config, "letter.txt")
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "letter_keys.key")); err != nil {
			t.Errorf("key file: %v", err)
		}
	})

	t.Run("NoArgs", func(t *testing.T) {
		workdir(t)
		if _, _, err := execute(t, "encrypt"); err == nil {
			t.Error("expected an argument error")
		}
	})
}
