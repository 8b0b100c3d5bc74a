package app

import (
	"sync"
	"testing"
)

func TestCallbackPresenter(t *testing.T) {
	var (
		lines   []string
		cleared bool
		enabled bool
		status  string
		tone    Tone
		engine  string
		busy    bool
		info    string
		failure string
	)

	p := &CallbackPresenter{
		OnLine:    func(line string) { lines = append(lines, line) },
		OnClear:   func() { cleared = true },
		OnEnabled: func(e bool) { enabled = e },
		OnStatus:  func(text string, t Tone) { status, tone = text, t },
		OnEngine:  func(path, label string, _ Tone) { engine = path + ": " + label },
		OnBusy:    func(b bool) { busy = b },
		OnInfo:    func(title, _ string) { info = title },
		OnError:   func(message string) { failure = message },
	}

	p.AppendLine("one")
	p.Do(func() { p.AppendLine("two") })
	p.ClearLog()
	p.SetActionEnabled(true)
	p.SetStatus("Ready to encrypt!", Success)
	p.SetEngine("/e", "Executable ready", Success)
	p.SetBusy(true)
	p.ShowInfo("Success", "done")
	p.ShowError("boom")

	if len(lines) != 2 || lines[1] != "two" {
		t.Errorf("lines = %q", lines)
	}
	if !cleared {
		t.Error("OnClear was not called")
	}
	if !enabled {
		t.Error("OnEnabled was not called")
	}
	if status != "Ready to encrypt!" || tone != Success {
		t.Errorf("status = %q/%v", status, tone)
	}
	if engine != "/e: Executable ready" {
		t.Errorf("engine = %q", engine)
	}
	if !busy {
		t.Error("OnBusy was not called")
	}
	if info != "Success" {
		t.Errorf("info = %q", info)
	}
	if failure != "boom" {
		t.Errorf("failure = %q", failure)
	}
}

func TestCallbackPresenterNilCallbacks(t *testing.T) {
	// All callbacks are nil - should not panic
	p := &CallbackPresenter{}

	p.AppendLine("x")
	p.ClearLog()
	p.SetActionEnabled(true)
	p.SetStatus("x", Info)
	p.SetEngine("x", "x", Info)
	p.SetBusy(true)
	p.ShowInfo("x", "x")
	p.ShowError("x")

	ran := false
	p.Do(func() { ran = true })
	if !ran {
		t.Error("Do did not run fn")
	}
}

func TestCallbackPresenterDoSerializes(t *testing.T) {
	var count int
	p := &CallbackPresenter{OnLine: func(string) { count++ }}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Do(func() { p.AppendLine("x") })
		}()
	}
	wg.Wait()

	if count != 100 {
		t.Errorf("count = %d; want 100", count)
	}
}

func TestSinks(t *testing.T) {
	var lines []string
	p := &CallbackPresenter{OnLine: func(line string) { lines = append(lines, line) }}

	directSink(p).AppendLine("direct")
	marshalSink(p).AppendLine("marshalled")

	if len(lines) != 2 || lines[0] != "direct" || lines[1] != "marshalled" {
		t.Errorf("lines = %q", lines)
	}
}
