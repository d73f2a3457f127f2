package runner

import (
	"strings"
	"testing"
)

func TestChildStepTemplatesFraming(t *testing.T) {
	for step, text := range childStepText {
		if text == "" {
			continue
		}
		buf := childStepTemplates[step]
		if buf == nil {
			t.Fatalf("step %d (%q): no template built", step, text)
		}
		length := nativeEndian.Uint32(buf[:4])
		if int(length) != len(buf)-4 {
			t.Fatalf("step %d: length prefix %d, want %d", step, length, len(buf)-4)
		}
		body := string(buf[4:])
		if !strings.HasPrefix(body, text+", errno=") {
			t.Fatalf("step %d: body %q does not start with %q", step, body, text+", errno=")
		}
	}
}

func TestWriteChildErrnoPatchesTrailingDigits(t *testing.T) {
	buf := append([]byte(nil), childStepTemplates[childStepChdir]...)
	writeChildErrno(buf, 2)
	if got := string(buf[len(buf)-3:]); got != "002" {
		t.Fatalf("errno 2 -> %q, want \"002\"", got)
	}

	writeChildErrno(buf, 42)
	if got := string(buf[len(buf)-3:]); got != "042" {
		t.Fatalf("errno 42 -> %q, want \"042\"", got)
	}

	writeChildErrno(buf, 12345)
	if got := string(buf[len(buf)-3:]); got != "999" {
		t.Fatalf("errno clamp -> %q, want \"999\"", got)
	}
}

func TestWriteChildErrnoDoesNotTouchParentTemplate(t *testing.T) {
	original := append([]byte(nil), childStepTemplates[childStepExec]...)
	copyBuf := append([]byte(nil), childStepTemplates[childStepExec]...)
	writeChildErrno(copyBuf, 7)
	if string(original) != string(childStepTemplates[childStepExec]) {
		t.Fatal("package-level template mutated unexpectedly")
	}
	if string(copyBuf) == string(original) {
		t.Fatal("writeChildErrno did not modify its own buffer")
	}
}

func TestChildStepStringUnknown(t *testing.T) {
	if s := childStep(len(childStepText) + 1).String(); s != "unknown step" {
		t.Fatalf("String() on out-of-range step = %q, want \"unknown step\"", s)
	}
}
