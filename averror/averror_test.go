package averror_test

import (
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"

	"github.com/GreatValueCreamSoda/hdrplay/averror"
)

func Test_EOF_IsStable(t *testing.T) {
	first := averror.EOF()
	for range 8 {
		if averror.EOF() != first {
			t.Fatal("EOF() changed between calls")
		}
	}

	if first != -541478725 {
		t.Fatalf("EOF() = %d, want -541478725", first)
	}

	if first != averror.Tag('E', 'O', 'F', ' ') {
		t.Fatal("EOF() does not match FFERRTAG('E','O','F',' ')")
	}
}

func Test_EAGAIN_IsStable(t *testing.T) {
	first := averror.EAGAIN()
	for range 8 {
		if averror.EAGAIN() != first {
			t.Fatal("EAGAIN() changed between calls")
		}
	}

	if first >= 0 {
		t.Fatalf("EAGAIN() = %d, want a negative code", first)
	}
	if first.IsTag() {
		t.Fatal("EAGAIN() must be an errno code, not a tag")
	}
}

func Test_FromErrno_Deterministic(t *testing.T) {
	for e := syscall.Errno(1); e < 200; e++ {
		a, b := averror.FromErrno(e), averror.FromErrno(e)
		if a != b {
			t.Fatalf("FromErrno(%d) not deterministic: %d vs %d", e, a, b)
		}
		if int32(a) != -int32(e) {
			t.Fatalf("FromErrno(%d) = %d, want %d", e, a, -int32(e))
		}

		back, ok := a.Errno()
		if !ok || back != e {
			t.Fatalf("Errno() of %d = %d, %v", a, back, ok)
		}
	}
}

func Test_Tags_AreNotErrnos(t *testing.T) {
	for _, code := range averror.All() {
		if _, ok := code.Errno(); ok {
			t.Fatalf("%s reported as errno code", code.Name())
		}
		if code >= 0 {
			t.Fatalf("%s is not negative", code.Name())
		}
	}
}

func Test_KnownTagValues(t *testing.T) {
	cases := map[averror.Code]averror.Code{
		averror.ErrInvalidData:     averror.Tag('I', 'N', 'D', 'A'),
		averror.ErrDecoderNotFound: averror.Tag(0xF8, 'D', 'E', 'C'),
		averror.ErrHTTPNotFound:    averror.Tag(0xF8, '4', '0', '4'),
		averror.ErrPatchWelcome:    averror.Tag('P', 'A', 'W', 'E'),
	}

	for got, want := range cases {
		if got != want {
			t.Fatalf("%s = %d, want %d", got.Name(), got, want)
		}
	}
}

func Test_ErrorStrings(t *testing.T) {
	if averror.ErrEOF.Error() != "End of file" {
		t.Fatalf("unexpected EOF message %q", averror.ErrEOF.Error())
	}

	if averror.ErrEOF.Name() != "AVERROR_EOF" {
		t.Fatalf("unexpected EOF name %q", averror.ErrEOF.Name())
	}

	if averror.EAGAIN().Name() != "AVERROR(EAGAIN)" {
		t.Fatalf("unexpected EAGAIN name %q", averror.EAGAIN().Name())
	}

	if averror.Code(-1).Error() == "" {
		t.Fatal("errno code produced an empty message")
	}
}

func Test_Is(t *testing.T) {
	wrapped := fmt.Errorf("read frame: %w", averror.EOF())

	if !errors.Is(wrapped, io.EOF) {
		t.Fatal("wrapped AVERROR_EOF should match io.EOF")
	}
	if !averror.IsEOF(wrapped) || !averror.IsEOF(io.EOF) {
		t.Fatal("IsEOF failed")
	}

	again := fmt.Errorf("receive: %w", averror.EAGAIN())
	if !averror.IsAgain(again) {
		t.Fatal("IsAgain failed on wrapped EAGAIN")
	}
	if averror.IsAgain(wrapped) {
		t.Fatal("IsAgain matched EOF")
	}

	if !errors.Is(averror.FromErrno(syscall.Errno(5)), syscall.Errno(5)) {
		t.Fatal("errno code should match syscall.Errno")
	}
}

func Test_FromReturn(t *testing.T) {
	if averror.FromReturn(0) != nil || averror.FromReturn(12) != nil {
		t.Fatal("non-negative return values must be nil")
	}

	err := averror.Wrap("avcodec_receive_frame", int(averror.ErrEOF))
	if err == nil || !averror.IsEOF(err) {
		t.Fatalf("Wrap lost the code: %v", err)
	}
	if err.Error() != "avcodec_receive_frame: End of file" {
		t.Fatalf("unexpected wrapped text %q", err.Error())
	}
}

func Test_Parse(t *testing.T) {
	cases := map[string]averror.Code{
		"-541478725":      averror.ErrEOF,
		"AVERROR_EOF":     averror.ErrEOF,
		"averror_bug":     averror.ErrBug,
		"EAGAIN":          averror.EAGAIN(),
		"AVERROR(EAGAIN)": averror.EAGAIN(),
		"ENOENT":          averror.FromErrno(syscall.Errno(2)),
		"averror(eagain)": averror.EAGAIN(),
		"AVERROR(11)":     averror.FromErrno(syscall.Errno(11)),
	}

	for in, want := range cases {
		got, err := averror.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %d, want %d", in, got, want)
		}
	}

	for _, in := range []string{"", "5", "NOT_A_CODE", "AVERROR(0)",
		"AVERROR(-3)"} {
		if _, err := averror.Parse(in); !errors.Is(err, averror.ErrUnknownCode) {
			t.Fatalf("Parse(%q) should fail with ErrUnknownCode, got %v", in, err)
		}
	}
}

func Test_UnnamedCode(t *testing.T) {
	code := averror.Code(-541478726)

	if got := code.Error(); got != "Error number -541478726 occurred" {
		t.Fatalf("unexpected message %q", got)
	}

	back, err := averror.Parse(code.Name())
	if err != nil {
		t.Fatalf("Parse(%q): %v", code.Name(), err)
	}
	if back != code {
		t.Fatalf("Parse(Name()) = %d, want %d", back, code)
	}
}
