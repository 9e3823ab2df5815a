package transeq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/feliixx/gotranslate/internal/logutil"
	"github.com/feliixx/gotranslate/transeq"
	"github.com/jessevdk/go-flags"
)

func TestAllOptions(t *testing.T) {

	data, err := os.ReadFile("testdata/data.json")
	if err != nil {
		t.Fatal(err)
	}

	var tests []struct {
		Options  string `json:"options"`
		Expected string `json:"expected"`
	}

	err = json.Unmarshal(data, &tests)
	if err != nil {
		t.Fatal(err)
	}

	inputBytes, err := os.ReadFile("testdata/test.fna")
	if err != nil {
		t.Fatal(err)
	}

	out := bytes.NewBuffer(make([]byte, 0, 2*1024))

	for _, tt := range tests {

		test := tt
		t.Run(test.Options, func(t *testing.T) {

			opts, err := getOptions(test.Options)
			if err != nil {
				t.Fatal(err)
			}
			opts.NumWorker = 1

			in := bytes.NewReader(inputBytes)
			err = transeq.Translate(context.Background(), in, out, opts, nil)
			if err != nil {
				t.Error(err)
			}

			if want, got := test.Expected, out.String(); want != got {
				t.Errorf("expected\n%s\nbut got\n%s\n", want, got)
			}

			out.Reset()
		})
	}
}

func getOptions(opts string) (options transeq.Options, err error) {
	_, err = flags.ParseArgs(&options, strings.Fields(opts))
	return options, err
}

func TestWrongOptions(t *testing.T) {

	tests := []struct {
		name    string
		options transeq.Options
	}{
		{"frame", transeq.Options{Frame: "7", Placeholder: "?"}},
		{"table", transeq.Options{Frame: "1", Table: 8, Placeholder: "?"}},
		{"empty placeholder", transeq.Options{Frame: "1"}},
		{"long placeholder", transeq.Options{Frame: "1", Placeholder: "XX"}},
		{"negative width", transeq.Options{Frame: "1", Placeholder: "?", Width: -1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := transeq.Translate(context.Background(), strings.NewReader(">s\nATG\n"), &bytes.Buffer{}, test.options, nil)
			if err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMultipleWorkers(t *testing.T) {

	var in strings.Builder
	for i := 0; i < 200; i++ {
		in.WriteString(">s\nATGGCCATTGTAATGGGCCGCTGAA\n")
	}

	var out bytes.Buffer
	opts := transeq.Options{Frame: "1", Placeholder: "?", Width: 60, NumWorker: 4}
	if err := transeq.Translate(context.Background(), strings.NewReader(in.String()), &out, opts, nil); err != nil {
		t.Fatal(err)
	}
	if want, got := strings.Repeat(">s_1\nMAIVMGR\n", 200), out.String(); want != got {
		t.Errorf("expected 200 identical records, got\n%s", got)
	}
}

func TestInvalidCharWarning(t *testing.T) {

	var logs, out bytes.Buffer
	logger := logutil.New(&logs, false)

	in := "ACGT\n>bad one\nATGZZZTTT\n"
	opts := transeq.Options{Frame: "1", Placeholder: "?", Width: 60, NumWorker: 1}
	if err := transeq.Translate(context.Background(), strings.NewReader(in), &out, opts, logger); err != nil {
		t.Fatal(err)
	}
	if want, got := ">bad_1 one\nM?F\n", out.String(); want != got {
		t.Errorf("expected %q but got %q", want, got)
	}
	for _, msg := range []string{"3 invalid char(s) in sequence bad", "1 line(s) before the first sequence header"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("expected a warning containing %q, got %q", msg, logs.String())
		}
	}
}

func TestNonASCIISequence(t *testing.T) {

	var logs, out bytes.Buffer
	logger := logutil.New(&logs, false)

	opts := transeq.Options{Frame: "F", Placeholder: "?", Width: 60, NumWorker: 1}
	if err := transeq.Translate(context.Background(), strings.NewReader(">u\nAéTGTTT\n"), &out, opts, logger); err != nil {
		t.Fatal(err)
	}
	if want, got := ">u_1\n?V\n>u_2\n?F\n>u_3\nC\n", out.String(); want != got {
		t.Errorf("expected %q but got %q", want, got)
	}
	if want := `1 invalid char(s) in sequence u, first one is 'é'`; !strings.Contains(logs.String(), want) {
		t.Errorf("expected a warning containing %q, got %q", want, logs.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {

	opts := transeq.Options{Frame: "6", Placeholder: "?", Width: 60, NumWorker: 2}
	err := transeq.Translate(context.Background(), strings.NewReader(">s\nATGATG\n>t\nATG\n"), failingWriter{}, opts, nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the write error, got %v", err)
	}
}

func TestCancelled(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := transeq.Options{Frame: "1", Placeholder: "?", Width: 60, NumWorker: 1}
	err := transeq.Translate(ctx, strings.NewReader(">s\nATG\n>t\nATG\n"), &bytes.Buffer{}, opts, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEmptyInput(t *testing.T) {

	var out bytes.Buffer
	opts := transeq.Options{Frame: "6", Placeholder: "?", Width: 60, NumWorker: 2}
	if err := transeq.Translate(context.Background(), strings.NewReader(""), &out, opts, nil); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
