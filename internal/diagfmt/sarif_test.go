package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qres/internal/diag"
	"qres/internal/source"
)

func TestSarifLog(t *testing.T) {
	fs, id := sampleFile(t, "main.qs")
	fs.SetBaseDir("")
	span := fooSpan
	span.File = id
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.ResNotFound, span, "`Foo` not found").
		WithNote(source.Span{File: id, Start: 10, End: 13}, "see here"))
	bag.Add(diag.New(diag.SevWarning, diag.ResAmbiguous, span, "second"))
	bag.Add(diag.New(diag.SevError, diag.ResNotFound, source.Span{}, "no location"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "0.1.0", InvocationArgs: []string{"check", "."}}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "qres" {
		t.Fatalf("expected default tool name, got %q", run.Tool.Driver.Name)
	}
	gotRules := []string{}
	for _, r := range run.Tool.Driver.Rules {
		gotRules = append(gotRules, r.ID)
	}
	if diff := cmp.Diff([]string{"RES3001", "RES3006"}, gotRules); diff != "" {
		t.Fatalf("unexpected rules (-want +got):\n%s", diff)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}
	first := run.Results[0]
	if first.Level != "error" || len(first.Locations) != 1 || len(first.RelatedLocations) != 1 {
		t.Fatalf("unexpected first result %+v", first)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 5 || region.ByteOffset != 20 || region.ByteLength != 3 {
		t.Fatalf("unexpected region %+v", region)
	}
	if run.Results[1].Level != "warning" {
		t.Fatalf("expected warning level, got %q", run.Results[1].Level)
	}
	if run.Results[2].Locations != nil {
		t.Fatalf("expected no location for a span without a file")
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("expected a failed invocation, got %+v", run.Invocations)
	}
}
