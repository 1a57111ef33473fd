package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "6f1c", RunID("6f1c")},
		{"Stage", KeyStage, "compile", Stage("compile")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "lakefile.lean", File("lakefile.lean")},
		{"URL", KeyURL, "http://example", URL("http://example")},
		{"Revision", KeyRevision, "ad9be6e", Revision("ad9be6e")},
		{"Module", KeyModule, "Foo.Bar", Module("Foo.Bar")},
		{"Phase", KeyPhase, "ir", Phase("ir")},
		{"Command", KeyCommand, "lake build", Command("lake build")},
		{"Metric", KeyMetric, "build//x", Metric("build//x")},
		{"Line", KeyLine, "raw", Line("raw")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, tc.attr.Value.String())
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := DurationMS(12.5); a.Key != KeyDurationMS || a.Value.Float64() != 12.5 {
		t.Fatalf("unexpected duration attr %v", a)
	}
	if a := ExitCode(3); a.Key != KeyExitCode || a.Value.Int64() != 3 {
		t.Fatalf("unexpected exit code attr %v", a)
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected error attr %v", a)
	}
}
