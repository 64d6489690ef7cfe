package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessler-oss/revgen/internal/events"
)

func TestGenerateOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GenerateOptions
		wantErr bool
	}{
		{"defaults", GenerateOptions{Output: DefaultDatasetPath}, false},
		{"explicit count", GenerateOptions{Count: 10, Output: "out.json"}, false},
		{"negative count", GenerateOptions{Count: -1, Output: "out.json"}, true},
		{"empty output", GenerateOptions{Count: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCollectOptionsValidate(t *testing.T) {
	assert.NoError(t, CollectOptions{Count: 50, OutputDir: DefaultBaselineDir}.Validate())
	assert.Error(t, CollectOptions{Count: 0, OutputDir: DefaultBaselineDir}.Validate())
	assert.Error(t, CollectOptions{Count: 10}.Validate())
}

func TestReportOptionsValidate(t *testing.T) {
	assert.NoError(t, ReportOptions{Dataset: "d.json", OutputDir: "reports"}.Validate())
	assert.Error(t, ReportOptions{OutputDir: "reports"}.Validate())
	assert.Error(t, ReportOptions{Dataset: "d.json"}.Validate())
}

func TestPipelineOptionsValidate(t *testing.T) {
	valid := PipelineOptions{
		Output:        DefaultDatasetPath,
		BaselineCount: 50,
		BaselineDir:   DefaultBaselineDir,
		ReportDir:     DefaultReportDir,
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.BaselineCount = 0
	assert.Error(t, invalid.Validate())

	invalid = valid
	invalid.ReportDir = ""
	assert.Error(t, invalid.Validate())
}

func TestVersionCommand(t *testing.T) {
	app := New()
	app.SetVersion("1.2.3", "abc123", "2026-01-15")

	var out bytes.Buffer
	app.rootCmd.SetOut(&out)
	app.rootCmd.SetArgs([]string{"version"})

	require.NoError(t, app.Execute())
	assert.Contains(t, out.String(), "revgen version 1.2.3")
	assert.Contains(t, out.String(), "commit: abc123")
}

func TestVersionCommandDefaults(t *testing.T) {
	app := New()

	var out bytes.Buffer
	app.rootCmd.SetOut(&out)
	app.rootCmd.SetArgs([]string{"version"})

	require.NoError(t, app.Execute())
	assert.Contains(t, out.String(), "revgen version dev")
	assert.Contains(t, out.String(), "commit: unknown")
}

func TestProgressHandlerBatchedLines(t *testing.T) {
	var buf bytes.Buffer
	h := progressHandler(&buf, 10, 2)

	accept := events.NewEvent(events.SlotAccepted)
	reject := events.NewEvent(events.AttemptRejected)

	h(accept)
	assert.Empty(t, buf.String())

	h(reject)
	h(accept)
	assert.Equal(t, "Progress: 2/10 accepted, 1 rejected\n", buf.String())

	buf.Reset()
	h(accept)
	h(events.NewEvent(events.RunCompleted))
	assert.Equal(t, "Progress: 3/10 accepted, 1 rejected\n", buf.String())
}

func TestRootCommandHasSubcommands(t *testing.T) {
	app := New()

	var names []string
	for _, c := range app.rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"generate", "collect", "report", "pipeline", "version"} {
		assert.Contains(t, names, want)
	}
}
