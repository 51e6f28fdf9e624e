package auditlog_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
	"github.com/npucost/npucost/core/auditlog"
	"github.com/npucost/npucost/core/serialize"
)

func sampleOp() core.Operation {
	return core.Operation{
		Device:  core.DeviceGen40,
		Op:      core.OpMaxPool,
		Input0:  core.Tensor{Shape: core.Shape{8, 8, 16, 1}, DType: core.U8, Layout: core.LayoutZXYB},
		Output0: core.Tensor{Shape: core.Shape{4, 4, 16, 1}, DType: core.U8, Layout: core.LayoutZXYB},
		Kernel:  core.KernelSize{H: 2, W: 2},
		Stride:  core.StrideSize{H: 2, W: 2},
	}
}

func TestEnabled_RecognizesTruthyValues(t *testing.T) {
	const envVar = "ENABLE_VPUNN_DATA_SERIALIZATION"
	orig, had := os.LookupEnv(envVar)
	t.Cleanup(func() {
		if had {
			os.Setenv(envVar, orig)
		} else {
			os.Unsetenv(envVar)
		}
	})

	for _, tc := range []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"", false},
	} {
		os.Setenv(envVar, tc.value)
		assert.Equal(t, tc.want, auditlog.Enabled(), "value=%q", tc.value)
	}
}

func TestLog_Record_WritesHeaderOnceThenRows(t *testing.T) {
	var buf bytes.Buffer
	l := auditlog.NewLog(&buf)

	l.Record(sampleOp(), nil)
	l.Record(sampleOp(), nil)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header + 2 records")
	assert.Equal(t, serialize.Header(), rows[0])

	decoded, err := serialize.DecodeRecord(rows[1])
	require.NoError(t, err)
	assert.Equal(t, core.OpMaxPool, decoded.Op)
}

func TestLog_Close_NoopWhenNotOpenedFromFile(t *testing.T) {
	l := auditlog.NewLog(&bytes.Buffer{})
	assert.NoError(t, l.Close())
}

func TestOpen_CreatesFileAndRecordsSurviveClose(t *testing.T) {
	path := t.TempDir() + "/ops.csv"
	l, err := auditlog.Open(path)
	require.NoError(t, err)

	l.Record(sampleOp(), nil)
	require.NoError(t, l.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(contents)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, serialize.Header(), rows[0])
}
