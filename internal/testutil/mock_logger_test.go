package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)
	v, ok := messages[0].Field("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_ChildrenShareBuffer(t *testing.T) {
	logger := testutil.NewMockLogger()

	child := logger.Named("dataset").With(logging.String("source", "file"))
	child.Warn("duplicate keys")

	msg, ok := logger.Find("warn", "duplicate keys")
	require.True(t, ok)
	assert.Equal(t, "dataset", msg.Logger)
	src, _ := msg.Field("source")
	assert.Equal(t, "file", src)
}

func TestSampleDataset(t *testing.T) {
	ds := testutil.SampleDataset(t)
	assert.Equal(t, 9, ds.Len())
	assert.True(t, ds.HasColumn(testutil.ColSexRatio))
	assert.Equal(t, "Kerala", ds.Row(0).Key().State)
	assert.Equal(t, []string{"", "Total"}, []string{ds.Row(7).Key().Area, ds.Row(0).Key().Area})
	assert.Contains(t, ds.Distinct(survey.ColumnSurvey), "NFHS-4")
}

//Personal.AI order the ending
