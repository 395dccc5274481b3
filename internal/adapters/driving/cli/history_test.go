package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "l", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestHistoryCmd_WithoutService(t *testing.T) {
	cleanup := setupTestServices(&mockExtractor{}, nil)
	defer cleanup()
	historyService = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"history"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}

func TestHistoryCmd_ListsRecords(t *testing.T) {
	hist := &mockHistoryService{records: []domain.PublicationRecord{
		{
			ID:          "id-1",
			SourcePath:  "my_tool.py",
			PublicName:  "my-tool.py",
			Category:    domain.CategoryTool,
			Score:       0.88,
			Destination: "/pub/demo",
			ExtractedAt: cliTestTime,
		},
	}}
	cleanup := setupTestServices(&mockExtractor{}, hist)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "my_tool.py -> my-tool.py")
	assert.Contains(t, out, "tool")
	assert.Equal(t, 20, hist.lastLimit)
}

func TestHistoryCmd_EmptyHistory(t *testing.T) {
	cleanup := setupTestServices(&mockExtractor{}, &mockHistoryService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No publications recorded yet.")
}

func TestHistoryCmd_LimitFlagPassedThrough(t *testing.T) {
	hist := &mockHistoryService{}
	cleanup := setupTestServices(&mockExtractor{}, hist)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"history", "--limit", "5"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 5, hist.lastLimit)
}
