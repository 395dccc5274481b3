package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

func testManifest(publicName string) *domain.ExtractionManifest {
	return &domain.ExtractionManifest{
		ID:                  "11111111-2222-3333-4444-555555555555",
		SourcePath:          "src/my_tool.py",
		PublicName:          publicName,
		ExtractedAt:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TransformationNotes: []string{"separator:underscore-to-hyphen"},
		ScoreAtExtraction:   0.82,
		Category:            domain.CategoryTool,
		Destination:         "/pub/demo",
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func TestPublisher_Prepare(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "dest")
	p := NewPublisher(root)

	require.NoError(t, p.Prepare(context.Background()))

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPublisher_Lock(t *testing.T) {
	t.Run("lock is exclusive until released", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)

		unlock, err := p.Lock(context.Background())
		require.NoError(t, err)

		_, err = p.Lock(context.Background())
		assert.ErrorIs(t, err, domain.ErrDestinationLocked)

		unlock()

		unlock2, err := p.Lock(context.Background())
		require.NoError(t, err)
		unlock2()
	})

	t.Run("lock file records the holder pid", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)

		unlock, err := p.Lock(context.Background())
		require.NoError(t, err)
		defer unlock()

		data, err := os.ReadFile(filepath.Join(root, lockFileName))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestPublisher_ExistingNames(t *testing.T) {
	t.Run("missing root is treated as empty", func(t *testing.T) {
		p := NewPublisher(filepath.Join(t.TempDir(), "nope"))

		names, err := p.ExistingNames(context.Background())
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("plain artifacts own their name", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "tool.py"), []byte("x"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0755))

		p := NewPublisher(root)
		names, err := p.ExistingNames(context.Background())
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"tool.py": "tool.py"}, names)
	})

	t.Run("manifests are authoritative for their public name", func(t *testing.T) {
		root := t.TempDir()
		m := testManifest("renamed-tool.py")
		data, err := json.Marshal(m)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(root, "renamed-tool.py"+manifestSuffix), data, 0644))

		p := NewPublisher(root)
		names, err := p.ExistingNames(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "renamed-tool.py"+manifestSuffix, names["renamed-tool.py"])
	})

	t.Run("dot files are ignored", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, lockFileName), []byte("1"), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".stage-abc"), []byte("x"), 0644))

		p := NewPublisher(root)
		names, err := p.ExistingNames(context.Background())
		require.NoError(t, err)

		assert.Empty(t, names)
	})

	t.Run("corrupt manifest is fatal", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "x"+manifestSuffix), []byte("{not json"), 0644))

		p := NewPublisher(root)
		_, err := p.ExistingNames(context.Background())
		assert.ErrorIs(t, err, domain.ErrManifestCorrupt)
	})

	t.Run("manifest without public name is corrupt", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "x"+manifestSuffix), []byte("{}"), 0644))

		p := NewPublisher(root)
		_, err := p.ExistingNames(context.Background())
		assert.ErrorIs(t, err, domain.ErrManifestCorrupt)
	})
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("writes artifact and manifest", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)
		source := writeSource(t, "print('hi')")
		m := testManifest("my-tool.py")

		require.NoError(t, p.Publish(context.Background(), source, m, false))

		content, err := os.ReadFile(filepath.Join(root, "my-tool.py"))
		require.NoError(t, err)
		assert.Equal(t, "print('hi')", string(content))

		data, err := os.ReadFile(filepath.Join(root, "my-tool.py"+manifestSuffix))
		require.NoError(t, err)

		var got domain.ExtractionManifest
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, *m, got)

		// No description stub was requested.
		_, err = os.Stat(filepath.Join(root, "my-tool.py.md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("preserves source permissions", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)
		source := writeSource(t, "#!/bin/sh\n")
		m := testManifest("run.sh")

		require.NoError(t, p.Publish(context.Background(), source, m, false))

		info, err := os.Stat(filepath.Join(root, "run.sh"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("writes description stub when requested", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)
		source := writeSource(t, "x")
		m := testManifest("my-tool.py")

		require.NoError(t, p.Publish(context.Background(), source, m, true))

		data, err := os.ReadFile(filepath.Join(root, "my-tool.py.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "# my-tool.py")
		assert.Contains(t, string(data), "src/my_tool.py")
	})

	t.Run("existing description is left untouched", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "my-tool.py.md"), []byte("handwritten"), 0644))

		p := NewPublisher(root)
		require.NoError(t, p.Publish(context.Background(), writeSource(t, "x"), testManifest("my-tool.py"), true))

		data, err := os.ReadFile(filepath.Join(root, "my-tool.py.md"))
		require.NoError(t, err)
		assert.Equal(t, "handwritten", string(data))
	})

	t.Run("missing source leaves no partial state", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)
		m := testManifest("ghost.py")

		err := p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.py"), m, false)
		assert.ErrorIs(t, err, domain.ErrWriteFailure)

		entries, readErr := os.ReadDir(root)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}

func TestPublisher_Remove(t *testing.T) {
	t.Run("removes artifact manifest and description", func(t *testing.T) {
		root := t.TempDir()
		p := NewPublisher(root)
		require.NoError(t, p.Publish(context.Background(), writeSource(t, "x"), testManifest("my-tool.py"), true))

		require.NoError(t, p.Remove(context.Background(), "my-tool.py"))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing entries are not an error", func(t *testing.T) {
		p := NewPublisher(t.TempDir())
		assert.NoError(t, p.Remove(context.Background(), "never-published.py"))
	})
}
