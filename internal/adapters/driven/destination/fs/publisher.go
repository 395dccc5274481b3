// Package fs implements the destination port over the local
// filesystem: collision detection against existing artifacts and
// manifests, stage-then-commit publishing, and an advisory lock file.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
)

// Ensure Publisher implements the interface.
var _ driven.Destination = (*Publisher)(nil)

const (
	manifestSuffix = ".manifest.json"
	lockFileName   = ".bridge.lock"
	stagePrefix    = ".stage-"
)

// Publisher manages a destination root on the local filesystem.
type Publisher struct {
	root string
}

// NewPublisher creates a publisher for the given destination root.
func NewPublisher(root string) *Publisher {
	return &Publisher{root: root}
}

// Root returns the destination root path.
func (p *Publisher) Root() string {
	return p.root
}

// Prepare creates the destination root if absent.
func (p *Publisher) Prepare(_ context.Context) error {
	if err := os.MkdirAll(p.root, 0755); err != nil {
		return fmt.Errorf("%w: creating destination root: %v", domain.ErrWriteFailure, err)
	}
	return nil
}

// Lock acquires the advisory lock file. The returned function releases
// it and must be called on every exit path.
func (p *Publisher) Lock(_ context.Context) (driven.UnlockFunc, error) {
	lockPath := filepath.Join(p.root, lockFileName)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDestinationLocked, lockPath)
		}
		return nil, fmt.Errorf("%w: acquiring lock: %v", domain.ErrWriteFailure, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() {
		os.Remove(lockPath)
	}, nil
}

// ExistingNames maps every public name present at the destination to
// the entry that owns it. Manifests are authoritative for the names
// they record; an unparsable manifest makes the whole destination
// unusable for collision detection.
func (p *Publisher) ExistingNames(_ context.Context) (map[string]string, error) {
	names := make(map[string]string)

	entries, err := os.ReadDir(p.root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return names, nil
		}
		return nil, fmt.Errorf("reading destination root: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue // lock file, stage leftovers, OS metadata
		}

		if strings.HasSuffix(name, manifestSuffix) {
			manifestPath := filepath.Join(p.root, name)
			var m domain.ExtractionManifest
			data, readErr := os.ReadFile(manifestPath)
			if readErr != nil {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrManifestCorrupt, name, readErr)
			}
			if unmarshalErr := json.Unmarshal(data, &m); unmarshalErr != nil || m.PublicName == "" {
				return nil, fmt.Errorf("%w: %s", domain.ErrManifestCorrupt, name)
			}
			names[m.PublicName] = name
			continue
		}

		if _, ok := names[name]; !ok {
			names[name] = name
		}
	}

	return names, nil
}

// Publish copies the source artifact into the destination under the
// manifest's public name. The artifact is staged to a temporary file in
// the destination root and moved into place atomically only after the
// manifest content has been prepared, so an interruption never leaves a
// truncated artifact behind.
func (p *Publisher) Publish(
	_ context.Context,
	sourceAbs string,
	manifest *domain.ExtractionManifest,
	writeDescription bool,
) error {
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding manifest: %v", domain.ErrWriteFailure, err)
	}

	stagePath, err := p.stage(sourceAbs)
	if err != nil {
		return err
	}

	artifactPath := filepath.Join(p.root, manifest.PublicName)
	if err := os.Rename(stagePath, artifactPath); err != nil {
		os.Remove(stagePath)
		return fmt.Errorf("%w: committing artifact: %v", domain.ErrWriteFailure, err)
	}

	manifestPath := artifactPath + manifestSuffix
	if err := os.WriteFile(manifestPath, manifestBytes, 0644); err != nil {
		os.Remove(artifactPath)
		return fmt.Errorf("%w: writing manifest: %v", domain.ErrWriteFailure, err)
	}

	if writeDescription {
		if err := p.writeDescriptionStub(manifest); err != nil {
			os.Remove(manifestPath)
			os.Remove(artifactPath)
			return err
		}
	}

	return nil
}

// Remove deletes a published artifact with its manifest and generated
// description. Used for rollback; missing entries are not an error.
func (p *Publisher) Remove(_ context.Context, publicName string) error {
	var errs []error
	for _, path := range []string{
		filepath.Join(p.root, publicName),
		filepath.Join(p.root, publicName+manifestSuffix),
		filepath.Join(p.root, publicName+".md"),
	} {
		if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// stage copies the source into a temporary file in the destination
// root, preserving the source's permission bits.
func (p *Publisher) stage(sourceAbs string) (string, error) {
	src, err := os.Open(sourceAbs)
	if err != nil {
		return "", fmt.Errorf("%w: opening source: %v", domain.ErrWriteFailure, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stating source: %v", domain.ErrWriteFailure, err)
	}

	tmp, err := os.CreateTemp(p.root, stagePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("%w: creating stage file: %v", domain.ErrWriteFailure, err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: staging artifact: %v", domain.ErrWriteFailure, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: closing stage file: %v", domain.ErrWriteFailure, err)
	}

	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: setting artifact mode: %v", domain.ErrWriteFailure, err)
	}

	return tmp.Name(), nil
}

// writeDescriptionStub generates a minimal description file for an
// artifact that had none. An existing file with that name is left
// untouched.
func (p *Publisher) writeDescriptionStub(manifest *domain.ExtractionManifest) error {
	descPath := filepath.Join(p.root, manifest.PublicName+".md")
	if _, err := os.Stat(descPath); err == nil {
		return nil
	}

	content := fmt.Sprintf(
		"# %s\n\nExtracted from `%s` on %s.\n\nCategory: %s\n",
		manifest.PublicName,
		manifest.SourcePath,
		manifest.ExtractedAt.Format("2006-01-02"),
		manifest.Category,
	)
	if err := os.WriteFile(descPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: writing description: %v", domain.ErrWriteFailure, err)
	}
	return nil
}
