package services

import (
	"path/filepath"
	"strings"
)

// Namer derives public names from private workspace names. The
// transformation is deterministic: the same input always produces the
// same name and the same ordered list of applied rules.
type Namer struct {
	project string
	generic map[string]struct{}
}

// NewNamer creates a namer. Generic stems (config, utils, ...) are
// prefixed with the project identifier to avoid collisions between
// workspaces.
func NewNamer(project string, genericNames []string) *Namer {
	generic := make(map[string]struct{}, len(genericNames))
	for _, name := range genericNames {
		generic[strings.ToLower(name)] = struct{}{}
	}
	return &Namer{project: project, generic: generic}
}

// PublicName returns the public name for a workspace-relative path along
// with the transformation notes, in the order the rules were applied.
func (n *Namer) PublicName(sourcePath string) (string, []string) {
	name := filepath.Base(sourcePath)
	var notes []string

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if _, ok := n.generic[strings.ToLower(stem)]; ok && n.project != "" {
		name = n.project + "-" + name
		notes = append(notes, "generic-prefix:"+n.project)
	}

	if strings.Contains(name, "_") {
		name = strings.ReplaceAll(name, "_", "-")
		notes = append(notes, "separator:underscore-to-hyphen")
	}

	return name, notes
}
