package usecase

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/idraft/internal/domain"
)

// ImportDraftsInput contains the parameters for importing drafts.
type ImportDraftsInput struct {
	Content []byte // YAML: a list of titles, or a mapping with a "drafts" list
}

// SkippedEntry is an import entry that was not queued.
type SkippedEntry struct {
	Err   error
	Value string
	Line  int
}

// ImportDraftsOutput contains the result of an import.
type ImportDraftsOutput struct {
	Added   []domain.Draft
	Skipped []SkippedEntry
	Drafts  []domain.Draft // Queue after the import
}

// ImportDrafts is the use case for queueing drafts from a YAML file.
type ImportDrafts struct {
	queue *DraftQueue
}

// NewImportDrafts creates a new ImportDrafts use case.
func NewImportDrafts(queue *DraftQueue) *ImportDrafts {
	return &ImportDrafts{queue: queue}
}

// Execute adds each entry through DraftQueue.Add in file order, so the last
// entry ends up first in the queue. Entries that fail validation are skipped
// and reported. A persistence failure stops the import.
func (uc *ImportDrafts) Execute(ctx context.Context, in ImportDraftsInput) (*ImportDraftsOutput, error) {
	entries, err := parseImport(in.Content)
	if err != nil {
		return nil, err
	}

	out := &ImportDraftsOutput{}
	for _, node := range entries {
		if node.Kind != yaml.ScalarNode {
			out.Skipped = append(out.Skipped, SkippedEntry{Line: node.Line, Err: domain.ErrInvalidImport})
			continue
		}

		drafts, err := uc.queue.Add(ctx, node.Value)
		if errors.Is(err, domain.ErrValidation) {
			out.Skipped = append(out.Skipped, SkippedEntry{Line: node.Line, Value: node.Value, Err: err})
			continue
		}
		out.Added = append(out.Added, domain.Draft(node.Value))
		out.Drafts = drafts
		if err != nil {
			return out, err
		}
	}

	if out.Drafts == nil {
		out.Drafts = uc.queue.Items()
	}
	return out, nil
}

// parseImport returns the entry nodes of a list document or of a "drafts" key.
func parseImport(content []byte) ([]*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImport, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.ErrInvalidImport
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return root.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			if key.Value == "drafts" && value.Kind == yaml.SequenceNode {
				return value.Content, nil
			}
		}
	}
	return nil, domain.ErrInvalidImport
}
