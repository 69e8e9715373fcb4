package workspace

import (
	"context"
	"fmt"
	"unicode/utf8"

	"threadline/internal/config"
	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type pathNamespace struct {
	nsRepo wsRepo.NamespaceRepository
}

// NewPathNamespace creates the shared folder/conversation path namespace
func NewPathNamespace(nsRepo wsRepo.NamespaceRepository) wsSvc.PathNamespace {
	return &pathNamespace{nsRepo: nsRepo}
}

func (n *pathNamespace) ChildPath(parentPath *string, name string) string {
	return models.ChildPath(parentPath, name)
}

func (n *pathNamespace) PathTaken(ctx context.Context, path string) (bool, error) {
	owner, err := n.nsRepo.PathOwner(ctx, path)
	if err != nil {
		return false, err
	}
	return owner != nil, nil
}

// EnsureAvailable reports the namespace holding path so callers can tell a
// folder clash from a conversation clash.
func (n *pathNamespace) EnsureAvailable(ctx context.Context, path string) error {
	if err := checkPathLength(path); err != nil {
		return err
	}
	owner, err := n.nsRepo.PathOwner(ctx, path)
	if err != nil {
		return err
	}
	if owner != nil {
		return domain.NewPathExistsError(owner.Kind, path, owner.ID)
	}
	return nil
}

// EnsureSubtreeFits measures the longest descendant of oldPath and checks
// its length once rebased onto newPath
func (n *pathNamespace) EnsureSubtreeFits(ctx context.Context, oldPath, newPath string) error {
	growth := utf8.RuneCountInString(newPath) - utf8.RuneCountInString(oldPath)
	if growth <= 0 {
		return nil
	}
	longest, err := n.nsRepo.LongestDescendantPath(ctx, oldPath)
	if err != nil {
		return err
	}
	if longest > 0 && longest+growth > config.MaxPathLength {
		return &domain.ValidationError{
			Message: fmt.Sprintf("moving %q to %q would make a descendant path exceed maximum length", oldPath, newPath),
		}
	}
	return nil
}
