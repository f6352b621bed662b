package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/lindenlab/check-tag-action/internal/domain"
)

// DeclarationFileName is the exact name of version declaration files.
const DeclarationFileName = "Version"

// DiscoverDeclarationsUseCase finds Version files anywhere under the tree
// root. Each file's directory becomes the declaration's namespace.

type DiscoverDeclarationsUseCase struct {
	Fs   afero.Fs
	Root string
}

// Execute walks the tree and returns declarations ordered by location so
// runs process them deterministically.
func (uc *DiscoverDeclarationsUseCase) Execute(_ context.Context) ([]domain.Declaration, error) {
	root := uc.Root
	if root == "" {
		root = "."
	}
	var declarations []domain.Declaration
	err := afero.Walk(uc.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() != DeclarationFileName {
			return nil
		}
		content, err := afero.ReadFile(uc.Fs, path)
		if err != nil {
			return fmt.Errorf("failed to read declaration %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve declaration path %s: %w", path, err)
		}
		location := filepath.ToSlash(filepath.Dir(rel))
		if location == "." {
			location = ""
		}
		declarations = append(declarations, domain.Declaration{
			Location: location,
			Content:  string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for declarations: %w", root, err)
	}
	sort.Slice(declarations, func(i, j int) bool {
		return strings.Compare(declarations[i].Location, declarations[j].Location) < 0
	})
	return declarations, nil
}
