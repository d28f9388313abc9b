package gitclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// AuthProvider returns the credentials for one clone.
type AuthProvider func(ctx context.Context) (transport.AuthMethod, error)

// BasicAuth authenticates the clone with a personal access token.
func BasicAuth(pat string) AuthProvider {
	return func(context.Context) (transport.AuthMethod, error) {
		return &githttp.BasicAuth{Username: "pat", Password: pat}, nil
	}
}

// BearerAuth authenticates the clone with a token obtained at clone time.
func BearerAuth(token func(ctx context.Context) (string, error)) AuthProvider {
	return func(ctx context.Context) (transport.AuthMethod, error) {
		value, err := token(ctx)
		if err != nil {
			return nil, err
		}
		return &githttp.TokenAuth{Token: value}, nil
	}
}

// Cloner produces an in-memory repository for a branch.
type Cloner func(ctx context.Context, url string, auth transport.AuthMethod, branch string) (*git.Repository, error)

// ShallowClone clones a single branch at depth 1 into memory, without a worktree.
func ShallowClone(ctx context.Context, url string, auth transport.AuthMethod, branch string) (*git.Repository, error) {
	//nolint:exhaustruct // only the options that differ from the defaults
	return git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:           url,
		Auth:          auth,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
}

// lfsPointerPrefix starts every Git LFS pointer file; pointers are under 1024 bytes.
const (
	lfsPointerPrefix  = "version https://git-lfs.github.com/spec/v1"
	lfsPointerMaxSize = 1024
)

// ContentFetcher reads the bytes of one path from another source, used for LFS objects.
type ContentFetcher func(ctx context.Context, coords entities.RepositoryCoordinates, path string) ([]byte, error)

// SourceRepository reads repository items from a shallow clone of the branch.
// The clone is taken by the first call and lives as long as the repository value,
// which is built per run.
type SourceRepository struct {
	remoteURL  string
	auth       AuthProvider
	clone      Cloner
	resolveLFS ContentFetcher

	branch string
	tree   *object.Tree
}

var _ repositories.SourceRepository = (*SourceRepository)(nil)

// NewSourceRepository creates a SourceRepository for the given clone URL.
func NewSourceRepository(remoteURL string, auth AuthProvider, clone Cloner) *SourceRepository {
	if clone == nil {
		clone = ShallowClone
	}
	return &SourceRepository{remoteURL: remoteURL, auth: auth, clone: clone}
}

// ResolveLFSWith sets where the content of Git LFS pointer files is read from.
// Without it, reading a pointer file is an error.
func (it *SourceRepository) ResolveLFSWith(fetch ContentFetcher) *SourceRepository {
	it.resolveLFS = fetch
	return it
}

// ListItems walks the branch tree and reports every entry under the scope path,
// with paths in the REST form ("/dir/file.csv").
func (it *SourceRepository) ListItems(
	ctx context.Context,
	coords entities.RepositoryCoordinates,
) ([]entities.RepositoryItem, error) {
	tree, err := it.load(ctx, coords.Branch)
	if err != nil {
		return nil, err
	}

	scope := strings.Trim(coords.ScopePath(), "/")
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()

	var items []entities.RepositoryItem
	for {
		name, entry, walkErr := walker.Next()
		if errors.Is(walkErr, io.EOF) {
			break
		}
		if walkErr != nil {
			return nil, fmt.Errorf("failed to walk tree: %w", walkErr)
		}
		if !inScope(name, scope) {
			continue
		}

		kind := entities.ObjectKindBlob
		switch {
		case entry.Mode == filemode.Dir:
			kind = entities.ObjectKindTree
		case entry.Mode == filemode.Submodule:
			continue
		}
		items = append(items, entities.RepositoryItem{Path: "/" + name, Kind: kind})
	}
	return items, nil
}

func (it *SourceRepository) GetItemContent(
	ctx context.Context,
	coords entities.RepositoryCoordinates,
	path string,
) ([]byte, error) {
	tree, err := it.load(ctx, coords.Branch)
	if err != nil {
		return nil, err
	}

	file, err := tree.File(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to find %q: %w", path, err)
	}
	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if !isLFSPointer(content) {
		return content, nil
	}

	if it.resolveLFS == nil {
		return nil, fmt.Errorf("%q is a Git LFS pointer and no LFS resolver is configured", path)
	}
	logger.Debugf("Resolving Git LFS object for %q", path)
	return it.resolveLFS(ctx, coords, path)
}

func isLFSPointer(content []byte) bool {
	return len(content) < lfsPointerMaxSize && bytes.HasPrefix(content, []byte(lfsPointerPrefix))
}

func (it *SourceRepository) load(ctx context.Context, branch string) (*object.Tree, error) {
	if it.tree != nil && it.branch == branch {
		return it.tree, nil
	}

	auth, err := it.auth(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Cloning branch %q of %s", branch, it.remoteURL)
	repo, err := it.clone(ctx, it.remoteURL, auth, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to clone branch %q: %w", branch, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", head.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", head.Hash(), err)
	}

	it.branch = branch
	it.tree = tree
	return tree, nil
}

func inScope(name, scope string) bool {
	return scope == "" || name == scope || strings.HasPrefix(name, scope+"/")
}
