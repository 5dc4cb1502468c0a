// Package project provides the `project.new` callback behind the built-in
// `new` command, which starts a project from a git template repository.
package project

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/registry"
)

// NewEvent is fired inside a freshly created project that has its own
// configuration file.
const NewEvent = "on::madrun:default:new"

const (
	defaultTemplate = "{{parentDirBasename}}/skeleton"
	defaultBranch   = "main"
)

var parentDirToken = regexp.MustCompile(`(?i)\{\{\s*parentDirBasename\s*\}\}`)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Executable returns the program used to fire NewEvent. It defaults to
	// the running binary.
	Executable func() (string, error)
}

// Register registers the callback with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCallback("project.new", m.OnNew)
}

type newArgs struct {
	projDir  string
	template string
	branch   string
	pkg      bool
	pkgName  string
	public   bool
}

func parseNewArgs(args argv.Set) (newArgs, error) {
	a := newArgs{
		projDir:  args.Arg(0),
		template: args.String("from", "clone", "skeleton"),
		branch:   args.String("branch"),
		pkg:      args.Has("pkg"),
		pkgName:  args.String("pkgName"),
		public:   args.Has("public"),
	}
	if a.projDir == "" {
		return a, errors.New("missing new directory location")
	}
	if a.template == "" {
		a.template = args.Arg(1)
	}
	if a.template == "" {
		a.template = defaultTemplate
	}
	if a.branch == "" {
		a.branch = defaultBranch
	}
	return a, nil
}

// TemplateRepo expands a template reference into a clonable URL. owner
// replaces the {{parentDirBasename}} token and prefixes names without an
// owner; references without a scheme are taken to be on GitHub.
func TemplateRepo(template, owner string) string {
	owner = url.PathEscape(owner)
	repo := parentDirToken.ReplaceAllLiteralString(template, owner)
	repo = strings.TrimPrefix(repo, "@")
	if !strings.Contains(repo, "/") {
		repo = owner + "/" + repo
	}
	if !strings.Contains(repo, "//") {
		repo = "https://github.com/" + repo
	}
	if !strings.HasSuffix(repo, ".git") {
		repo += ".git"
	}
	return repo
}

// OnNew clones the template into the new project directory, drops its git
// history, and fires NewEvent there when the template carries a
// configuration file.
func (m *Module) OnNew(ctx context.Context, name string, args argv.Set, c *config.Context) error {
	logger := ctxlog.FromContext(ctx)

	a, err := parseNewArgs(args)
	if err != nil {
		return err
	}
	if c.Shell == nil {
		return errors.New("no shell available to run git")
	}

	projDir := a.projDir
	if !filepath.IsAbs(projDir) {
		projDir = filepath.Join(c.Cwd, projDir)
	}
	projDir = filepath.Clean(projDir)
	parent := filepath.Dir(projDir)
	repo := TemplateRepo(a.template, filepath.Base(parent))

	if _, err := os.Stat(projDir); err == nil {
		return fmt.Errorf("directory already exists: `%s`", projDir)
	}
	if _, err := os.Stat(parent); err != nil {
		return fmt.Errorf("nonexistent parent directory: `%s`", parent)
	}

	logger.Debug("Cloning template.", "repo", repo, "branch", a.branch, "dir", projDir)
	cloneArgs := []string{"clone", repo, projDir, "--branch", a.branch, "--depth=1"}
	if err := c.Shell.Spawn(ctx, "git", cloneArgs, config.Opts{"cwd": c.Cwd}); err != nil {
		return fmt.Errorf("failed to clone %s: %w", repo, err)
	}
	if err := os.RemoveAll(filepath.Join(projDir, ".git")); err != nil {
		return fmt.Errorf("failed to remove template git history: %w", err)
	}

	if c.FindConfig == nil {
		return nil
	}
	if _, err := c.FindConfig(projDir, projDir); err != nil {
		logger.Debug("New project has no config file; not firing event.", "dir", projDir)
		return nil
	}

	exe, err := m.executable()
	if err != nil {
		return fmt.Errorf("failed to locate madrun executable: %w", err)
	}
	eventArgs := []string{NewEvent}
	if a.pkg {
		eventArgs = append(eventArgs, "--pkg")
	}
	if a.pkgName != "" {
		eventArgs = append(eventArgs, "--pkgName", a.pkgName)
	}
	if a.public {
		eventArgs = append(eventArgs, "--public")
	}
	logger.Debug("Firing new-project event.", "dir", projDir, "args", eventArgs)
	return c.Shell.Spawn(ctx, exe, eventArgs, config.Opts{"cwd": projDir})
}

func (m *Module) executable() (string, error) {
	if m.Executable != nil {
		return m.Executable()
	}
	return os.Executable()
}
