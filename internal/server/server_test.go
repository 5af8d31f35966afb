package server

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/git"
	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/internal/registry"
	"github.com/thoreinstein/autoskills/internal/skill"
)

type fakeFinder struct {
	results []registry.Result
	queries []string
}

func (f *fakeFinder) Search(_ context.Context, query string) []registry.Result {
	f.queries = append(f.queries, query)
	return f.results
}

type fakeInstaller struct {
	repo     *skill.Repository
	err      error
	packages []string
}

func (f *fakeInstaller) Install(ctx context.Context, pkg string) (*registry.Installation, error) {
	f.packages = append(f.packages, pkg)
	if f.err != nil {
		return nil, f.err
	}
	p, err := registry.ParsePackage(pkg)
	if err != nil {
		return nil, err
	}
	path, err := f.repo.Create(ctx, skill.CreateParams{
		Name: p.Skill, Description: "installed", Title: p.Skill, Instructions: "Installed.",
	})
	if err != nil {
		return nil, err
	}
	return &registry.Installation{Package: p, Path: filepath.Dir(path), Link: skill.LinkCreated}, nil
}

type env struct {
	repo      *skill.Repository
	finder    *fakeFinder
	installer *fakeInstaller
	h         *Handlers
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	repo := skill.NewRepository(skill.Options{
		Dir:       filepath.Join(root, "skills"),
		AgentsDir: filepath.Join(root, "agents"),
		Logger:    logging.ForTest(t),
		Now:       func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
	e := &env{
		repo:      repo,
		finder:    &fakeFinder{},
		installer: &fakeInstaller{repo: repo},
	}
	e.h = NewHandlers(Deps{Library: repo, Finder: e.finder, Installer: e.installer, Logger: logging.ForTest(t)})
	return e
}

type handlerFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// call invokes a handler and decodes its single JSON text block.
func call(t *testing.T, fn handlerFunc, args map[string]any) map[string]any {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func (e *env) create(t *testing.T, name string) {
	t.Helper()
	_, err := e.repo.Create(context.Background(), skill.CreateParams{
		Name: name, Description: name + " things", Title: name, Instructions: "Do it.",
	})
	require.NoError(t, err)
}

func TestTools_Definitions(t *testing.T) {
	e := newEnv(t)
	var names []string
	for _, tool := range e.h.Tools() {
		names = append(names, tool.Definition.Name)
		require.NotNil(t, tool.Handle)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(tool.Definition.RawInputSchema, &schema), tool.Definition.Name)
		assert.Equal(t, "object", schema["type"], tool.Definition.Name)
	}
	assert.Equal(t, []string{
		"list_skills", "get_skill", "create_skill", "update_skill",
		"delete_skill", "search_skill", "review_task", "autoskill_quick",
	}, names)
}

func TestCreateSchema_RequiredFields(t *testing.T) {
	var schema struct {
		Required   []string       `json:"required"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(inputSchema[createInput](), &schema))
	assert.ElementsMatch(t, []string{"name", "description", "title", "when_to_use", "instructions"}, schema.Required)
	assert.Contains(t, schema.Properties, "tags")
}

func TestNew_RegistersServer(t *testing.T) {
	e := newEnv(t)
	s := New(Deps{Library: e.repo, Finder: e.finder, Installer: e.installer, Version: "1.2.3"})
	assert.NotNil(t, s)
}

func TestCreateAndGetSkill(t *testing.T) {
	e := newEnv(t)

	out := call(t, e.h.CreateSkill, map[string]any{
		"name":         "deploy",
		"description":  "Deploy the app",
		"title":        "Deploy",
		"when_to_use":  "shipping",
		"instructions": "Run make deploy.",
		"tags":         []any{"ops"},
	})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, `Skill "deploy" created successfully.`, out["message"])
	assert.Equal(t, e.repo.Dir(), out["skills_dir"])
	assert.Equal(t, filepath.Join(e.repo.Dir(), "deploy", "SKILL.md"), out["path"])

	out = call(t, e.h.GetSkill, map[string]any{"name": "deploy"})
	require.Equal(t, true, out["success"])
	got := out["skill"].(map[string]any)
	assert.Equal(t, "deploy", got["name"])
	assert.Equal(t, "Deploy the app Use when: shipping", got["description"])
	assert.Equal(t, "1.0.0", got["version"])
	assert.Equal(t, []any{"ops"}, got["tags"])
	assert.Equal(t, "2026-01-02", got["created"])
	assert.Equal(t, "2026-01-02", got["updated"])
	assert.Equal(t, "\n# Deploy\n\nRun make deploy.\n", got["content"])
}

func TestCreateSkill_Failures(t *testing.T) {
	e := newEnv(t)
	e.create(t, "deploy")

	out := call(t, e.h.CreateSkill, map[string]any{
		"name": "deploy", "description": "d", "title": "x", "when_to_use": "", "instructions": "i",
	})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "already exists")

	out = call(t, e.h.CreateSkill, map[string]any{"name": "Not Valid"})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "invalid skill name")
}

func TestCreateSkill_RejectsBlankContent(t *testing.T) {
	e := newEnv(t)

	out := call(t, e.h.CreateSkill, map[string]any{"name": "bare"})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "description, title, instructions required")

	out = call(t, e.h.CreateSkill, map[string]any{
		"name": "blank", "description": "  ", "title": "Blank", "when_to_use": "", "instructions": "Steps.",
	})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "description required")

	assert.False(t, e.repo.Exists("bare"))
	assert.False(t, e.repo.Exists("blank"))
}

func TestGetSkill_NotFound(t *testing.T) {
	e := newEnv(t)
	out := call(t, e.h.GetSkill, map[string]any{"name": "ghost"})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, `Skill "ghost" not found.`, out["error"])
}

func TestListSkills(t *testing.T) {
	e := newEnv(t)
	out := call(t, e.h.ListSkills, nil)
	assert.Equal(t, e.repo.Dir(), out["skills_dir"])
	assert.EqualValues(t, 0, out["count"])
	assert.Equal(t, []any{}, out["skills"])

	e.create(t, "beta")
	e.create(t, "alpha")
	out = call(t, e.h.ListSkills, nil)
	assert.EqualValues(t, 2, out["count"])
	skills := out["skills"].([]any)
	assert.Equal(t, "alpha", skills[0].(map[string]any)["name"])
	assert.Equal(t, "alpha things", skills[0].(map[string]any)["description"])
}

func TestUpdateSkill(t *testing.T) {
	e := newEnv(t)
	e.create(t, "deploy")

	out := call(t, e.h.UpdateSkill, map[string]any{
		"name":         "deploy",
		"instructions": "New steps.",
		"tags":         []any{},
	})
	require.Equal(t, true, out["success"], out)
	assert.Equal(t, `Skill "deploy" updated successfully.`, out["message"])

	s, err := e.repo.Get(context.Background(), "deploy")
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", s.Version)
	assert.Equal(t, "\n# deploy\n\nNew steps.\n", s.Content)
	assert.Empty(t, s.Tags)

	out = call(t, e.h.UpdateSkill, map[string]any{"name": "ghost", "description": "x"})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "not found")
}

func TestDeleteSkill(t *testing.T) {
	e := newEnv(t)
	e.create(t, "tmp")

	out := call(t, e.h.DeleteSkill, map[string]any{"name": "tmp"})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, `Skill "tmp" deleted.`, out["message"])

	out = call(t, e.h.DeleteSkill, map[string]any{"name": "tmp"})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, `Skill "tmp" not found.`, out["message"])
}

func TestSearchSkill_RequiresQuery(t *testing.T) {
	e := newEnv(t)
	out := call(t, e.h.SearchSkill, map[string]any{"task_context": "  "})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "required")
	assert.Empty(t, e.finder.queries)
}

func TestSearchSkill_LocalCandidate(t *testing.T) {
	e := newEnv(t)
	e.create(t, "deploy")

	out := call(t, e.h.SearchSkill, map[string]any{"candidate_skill": "deploy", "task_context": "ship v2"})
	assert.Equal(t, true, out["success"])
	local := out["local"].(map[string]any)
	assert.Equal(t, "deploy", local["name"])
	assert.Contains(t, out["suggestion"], "ship v2")
	assert.Empty(t, e.finder.queries, "local hit must not search")
}

func TestSearchSkill_NoResults(t *testing.T) {
	e := newEnv(t)
	out := call(t, e.h.SearchSkill, map[string]any{"task_context": "convert pdf", "query": "pdf"})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "pdf", out["query"])
	assert.Equal(t, []any{}, out["results"])
	assert.Contains(t, out["suggestion"], "review_task")
	assert.Equal(t, []string{"pdf"}, e.finder.queries)
	assert.Empty(t, e.installer.packages)
}

func TestSearchSkill_InstallsTopResult(t *testing.T) {
	e := newEnv(t)
	e.finder.results = []registry.Result{
		{Package: "anthropics/skills@pdf", URL: "https://skills.sh/anthropics/skills/pdf", Installs: 35400},
		{Package: "someone/tools@pdf-lite", URL: "https://skills.sh/someone/tools/pdf-lite", Installs: 87},
	}

	out := call(t, e.h.SearchSkill, map[string]any{"task_context": "merge two PDFs"})
	assert.Equal(t, "merge two PDFs", out["query"])
	assert.Len(t, out["results"], 2)
	install := out["install"].(map[string]any)
	assert.Equal(t, "anthropics/skills@pdf", install["package"])
	assert.Equal(t, true, install["installed"])
	assert.Equal(t, filepath.Join(e.repo.Dir(), "pdf"), install["path"])
	assert.Contains(t, out["suggestion"], `get_skill("pdf")`)
	assert.Contains(t, out["suggestion"], "merge two PDFs")
	assert.Equal(t, []string{"anthropics/skills@pdf"}, e.installer.packages)
}

func TestSearchSkill_InstallFailure(t *testing.T) {
	e := newEnv(t)
	e.finder.results = []registry.Result{{Package: "o/r@x", URL: "https://skills.sh/o/r/x", Installs: 1}}
	e.installer.err = errors.Mark(errors.New("failed to clone o/r"), errors.ErrExternalProcess)

	out := call(t, e.h.SearchSkill, map[string]any{"query": "x"})
	assert.Equal(t, true, out["success"])
	install := out["install"].(map[string]any)
	assert.Equal(t, false, install["installed"])
	assert.Equal(t, "failed to clone o/r", install["error"])
	assert.Contains(t, out["suggestion"], "https://skills.sh/o/r/x")
}

type failingCloner struct {
	err  error
	urls []string
}

func (c *failingCloner) Clone(_ context.Context, url, _ string, _ git.CloneOptions) error {
	c.urls = append(c.urls, url)
	return c.err
}

func TestSearchSkill_InstallFailureCarriesGitOutput(t *testing.T) {
	e := newEnv(t)
	cloner := &failingCloner{err: errors.WithDetail(
		errors.Mark(errors.New("git clone: exit status 128"), errors.ErrExternalProcess),
		"fatal: repository 'https://github.com/o/r.git/' not found",
	)}
	installer := registry.NewInstaller(e.repo, registry.InstallerOptions{
		Cloner:  cloner,
		Scratch: t.TempDir(),
		Logger:  logging.ForTest(t),
	})
	h := NewHandlers(Deps{Library: e.repo, Finder: e.finder, Installer: installer, Logger: logging.ForTest(t)})
	e.finder.results = []registry.Result{{Package: "o/r@x", URL: "https://skills.sh/o/r/x", Installs: 1}}

	out := call(t, h.SearchSkill, map[string]any{"query": "x"})
	assert.Equal(t, true, out["success"])
	install := out["install"].(map[string]any)
	assert.Equal(t, false, install["installed"])
	assert.Contains(t, install["error"], "failed to clone o/r")
	assert.Contains(t, install["error"], "fatal: repository 'https://github.com/o/r.git/' not found")
	assert.Len(t, cloner.urls, 1)
	assert.False(t, e.repo.Exists("x"))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "boom", errorText(errors.New("boom")))

	err := errors.WithDetail(errors.New("git clone: exit status 128"), "fatal: bad ref\n")
	err = errors.WithDetail(err, "  ")
	assert.Equal(t, "git clone: exit status 128: fatal: bad ref", errorText(err))
}
