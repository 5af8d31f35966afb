package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/registry"
)

type searchInput struct {
	TaskContext    string `json:"task_context,omitempty" jsonschema_description:"What the current task is about"`
	CandidateSkill string `json:"candidate_skill,omitempty" jsonschema_description:"Name of a skill that might cover the task"`
	Query          string `json:"query,omitempty" jsonschema_description:"Search keywords; defaults to candidate_skill or task_context"`
}

type localSkill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

type installOutcome struct {
	Package   string `json:"package"`
	Installed bool   `json:"installed"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

type searchResponse struct {
	Success    bool              `json:"success"`
	Query      string            `json:"query"`
	Local      *localSkill       `json:"local,omitempty"`
	Results    []registry.Result `json:"results"`
	Install    *installOutcome   `json:"install,omitempty"`
	Suggestion string            `json:"suggestion"`
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// SearchSkill handles search_skill.
func (h *Handlers) SearchSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in searchInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	query := firstNonBlank(in.Query, in.CandidateSkill, in.TaskContext)
	if query == "" {
		return fail(errors.Wrap(errors.ErrInvalidInput, "one of query, candidate_skill or task_context is required"))
	}
	task := firstNonBlank(in.TaskContext, query)

	if name := strings.TrimSpace(in.CandidateSkill); name != "" && h.lib.Exists(name) {
		s, err := h.lib.Get(ctx, name)
		if err == nil {
			return reply(searchResponse{
				Success: true,
				Query:   query,
				Local:   &localSkill{Name: s.Name, Description: s.Description, Path: s.Path},
				Results: []registry.Result{},
				Suggestion: fmt.Sprintf("Personal skill %q already covers this. Read it with get_skill and follow its instructions for: %s",
					s.Name, task),
			})
		}
		h.logger.DebugContext(ctx, "candidate skill unreadable, searching instead", "name", name, "error", err)
	}

	results := h.finder.Search(ctx, query)
	if len(results) == 0 {
		return reply(searchResponse{
			Success: true,
			Query:   query,
			Results: []registry.Result{},
			Suggestion: "No public skill matched. Solve the task directly, then call review_task " +
				"so the solution can be saved as a personal skill.",
		})
	}

	top := results[0]
	outcome := &installOutcome{Package: top.Package}
	resp := searchResponse{Success: true, Query: query, Results: results, Install: outcome}

	inst, err := h.installer.Install(ctx, top.Package)
	if err != nil {
		h.logger.WarnContext(ctx, "installing public skill failed", "package", top.Package, "error", err)
		outcome.Error = errorText(err)
		resp.Suggestion = fmt.Sprintf("Could not install %s. Review it at %s, or solve the task directly and call review_task afterwards.",
			top.Package, top.URL)
		return reply(resp)
	}

	outcome.Installed = true
	outcome.Path = inst.Path
	resp.Suggestion = fmt.Sprintf("Installed %s as personal skill %q. Read it with get_skill(%q) and apply it to: %s",
		top.Package, inst.Package.Skill, inst.Package.Skill, task)
	return reply(resp)
}
