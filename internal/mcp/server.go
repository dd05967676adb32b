// Package mcp exposes read-only Patchwork queries as MCP tools so
// editor agents can inspect patches without shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/getpatchwork/pwclient/internal/api"
	"github.com/getpatchwork/pwclient/internal/logging"
)

// Server wraps the MCP SDK server around one configured Patchwork
// backend.
type Server struct {
	MCPServer *sdkmcp.Server

	client  api.API
	project string
}

// NewServer creates an MCP server whose tools query the given backend.
// project is the default project linkname applied to patch listings
// when the caller does not name one.
func NewServer(client api.API, project, version string) *Server {
	s := &Server{client: client, project: project}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "pwclient", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "patch_list",
		Description: "List patches in a project, optionally filtered by state, submitter, delegate, or name substring.",
	}, s.handlePatchList)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "patch_info",
		Description: "Get the full metadata of one patch by ID.",
	}, s.handlePatchInfo)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "patch_diff",
		Description: "Get the raw diff content of one patch by ID.",
	}, s.handlePatchDiff)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "project_list",
		Description: "List projects on the server, optionally filtered by a search string.",
	}, s.handleProjectList)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "check_list",
		Description: "List CI checks attached to one patch.",
	}, s.handleCheckList)
}

// --- Tool input/output types ---

type patchListInput struct {
	Project   string `json:"project,omitempty" jsonschema:"project linkname (defaults to the configured project)"`
	State     string `json:"state,omitempty" jsonschema:"state name filter (e.g. New, Accepted)"`
	Submitter string `json:"submitter,omitempty" jsonschema:"submitter name or email substring"`
	Delegate  string `json:"delegate,omitempty" jsonschema:"delegate name or email substring"`
	Name      string `json:"name,omitempty" jsonschema:"patch name substring"`
	Hash      string `json:"hash,omitempty" jsonschema:"patch content hash"`
	MaxCount  int    `json:"max_count,omitempty" jsonschema:"limit to the first n patches (negative for the last n)"`
}

type patchSummary struct {
	ID        int    `json:"id"`
	State     string `json:"state"`
	Name      string `json:"name"`
	Submitter string `json:"submitter,omitempty"`
	Delegate  string `json:"delegate,omitempty"`
}

type patchListOutput struct {
	Patches []patchSummary `json:"patches"`
	Total   int            `json:"total"`
}

type patchInfoInput struct {
	ID int `json:"id" jsonschema:"patch ID"`
}

type patchInfoOutput struct {
	Found bool              `json:"found"`
	Patch map[string]string `json:"patch,omitempty"`
}

type patchDiffInput struct {
	ID int `json:"id" jsonschema:"patch ID"`
}

type patchDiffOutput struct {
	Diff string `json:"diff"`
}

type projectListInput struct {
	Search string `json:"search,omitempty" jsonschema:"substring to match against project names"`
}

type projectEntry struct {
	ID       int    `json:"id"`
	LinkName string `json:"link_name"`
	Name     string `json:"name"`
}

type projectListOutput struct {
	Projects []projectEntry `json:"projects"`
}

type checkListInput struct {
	PatchID int `json:"patch_id" jsonschema:"patch ID whose checks to list"`
}

type checkEntry struct {
	ID          int    `json:"id"`
	Context     string `json:"context"`
	State       string `json:"state"`
	TargetURL   string `json:"target_url,omitempty"`
	Description string `json:"description,omitempty"`
}

type checkListOutput struct {
	Checks []checkEntry `json:"checks"`
}

// --- Tool handlers ---

func (s *Server) handlePatchList(ctx context.Context, _ *sdkmcp.CallToolRequest, input patchListInput) (*sdkmcp.CallToolResult, patchListOutput, error) {
	project := input.Project
	if project == "" {
		project = s.project
	}

	patches, err := s.client.PatchList(ctx, api.PatchFilter{
		Project:   project,
		State:     input.State,
		Submitter: input.Submitter,
		Delegate:  input.Delegate,
		Name:      input.Name,
		Hash:      input.Hash,
		MaxCount:  input.MaxCount,
	})
	if err != nil {
		return nil, patchListOutput{}, fmt.Errorf("patch_list: %w", err)
	}

	out := patchListOutput{Patches: make([]patchSummary, 0, len(patches)), Total: len(patches)}
	for _, p := range patches {
		out.Patches = append(out.Patches, patchSummary{
			ID:        p.ID,
			State:     p.State,
			Name:      p.Name,
			Submitter: p.Submitter,
			Delegate:  p.Delegate,
		})
	}
	logging.New("mcp").Debug("patch_list served", "project", project, "count", out.Total)
	return nil, out, nil
}

func (s *Server) handlePatchInfo(ctx context.Context, _ *sdkmcp.CallToolRequest, input patchInfoInput) (*sdkmcp.CallToolResult, patchInfoOutput, error) {
	patch, err := s.client.PatchGet(ctx, input.ID)
	if err != nil {
		return nil, patchInfoOutput{}, fmt.Errorf("patch_info: %w", err)
	}
	if patch == nil {
		return nil, patchInfoOutput{Found: false}, nil
	}

	fields := map[string]string{}
	for _, f := range patch.Fields() {
		fields[f.Key] = f.Value
	}
	return nil, patchInfoOutput{Found: true, Patch: fields}, nil
}

func (s *Server) handlePatchDiff(ctx context.Context, _ *sdkmcp.CallToolRequest, input patchDiffInput) (*sdkmcp.CallToolResult, patchDiffOutput, error) {
	diff, err := s.client.PatchGetDiff(ctx, input.ID)
	if err != nil {
		return nil, patchDiffOutput{}, fmt.Errorf("patch_diff: %w", err)
	}
	return nil, patchDiffOutput{Diff: diff}, nil
}

func (s *Server) handleProjectList(ctx context.Context, _ *sdkmcp.CallToolRequest, input projectListInput) (*sdkmcp.CallToolResult, projectListOutput, error) {
	projects, err := s.client.ProjectList(ctx, input.Search)
	if err != nil {
		return nil, projectListOutput{}, fmt.Errorf("project_list: %w", err)
	}

	out := projectListOutput{Projects: make([]projectEntry, 0, len(projects))}
	for _, p := range projects {
		out.Projects = append(out.Projects, projectEntry{ID: p.ID, LinkName: p.LinkName, Name: p.Name})
	}
	return nil, out, nil
}

func (s *Server) handleCheckList(ctx context.Context, _ *sdkmcp.CallToolRequest, input checkListInput) (*sdkmcp.CallToolResult, checkListOutput, error) {
	if input.PatchID == 0 {
		return nil, checkListOutput{}, fmt.Errorf("patch_id is required")
	}

	checks, err := s.client.CheckList(ctx, input.PatchID, "")
	if err != nil {
		return nil, checkListOutput{}, fmt.Errorf("check_list: %w", err)
	}

	out := checkListOutput{Checks: make([]checkEntry, 0, len(checks))}
	for _, ch := range checks {
		out.Checks = append(out.Checks, checkEntry{
			ID:          ch.ID,
			Context:     ch.Context,
			State:       string(ch.State),
			TargetURL:   ch.TargetURL,
			Description: ch.Description,
		})
	}
	return nil, out, nil
}
