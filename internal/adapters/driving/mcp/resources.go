package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Ripple resources.
	uriScheme = "ripple://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "snapshot",
		Name:        "snapshot",
		Description: "JSON snapshot of every session, event and asset",
		MIMEType:    contentTypeJSON,
	}, s.handleSnapshotResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "Standalone HTML metrics report",
		MIMEType:    s.ports.Export.ReportContentType(),
	}, s.handleReportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "assets/{assetId}",
		Name:        "asset-text",
		Description: "Full text of a stored asset",
		MIMEType:    "text/plain",
	}, s.handleAssetResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "enrichment/{assetId}",
		Name:        "asset-enrichment",
		Description: "Keywords, metaphors, sections, strategies and the latest expansion of a stored asset",
		MIMEType:    contentTypeJSON,
	}, s.handleEnrichmentResource)
}

// EnrichmentOutput is the body of the asset-enrichment resource.
type EnrichmentOutput struct {
	AssetID    int64             `json:"asset_id"`
	Enrichment domain.Enrichment `json:"enrichment"`
	Expansion  *domain.Expansion `json:"expansion,omitempty"`
}

// handleSnapshotResource returns the JSON snapshot.
func (s *Server) handleSnapshotResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot, err := s.ports.Export.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: contentTypeJSON,
			Text:     string(data),
		}},
	}, nil
}

// handleReportResource returns the HTML report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var buf bytes.Buffer
	if err := s.ports.Export.WriteReport(ctx, &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: s.ports.Export.ReportContentType(),
			Text:     buf.String(),
		}},
	}, nil
}

// handleAssetResource returns the text of a single asset.
func (s *Server) handleAssetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractAssetID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	asset, err := s.ports.Library.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     asset.RawText,
		}},
	}, nil
}

// handleEnrichmentResource returns the enrichment of a single asset with
// its newest expansion, if any.
func (s *Server) handleEnrichmentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractID(req.Params.URI, uriScheme+"enrichment/")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	asset, err := s.ports.Library.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	out := EnrichmentOutput{AssetID: asset.ID, Enrichment: asset.Enrichment}
	exp, err := s.ports.Library.Expansion(ctx, id)
	switch {
	case err == nil:
		out.Expansion = exp
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("getting expansion: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling enrichment: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: contentTypeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractAssetID extracts the asset ID from a URI like ripple://assets/{assetId}.
func extractAssetID(uri string) (int64, bool) {
	return extractID(uri, uriScheme+"assets/")
}

// extractID parses the positive id that follows prefix in uri.
func extractID(uri, prefix string) (int64, bool) {
	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
