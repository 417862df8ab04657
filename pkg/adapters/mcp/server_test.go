package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := memory.NewCatalog(
		[]*domain.State{
			{ID: "idle", Bounds: domain.Rect{Width: 10, Height: 10}},
			{ID: "busy", Bounds: domain.Rect{X: 20, Width: 10, Height: 10}},
		},
		[]*domain.Transition{{ID: "start", SourceID: "idle", TargetID: "busy"}},
	)
	require.NoError(t, err)
	return NewServer(afterglow.New(catalog), nil)
}

func TestApplyEvent_ToolArguments(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	// Tool arguments arrive as decoded JSON: arrays are []any, numbers float64.
	_, err := s.handleApplyEvent(ctx, req, map[string]interface{}{
		"type":   "configuration",
		"states": []any{"idle"},
	})
	require.NoError(t, err)

	_, err = s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "transition", "transition": "start"})
	require.NoError(t, err)

	snap, err := s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "history_size", "size": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.HistorySize)
	assert.Equal(t, []string{"idle"}, snap.ActiveConfiguration)
	assert.Equal(t, []string{"start"}, snap.Transitions)

	_, err = s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "configuration", "states": []any{"ghost"}})
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	_, err = s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "running"})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "history_size", "size": 2.5})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	assert.Equal(t, 3, s.tracker.(*afterglow.Tracker).HistorySize(), "a fractional size is rejected, not truncated")
}

func TestGetActiveness(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleApplyEvent(ctx, req, map[string]interface{}{"type": "configuration", "states": []any{"idle"}})
	require.NoError(t, err)

	resp, err := s.handleGetActiveness(ctx, req, map[string]interface{}{"state_id": "idle"})
	require.NoError(t, err)
	assert.Equal(t, ActivenessResponse{ID: "idle", Kind: "state", Activeness: 1}, resp)

	resp, err = s.handleGetActiveness(ctx, req, map[string]interface{}{"transition_id": "start"})
	require.NoError(t, err)
	assert.Zero(t, resp.Activeness)

	_, err = s.handleGetActiveness(ctx, req, map[string]interface{}{})
	assert.Error(t, err)
	_, err = s.handleGetActiveness(ctx, req, map[string]interface{}{"state_id": "idle", "transition_id": "start"})
	assert.Error(t, err)
	_, err = s.handleGetActiveness(ctx, req, map[string]interface{}{"state_id": "ghost"})
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestGetActiveRegionAndSnapshotResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleApplyEvent(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"type":   "configuration",
		"states": []any{"idle", "busy"},
	})
	require.NoError(t, err)

	region, err := s.handleGetActiveRegion(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Rect{Width: 30, Height: 10}, region)

	contents, err := s.readSnapshot(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, SnapshotURI, text.URI)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text.Text), &snap))
	assert.Equal(t, []string{"busy", "idle"}, snap.ActiveConfiguration)
}

func TestNewServer_DefaultLogger(t *testing.T) {
	s := newTestServer(t)
	require.NotNil(t, s.logger)

	assert.NotPanics(t, func() {
		_, err := s.handleApplyEvent(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"type": "bogus"})
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})
}
