package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"statemap/internal/statemap"
	"statemap/internal/store"
)

type RecordStateInput struct {
	Entity string `json:"entity" jsonschema:"entity name"`
	State  string `json:"state" jsonschema:"state name the entity entered"`
	Time   string `json:"time" jsonschema:"absolute time in nanoseconds, as a decimal string"`
	Tag    string `json:"tag,omitempty" jsonschema:"optional tag for this transition"`
}

type RecordStateOutput struct {
	Recorded bool `json:"recorded"`
}

type SetStateColorInput struct {
	State string `json:"state" jsonschema:"state name"`
	Color string `json:"color" jsonschema:"display color, e.g. #2e7d32"`
}

type SetStateColorOutput struct{}

type ListEntitiesInput struct{}

type EntitySummaryOutput struct {
	Name        string `json:"name"`
	Transitions int    `json:"transitions"`
	FirstTime   string `json:"first_time"`
	LastTime    string `json:"last_time"`
}

type ListEntitiesOutput struct {
	Entities []EntitySummaryOutput `json:"entities"`
}

type EmitStatemapInput struct{}

type EmitStatemapOutput struct {
	Statemap string `json:"statemap" jsonschema:"protocol records as JSON lines"`
}

type ResetStatemapInput struct{}

type ResetStatemapOutput struct{}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "record_state",
		Description: "Record that an entity entered a state at a point in time",
	}, s.handleRecordState)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "set_state_color",
		Description: "Assign a display color to a state name",
	}, s.handleSetStateColor)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List recorded entities with transition counts and time ranges",
	}, s.handleListEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "emit_statemap",
		Description: "Emit the recorded data as statemap protocol records",
	}, s.handleEmitStatemap)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "reset_statemap",
		Description: "Discard all recorded transitions and colors",
	}, s.handleResetStatemap)
}

func (s *Server) handleRecordState(ctx context.Context, req *sdk.CallToolRequest, input RecordStateInput) (*sdk.CallToolResult, RecordStateOutput, error) {
	if input.Entity == "" {
		return nil, RecordStateOutput{}, fmt.Errorf("entity is required")
	}
	if input.State == "" {
		return nil, RecordStateOutput{}, fmt.Errorf("state is required")
	}
	time, err := strconv.ParseUint(input.Time, 10, 64)
	if err != nil {
		return nil, RecordStateOutput{}, fmt.Errorf("time must be a decimal nanosecond string")
	}

	err = s.db.AppendTransition(ctx, store.Transition{
		Entity: input.Entity,
		State:  input.State,
		Tag:    input.Tag,
		Time:   time,
	})
	if err != nil {
		return nil, RecordStateOutput{}, err
	}
	return nil, RecordStateOutput{Recorded: true}, nil
}

func (s *Server) handleSetStateColor(ctx context.Context, req *sdk.CallToolRequest, input SetStateColorInput) (*sdk.CallToolResult, SetStateColorOutput, error) {
	if input.State == "" {
		return nil, SetStateColorOutput{}, fmt.Errorf("state is required")
	}
	if strings.TrimSpace(input.Color) == "" {
		return nil, SetStateColorOutput{}, fmt.Errorf("color is required")
	}
	if err := s.db.SetStateColor(ctx, input.State, input.Color); err != nil {
		return nil, SetStateColorOutput{}, err
	}
	return nil, SetStateColorOutput{}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	entities, err := s.db.ListEntities(ctx)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}

	output := make([]EntitySummaryOutput, 0, len(entities))
	for _, entity := range entities {
		output = append(output, EntitySummaryOutput{
			Name:        entity.Name,
			Transitions: entity.Transitions,
			FirstTime:   strconv.FormatUint(entity.FirstTime, 10),
			LastTime:    strconv.FormatUint(entity.LastTime, 10),
		})
	}
	return nil, ListEntitiesOutput{Entities: output}, nil
}

func (s *Server) handleEmitStatemap(ctx context.Context, req *sdk.CallToolRequest, input EmitStatemapInput) (*sdk.CallToolResult, EmitStatemapOutput, error) {
	sm := statemap.New(s.cfg.Title, s.cfg.Host)
	for _, entry := range s.cfg.Colors {
		if err := sm.SetStateColor(entry.State, entry.Color); err != nil {
			return nil, EmitStatemapOutput{}, err
		}
	}
	if err := store.Load(ctx, s.db, sm); err != nil {
		return nil, EmitStatemapOutput{}, err
	}

	emitter, err := sm.Emit()
	if err != nil {
		return nil, EmitStatemapOutput{}, err
	}
	var out strings.Builder
	if _, err := emitter.WriteTo(&out); err != nil {
		return nil, EmitStatemapOutput{}, err
	}
	return nil, EmitStatemapOutput{Statemap: out.String()}, nil
}

func (s *Server) handleResetStatemap(ctx context.Context, req *sdk.CallToolRequest, input ResetStatemapInput) (*sdk.CallToolResult, ResetStatemapOutput, error) {
	if err := s.db.Reset(ctx); err != nil {
		return nil, ResetStatemapOutput{}, err
	}
	return nil, ResetStatemapOutput{}, nil
}
