package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// SaveConversationTurn persists one user/assistant exchange, tagging it
// with contextTags for later recall ("what did I ask about earlier").
// Grounded on persistent_memory.py's save_conversation_turn, which folds
// the turn's executions into the same record rather than a join table.
func (m *Module) SaveConversationTurn(ctx context.Context, turn types.ConversationMemory) (string, error) {
	if turn.TurnID == "" {
		turn.TurnID = uuid.NewString()
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	value := map[string]any{
		"turn_id":            turn.TurnID,
		"user_message":       turn.UserMessage,
		"assistant_response": turn.AssistantResponse,
		"execution_history":  turn.ExecutionHistory,
		"context_tags":       turn.ContextTags,
		"session_id":         turn.SessionID,
	}

	tags := append([]string{"conversation"}, turn.ContextTags...)
	if turn.SessionID != "" {
		tags = append(tags, "session:"+turn.SessionID)
	}

	return m.CreateMemory(ctx, types.CategoryConversations, turn.TurnID, value, "conversation_turn", CreateOpts{Tags: tags})
}

// GetConversationHistory returns up to limit conversation turns, newest
// first. limit <= 0 means "all".
func (m *Module) GetConversationHistory(ctx context.Context, limit int) ([]types.ConversationMemory, error) {
	entries, err := m.GetMemoriesByCategory(ctx, types.CategoryConversations)
	if err != nil {
		return nil, err
	}

	turns := make([]types.ConversationMemory, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, conversationFromEntry(e))
	}
	sort.Slice(turns, func(i, j int) bool { return turns[i].Timestamp.After(turns[j].Timestamp) })

	if limit > 0 && len(turns) > limit {
		turns = turns[:limit]
	}
	return turns, nil
}

// GetRecentContext returns the last n turns in chronological order
// (oldest first), the shape a prompt wants them folded into.
func (m *Module) GetRecentContext(ctx context.Context, n int) ([]types.ConversationMemory, error) {
	turns, err := m.GetConversationHistory(ctx, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func conversationFromEntry(e types.MemoryEntry) types.ConversationMemory {
	turn := types.ConversationMemory{
		TurnID:    e.Key,
		Timestamp: e.Timestamp,
	}
	if v, ok := e.Value["user_message"].(string); ok {
		turn.UserMessage = v
	}
	if v, ok := e.Value["assistant_response"].(string); ok {
		turn.AssistantResponse = v
	}
	if v, ok := e.Value["session_id"].(string); ok {
		turn.SessionID = v
	}
	if v, ok := e.Value["context_tags"].([]any); ok {
		for _, tag := range v {
			if s, ok := tag.(string); ok {
				turn.ContextTags = append(turn.ContextTags, s)
			}
		}
	}
	if raw, ok := e.Value["execution_history"].([]any); ok {
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				turn.ExecutionHistory = append(turn.ExecutionHistory, executionMemoryFromMap(m))
			}
		}
	}
	return turn
}
