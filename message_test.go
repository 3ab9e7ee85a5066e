package agentlab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestMessageConstructors(t *testing.T) {
	t.Run("System", func(t *testing.T) {
		msg := System("You are a support agent.")
		assert.Equal(t, RoleSystem, msg.Role)
		assert.Equal(t, "You are a support agent.", msg.Content)
		assert.Empty(t, msg.ToolCalls)
	})

	t.Run("User", func(t *testing.T) {
		msg := User("Where is my order?")
		assert.Equal(t, RoleUser, msg.Role)
		assert.Equal(t, "Where is my order?", msg.Content)
	})
}

func TestGenerateMessageID(t *testing.T) {
	t.Run("has msg prefix", func(t *testing.T) {
		id := GenerateMessageID()
		assert.True(t, strings.HasPrefix(id, "msg-"))
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := GenerateMessageID()
			assert.False(t, seen[id], "duplicate id: %s", id)
			seen[id] = true
		}
	})
}

func TestUsageAdd(t *testing.T) {
	var total Usage
	total.Add(Usage{InputTokens: 10, OutputTokens: 20})
	total.Add(Usage{InputTokens: 5, OutputTokens: 7})

	assert.Equal(t, 15, total.InputTokens)
	assert.Equal(t, 27, total.OutputTokens)
}
