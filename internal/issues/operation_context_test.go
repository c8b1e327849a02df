package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationContextString(t *testing.T) {
	tests := []struct {
		name     string
		ctx      OperationContext
		expected string
	}{
		{
			name:     "empty context",
			ctx:      OperationContext{},
			expected: "",
		},
		{
			name: "operation with operationId",
			ctx: OperationContext{
				Method:      "get",
				Path:        "/pets/{id}",
				OperationID: "getPetById",
			},
			expected: "(operationId: getPetById)",
		},
		{
			name: "operation without operationId",
			ctx: OperationContext{
				Method: "post",
				Path:   "/pets",
			},
			expected: "(post /pets)",
		},
		{
			name: "path-level context",
			ctx: OperationContext{
				Path: "/pets",
			},
			expected: "(path: /pets)",
		},
		{
			name: "reusable component",
			ctx: OperationContext{
				IsReusableComponent: true,
			},
			expected: "(component)",
		},
		{
			name: "component referenced from an operation",
			ctx: OperationContext{
				Method:              "get",
				Path:                "/pets",
				OperationID:         "listPets",
				IsReusableComponent: true,
			},
			expected: "(operationId: listPets)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.String())
		})
	}
}

func TestOperationContextIsEmpty(t *testing.T) {
	assert.True(t, OperationContext{}.IsEmpty())
	assert.False(t, OperationContext{Method: "get"}.IsEmpty())
	assert.False(t, OperationContext{Path: "/pets"}.IsEmpty())
	assert.False(t, OperationContext{OperationID: "listPets"}.IsEmpty())
	assert.False(t, OperationContext{IsReusableComponent: true}.IsEmpty())
}
