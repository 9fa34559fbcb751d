package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	Name     string  `validate:"required,nonblank"`
	Deadline string  `validate:"omitempty,deadline"`
	Moved    *string `validate:"omitempty,deadline"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		in    project
		field string
	}{
		{"iso date", project{Name: "Raft", Deadline: "2025-07-01"}, ""},
		{"day first", project{Name: "Raft", Deadline: "01/07/2025"}, ""},
		{"month first dashes", project{Name: "Raft", Deadline: "07-01-2025"}, ""},
		{"no deadline", project{Name: "Raft"}, ""},
		{"free text deadline", project{Name: "Raft", Deadline: "next spring"}, "Deadline"},
		{"blank name", project{Name: "   "}, "Name"},
		{"pointer deadline", project{Name: "Raft", Moved: str("2025/07/01")}, "Moved"},
		{"pointer deadline ok", project{Name: "Raft", Moved: str("2025-07-01")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
