package validation_test

import (
	"strings"
	"testing"

	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submission struct {
	Name    string `validate:"required,min=2,max=100,person_name"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10,max=1000"`
}

func validSubmission() submission {
	return submission{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Message: "Hello, this is a ten-plus char message.",
	}
}

func TestValidSubmissionPasses(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(validSubmission()))
}

func TestSingleFieldViolations(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(*submission)
		wantField string
	}{
		{"name too short", func(s *submission) { s.Name = "J" }, "name"},
		{"name too long", func(s *submission) { s.Name = strings.Repeat("a", 101) }, "name"},
		{"name with digits", func(s *submission) { s.Name = "Jane D03" }, "name"},
		{"name with symbols", func(s *submission) { s.Name = "Jane <script>" }, "name"},
		{"name missing", func(s *submission) { s.Name = "" }, "name"},
		{"email malformed", func(s *submission) { s.Email = "not-an-email" }, "email"},
		{"email missing", func(s *submission) { s.Email = "" }, "email"},
		{"message too short", func(s *submission) { s.Message = "too short" }, "message"},
		{"message too long", func(s *submission) { s.Message = strings.Repeat("x", 1001) }, "message"},
		{"message missing", func(s *submission) { s.Message = "" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			err := validation.Expand(v.Struct(sub))
			require.Error(t, err)

			var vErr *validation.Error
			require.ErrorAs(t, err, &vErr)
			assert.Len(t, vErr.Fields, 1, "exactly the violated field should be reported")
			assert.Contains(t, vErr.Fields, tt.wantField)
		})
	}
}

func TestMultipleViolationsReportEveryField(t *testing.T) {
	v := validation.New()

	err := validation.Expand(v.Struct(submission{
		Name:    "J",
		Email:   "nope",
		Message: "short",
	}))
	require.Error(t, err)

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "message")
}

func TestNameAllowsHyphenAndApostrophe(t *testing.T) {
	v := validation.New()

	for _, name := range []string{"Mary-Jane O'Brien", "Núñez García", "D'Artagnan"} {
		sub := validSubmission()
		sub.Name = name
		assert.NoError(t, v.Struct(sub), "name %q should be accepted", name)
	}
}

func TestExpandPassesThroughNonValidatorErrors(t *testing.T) {
	assert.NoError(t, validation.Expand(nil))

	err := assert.AnError
	assert.Equal(t, err, validation.Expand(err))
}
