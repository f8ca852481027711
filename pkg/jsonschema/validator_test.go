package jsonschema

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/restkit/format"
)

const (
	postSchema = `{
		"type": "object",
		"required": ["userId", "id", "title"],
		"properties": {
			"userId": {"type": "integer"},
			"id": {"type": "integer", "minimum": 1},
			"title": {"type": "string", "minLength": 1},
			"body": {"type": "string"}
		}
	}`

	usersSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["id", "email"],
			"properties": {
				"id": {"type": "integer"},
				"email": {"type": "string", "pattern": "@"},
				"age": {"type": "integer", "minimum": 18}
			}
		}
	}`
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		schema  string
		valid   bool
		wantErr bool
	}{
		{
			name:   "post matches",
			body:   `{"userId":1,"id":101,"title":"foo","body":"bar"}`,
			schema: postSchema,
			valid:  true,
		},
		{
			name:   "post created without id",
			body:   `{"userId":1,"title":"foo"}`,
			schema: postSchema,
		},
		{
			name:   "userId sent as string",
			body:   `{"userId":"1","id":1,"title":"foo"}`,
			schema: postSchema,
		},
		{
			name:   "user list matches",
			body:   `[{"id":1,"email":"sincere@april.biz","age":31},{"id":2,"email":"shanna@melissa.tv"}]`,
			schema: usersSchema,
			valid:  true,
		},
		{
			name:   "empty user list",
			body:   `[]`,
			schema: usersSchema,
			valid:  true,
		},
		{
			name:   "object where list expected",
			body:   `{"id":1,"email":"sincere@april.biz"}`,
			schema: usersSchema,
		},
		{
			name:    "unknown schema type",
			body:    `{}`,
			schema:  `{"type": "record"}`,
			wantErr: true,
		},
		{
			name:    "truncated schema",
			body:    `{}`,
			schema:  `{"type":`,
			wantErr: true,
		},
		{
			name:    "html error page",
			body:    `<html><body>502 Bad Gateway</body></html>`,
			schema:  postSchema,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := Validate(tt.body, tt.schema)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, valid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		body     string
		contains []string
	}{
		{
			name:     "missing required fields",
			schema:   postSchema,
			body:     `{"userId":1}`,
			contains: []string{"missing properties", "id", "title"},
		},
		{
			name:     "wrong type at member",
			schema:   postSchema,
			body:     `{"userId":"1","id":1,"title":"foo"}`,
			contains: []string{"validation error at /userId"},
		},
		{
			name:     "violations in one element",
			schema:   usersSchema,
			body:     `[{"id":1,"email":"sincere@april.biz"},{"id":2,"email":"nobody","age":16}]`,
			contains: []string{"validation error at /1/email", "validation error at /1/age"},
		},
		{
			name:     "root type mismatch",
			schema:   usersSchema,
			body:     `{"users":[]}`,
			contains: []string{"validation error at /:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, err := Compile(tt.schema)
			require.NoError(t, err)

			err = validator.Validate(tt.body)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
			require.NotEmpty(t, verrs)

			for _, want := range tt.contains {
				assert.Contains(t, verrs.Error(), want)
			}
		})
	}
}

func TestValidator_NonJSONBody(t *testing.T) {
	validator, err := Compile(postSchema)
	require.NoError(t, err)

	for _, body := range []string{"", "<html></html>", "OK", `{"userId":1,`} {
		err := validator.Validate(body)
		var perr *format.JSONParseError
		assert.True(t, errors.As(err, &perr), "body %q: got %T", body, err)
	}
}

func TestValidator_ConcurrentUse(t *testing.T) {
	validator, err := Compile(usersSchema)
	require.NoError(t, err)

	good := `[{"id":1,"email":"sincere@april.biz"}]`
	bad := `[{"id":1}]`

	var wg sync.WaitGroup
	failures := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := validator.Validate(good); err != nil {
				failures <- err
			}
		}()
		go func() {
			defer wg.Done()
			if err := validator.Validate(bad); err == nil {
				failures <- errors.New("invalid body accepted")
			}
		}()
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		t.Error(err)
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12`)
	assert.Error(t, err)
}
