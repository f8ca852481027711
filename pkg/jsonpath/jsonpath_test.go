package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	postBody  = `{"userId":1,"id":1,"title":"sunt aut facere","body":"quia et suscipit"}`
	usersBody = `[{"id":1,"name":"Leanne Graham","address":{"city":"Gwenborough","geo":{"lat":"-37.3159"}},"company":{"name":"Romaguera-Crona"}},` +
		`{"id":2,"name":"Ervin Howell","address":{"city":"Wisokyburgh"}}]`
	catalogBody = `{"data":{"items":[{"sku":"A-1","price":9.5,"tags":["new","sale"]},{"sku":"B-2","price":12,"tags":[]}]},` +
		`"meta":{"next":null,"total":2},"first.name":"Ada","x@id":"7","weird key":true}`
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{"string member", postBody, "$.title", "sunt aut facere"},
		{"number member", postBody, "$.userId", "1"},
		{"whole document", postBody, "$", postBody},
		{"path without root", postBody, "body", "quia et suscipit"},
		{"index into top-level array", usersBody, "$[0].name", "Leanne Graham"},
		{"nested object", usersBody, "$[1].address.city", "Wisokyburgh"},
		{"numeric-looking string", usersBody, "$[0].address.geo.lat", "-37.3159"},
		{"object as raw JSON", usersBody, "$[0].company", `{"name":"Romaguera-Crona"}`},
		{"wildcard member", usersBody, "$[*].id", "[1,2]"},
		{"wildcard alone", usersBody, "$[*]", usersBody},
		{"wildcard in nested array", catalogBody, "$.data.items[*].sku", `["A-1","B-2"]`},
		{"trailing wildcard", catalogBody, "$.data.items[0].tags[*]", `["new","sale"]`},
		{"array as raw JSON", catalogBody, "$.data.items[0].tags", `["new","sale"]`},
		{"empty array", catalogBody, "$.data.items[1].tags", `[]`},
		{"integer price", catalogBody, "$.data.items[1].price", "12"},
		{"decimal price", catalogBody, "$.data.items[0].price", "9.5"},
		{"null", catalogBody, "$.meta.next", "null"},
		{"quoted key with dot", catalogBody, `$["first.name"]`, "Ada"},
		{"quoted key with at sign", catalogBody, "$['x@id']", "7"},
		{"quoted key with space", catalogBody, "$['weird key']", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.body, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"index past the end", catalogBody, "$.data.items[5].sku"},
		{"missing member", postBody, "$.author"},
		{"empty body", "", "$.title"},
		{"html body", "<html><body>Bad Gateway</body></html>", "$.title"},
		{"unterminated bracket", catalogBody, "$.data.items[0"},
		{"empty path", postBody, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.body, tt.path)
			assert.Error(t, err)
		})
	}
}

func TestExtractAll(t *testing.T) {
	values, err := ExtractAll(usersBody, map[string]string{
		"first": "$[0].name",
		"ids":   "$[*].id",
		"city":  "$[1].address.city",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"first": "Leanne Graham",
		"ids":   "[1,2]",
		"city":  "Wisokyburgh",
	}, values)
}

func TestExtractAll_PartialFailure(t *testing.T) {
	values, err := ExtractAll(postBody, map[string]string{
		"title":  "$.title",
		"author": "$.author",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author")
	assert.NotContains(t, err.Error(), "title:")
	assert.Equal(t, map[string]string{"title": "sunt aut facere"}, values, "resolved values are still returned")
}

func TestExtractAll_Errors(t *testing.T) {
	_, err := ExtractAll("", map[string]string{"id": "$.id"})
	assert.Error(t, err)

	_, err = ExtractAll(postBody, nil)
	assert.Error(t, err)
}

func TestToGJSONPath(t *testing.T) {
	tests := []struct {
		jsonPath  string
		gjsonPath string
	}{
		{"$", "@this"},
		{"$[*]", "@this"},
		{"$.title", "title"},
		{"title", "title"},
		{"$['title']", "title"},
		{`$["first.name"]`, `first\.name`},
		{"$['x@id']", `x\@id`},
		{"$['a|b']", `a\|b`},
		{"$[0].address.city", "0.address.city"},
		{"$[*].id", "#.id"},
		{"$.data.*.sku", "data.#.sku"},
		{"$.data.items[*].tags[*]", "data.items.#.tags"},
	}

	for _, tt := range tests {
		t.Run(tt.jsonPath, func(t *testing.T) {
			got, err := toGJSONPath(tt.jsonPath)
			require.NoError(t, err)
			assert.Equal(t, tt.gjsonPath, got)
		})
	}
}

func TestToGJSONPath_Invalid(t *testing.T) {
	for _, path := range []string{"", "$.data[0", "$.data..sku", "$[]", "$['']"} {
		_, err := toGJSONPath(path)
		assert.Error(t, err, path)
	}
}
