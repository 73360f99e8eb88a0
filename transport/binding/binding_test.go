package binding

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveRequest struct {
	ID       string   `json:"id"`
	To       string   `json:"to,omitempty"`
	Capacity int      `json:"capacity"`
	Force    bool     `json:"force"`
	Tags     []string `json:"tag"`
	Skipped  string   `json:"-"`
	internal string
}

func TestQueryBinding(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x?to=b&capacity=4&force=true&tag=a&tag=b&Skipped=1", nil)

	var req moveRequest
	require.NoError(t, QueryBinding{}.Bind(r, &req))
	assert.Equal(t, "b", req.To)
	assert.Equal(t, 4, req.Capacity)
	assert.True(t, req.Force)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	assert.Empty(t, req.Skipped)
}

func TestQueryBindingErrors(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		obj   any
		errIs string
	}{
		{name: "bad int", url: "/x?capacity=four", obj: &moveRequest{}, errIs: "invalid int"},
		{name: "bad bool", url: "/x?force=maybe", obj: &moveRequest{}, errIs: "invalid bool"},
		{name: "not pointer", url: "/x?to=a", obj: moveRequest{}, errIs: "non-nil pointer"},
		{name: "not struct", url: "/x?to=a", obj: new(int), errIs: "pointer of struct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			err := QueryBinding{Tag: "json"}.Bind(r, tt.obj)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errIs)
		})
	}
}

func TestPathVarBinding(t *testing.T) {
	var req moveRequest
	router := mux.NewRouter()
	router.HandleFunc("/stacks/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, PathVarBinding{}.Bind(r, &req))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stacks/abc", nil))
	assert.Equal(t, "abc", req.ID)
}

func TestJsonBinding(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"capacity": 3}`))
	var req moveRequest
	require.NoError(t, JsonBinding{}.Bind(r, &req))
	assert.Equal(t, 3, req.Capacity)

	r = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"unknown": 3}`))
	assert.Error(t, JsonBinding{}.Bind(r, &req))
}

func TestFormBinding(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("to=dst&capacity=2"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req moveRequest
	require.NoError(t, FormBinding{}.Bind(r, &req))
	assert.Equal(t, "dst", req.To)
	assert.Equal(t, 2, req.Capacity)
}

func TestJsonBindingUnknownLengthEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(""))
	r.ContentLength = -1

	req := moveRequest{Capacity: 7}
	require.NoError(t, JsonBinding{}.Bind(r, &req))
	assert.Equal(t, 7, req.Capacity)

	r = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"capacity":`))
	assert.Error(t, JsonBinding{}.Bind(r, &req))
}

func TestPointerField(t *testing.T) {
	var req struct {
		Capacity *int `json:"capacity"`
		Missing  *int `json:"missing"`
	}
	r := httptest.NewRequest(http.MethodGet, "/x?capacity=0", nil)
	require.NoError(t, QueryBinding{}.Bind(r, &req))
	require.NotNil(t, req.Capacity)
	assert.Equal(t, 0, *req.Capacity)
	assert.Nil(t, req.Missing)
}

type textBinding struct{}

func (textBinding) Name() string                         { return "text" }
func (textBinding) Bind(r *http.Request, obj any) error { return nil }

func TestRegistry(t *testing.T) {
	assert.Equal(t, JsonBinding{}, GetBinding("application/json; charset=utf-8"))
	assert.Equal(t, FormBinding{}, GetBinding("Application/X-WWW-Form-Urlencoded"))
	assert.Nil(t, GetBinding("text/plain"))
	assert.Nil(t, GetBinding(""))

	RegisterBinding("text/plain", textBinding{})
	assert.Equal(t, textBinding{}, GetBinding("text/plain; charset=utf-8"))
	assert.Panics(t, func() { RegisterBinding("text/csv", nil) })
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "application/json", want: MIMEJSON},
		{in: "application/json; charset=utf-8", want: MIMEJSON},
		{in: " Application/JSON ;;bad", want: MIMEJSON},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaType(tt.in), tt.in)
	}
}
