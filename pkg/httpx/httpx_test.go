package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"min=2"`
	Tags  []string `json:"tags" validate:"max=2"`
}

func decode(body string) error {
	var p payload
	return DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &p)
}

func TestDecodeJSON(t *testing.T) {
	assert.NoError(t, decode(`{"email":"a@x.com","name":"Al"}`))

	cases := map[string]string{
		``:                                      "request body is empty",
		`{`:                                     "invalid JSON payload",
		`{"email":"a@x.com","name":"Al","x":1}`: `unknown field "x"`,
		`{"email":"a@x.com","name":"Al"} {}`:    "request body must contain a single JSON object",
		`{"name":"Al"}`:                         "email is required",
		`{"email":"nope","name":"Al"}`:          "email must be a valid email address",
		`{"email":"a@x.com","name":"A"}`:        "name must be at least 2 characters",
		`{"email":"a@x.com","name":"Al","tags":["a","b","c"]}`: "tags must be at most 2",
	}
	for body, want := range cases {
		err := decode(body)
		require.Error(t, err, body)
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, want, err.Error(), body)
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	big := `{"email":"a@x.com","name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	err := decode(big)
	require.Error(t, err)
	assert.Equal(t, "request body too large", err.Error())
}

func TestErrorWritesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusNotFound, "Product not found")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Product not found"}`, rr.Body.String())
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var got int64
	var ok bool
	mux.HandleFunc("GET /p/{id}", func(w http.ResponseWriter, r *http.Request) { got, ok = PathID(r, "id") })

	for target, want := range map[string]int64{"/p/12": 12, "/p/0": 0, "/p/-3": 0, "/p/abc": 0} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, want, got, target)
		assert.Equal(t, want > 0, ok, target)
	}
}
