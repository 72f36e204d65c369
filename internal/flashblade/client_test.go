package flashblade

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fb-mcp/internal/flashblade/fbtest"
)

func TestNewNegotiatesLatestV2(t *testing.T) {
	array := fbtest.New("T")
	defer array.Close()

	c, err := New(context.Background(), array.URL, "T")
	require.NoError(t, err)
	assert.Equal(t, fbtest.APIVersion, c.APIVersion())
	assert.Equal(t, array.URL, c.BaseURL())
	assert.Equal(t, 1, array.Logins())
}

func TestNewRejectsBadToken(t *testing.T) {
	array := fbtest.New("T")
	defer array.Close()

	_, err := New(context.Background(), array.URL, "wrong")
	require.Error(t, err)

	var loginErr *LoginError
	require.True(t, errors.As(err, &loginErr))
	assert.Equal(t, http.StatusUnauthorized, loginErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid API token")
	assert.Equal(t, 0, array.Logins())
}

func TestNewUnreachable(t *testing.T) {
	array := fbtest.New("T")
	url := array.URL
	array.Close()

	_, err := New(context.Background(), url, "T")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Zero(t, loginErr.StatusCode)
}

func TestNewEmptyInputs(t *testing.T) {
	_, err := New(context.Background(), "", "T")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)

	_, err = New(context.Background(), "10.0.0.1", "")
	require.ErrorAs(t, err, &loginErr)
}

func TestBaseURL(t *testing.T) {
	cases := map[string]string{
		"10.0.0.1":                  "https://10.0.0.1",
		"10.0.0.1:8443":             "https://10.0.0.1:8443",
		"https://fb.example.com/":   "https://fb.example.com",
		" https://fb.example.com/x": "https://fb.example.com",
		"http://127.0.0.1:9000":     "http://127.0.0.1:9000",
	}
	for in, want := range cases {
		got, err := baseURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestLatestV2(t *testing.T) {
	v, ok := latestV2([]string{"1.0", "2.0", "2.10", "2.9", "x.y"})
	require.True(t, ok)
	assert.Equal(t, "2.10", v)

	_, ok = latestV2([]string{"1.0", "1.12"})
	assert.False(t, ok)
}

func TestErrorResponseMessage(t *testing.T) {
	resp := decodeError(http.StatusBadRequest, []byte(`{"errors":[{"message":"bad filter","context":"filter"}]}`))
	assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus())
	assert.Equal(t, "flashblade: status 400: filter: bad filter", resp.Error())

	resp = decodeError(http.StatusBadGateway, []byte("upstream down"))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "upstream down", resp.Errors[0].Message)

	resp = decodeError(http.StatusInternalServerError, nil)
	assert.Equal(t, "flashblade: status 500", resp.Error())
}
