package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"poolservice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 20},
		{"?page=3&page_size=50", 3, 50},
		{"?page=-1&page_size=0", 1, 20},
		{"?page=x&page_size=1000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := testContext("/items" + tt.query)
			page, pageSize := ParsePagination(c)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

func TestParseQueryBool(t *testing.T) {
	c, _ := testContext("/items?active=false&read=maybe")

	active := ParseQueryBool(c, "active")
	require.NotNil(t, active)
	assert.False(t, *active)
	assert.Nil(t, ParseQueryBool(c, "read"))
	assert.Nil(t, ParseQueryBool(c, "missing"))
}

func TestHandleFormError_EchoesInput(t *testing.T) {
	h := NewBaseHandler(nil, nil, nil)
	c, w := testContext("/public/messages")
	input := map[string]string{"name": "Sam"}

	h.HandleFormError(c, apperrors.FieldError("message", "This field is required"), input)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields map[string]string `json:"fields"`
				Input  map[string]string `json:"input"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "This field is required", body.Error.Details.Fields["message"])
	assert.Equal(t, "Sam", body.Error.Details.Input["name"])
}

func TestHandleFormError_LeavesOtherErrorsAlone(t *testing.T) {
	h := NewBaseHandler(nil, nil, nil)
	c, w := testContext("/public/messages")

	h.HandleFormError(c, apperrors.NewBadRequestError("bad"), map[string]string{"name": "Sam"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "Sam")
}

type bindForm struct {
	Name  string `json:"name" form:"name"`
	Age   int    `json:"age" form:"age"`
	Smoke bool   `json:"smoke" form:"smoke"`
}

type bindErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Details struct {
			Fields map[string]string      `json:"fields"`
			Input  map[string]interface{} `json:"input"`
		} `json:"details"`
	} `json:"error"`
}

func bindRequest(t *testing.T, contentType, body string) (bool, *httptest.ResponseRecorder) {
	t.Helper()
	h := NewBaseHandler(nil, nil, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/public/job-applications", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)

	var form bindForm
	return h.Bind(c, &form), w
}

func TestBind_WrongTypeIsFieldError(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		field       string
		input       interface{}
	}{
		{
			name:        "form age",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"name": {"Alex"}, "age": {"twenty"}}.Encode(),
			field:       "age",
			input:       "twenty",
		},
		{
			name:        "form smoke",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"name": {"Alex"}, "smoke": {"sometimes"}}.Encode(),
			field:       "smoke",
			input:       "sometimes",
		},
		{
			name:        "json age",
			contentType: "application/json",
			body:        `{"name":"Alex","age":"twenty"}`,
			field:       "age",
			input:       "twenty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, w := bindRequest(t, tt.contentType, tt.body)

			assert.False(t, ok)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			var body bindErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
			assert.Contains(t, body.Error.Details.Fields, tt.field)
			assert.Equal(t, tt.input, body.Error.Details.Input[tt.field])
			assert.Equal(t, "Alex", body.Error.Details.Input["name"])
		})
	}
}

func TestBind_MalformedBodyIsBadRequest(t *testing.T) {
	ok, w := bindRequest(t, "application/json", `{"name":`)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
