package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/domain"
)

func respondWith(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, err)

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func TestRespondDomainErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
		code string
	}{
		{domain.ValidationError{Field: "price", Msg: "must not be negative"}, http.StatusBadRequest, "validation_error"},
		{domain.NotFoundError{Resource: "listing", ID: "L-1"}, http.StatusNotFound, "not_found"},
		{domain.ConflictError{Resource: "listing", Msg: "duplicate id"}, http.StatusConflict, "conflict"},
		{domain.AuthError{Msg: "invalid token"}, http.StatusUnauthorized, "unauthorized"},
	}
	for _, tc := range cases {
		status, body := respondWith(t, tc.err)
		if status != tc.want || body.Code != tc.code || body.Error != tc.err.Error() {
			t.Fatalf("%v: status=%d body=%+v", tc.err, status, body)
		}
	}
}

func TestRespondDomainErrorInternalKeepsOwnMessage(t *testing.T) {
	err := domain.InternalError{Msg: "sign token", Err: errors.New("key is of invalid type")}
	status, body := respondWith(t, err)
	if status != http.StatusInternalServerError || body.Error != "sign token" {
		t.Fatalf("status=%d body=%+v", status, body)
	}

	status, body = respondWith(t, errors.New("dial tcp: connection refused"))
	if status != http.StatusInternalServerError || body.Error != "something went wrong" {
		t.Fatalf("unknown error leaked: status=%d body=%+v", status, body)
	}
}
