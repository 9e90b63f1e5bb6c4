package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"wa-assistant/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, fn func(c *gin.Context)) (int, response.Resp) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body response.Resp
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return rec.Code, body
}

func TestOK(t *testing.T) {
	code, body := perform(t, func(c *gin.Context) {
		response.OK(c, map[string]string{"status": "accepted"})
	})

	if code != http.StatusOK {
		t.Errorf("status = %d, want %d", code, http.StatusOK)
	}
	if body.ErrorCode != 0 {
		t.Errorf("error_code = %d, want 0", body.ErrorCode)
	}
	if body.Message != response.MessageSuccess {
		t.Errorf("message = %q, want %q", body.Message, response.MessageSuccess)
	}
	data, ok := body.Data.(map[string]any)
	if !ok || data["status"] != "accepted" {
		t.Errorf("data = %#v, want status=accepted", body.Data)
	}
}

func TestError(t *testing.T) {
	code, body := perform(t, func(c *gin.Context) {
		response.Error(c, errors.New("boom"), nil)
	})

	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if body.ErrorCode != 1 {
		t.Errorf("error_code = %d, want 1", body.ErrorCode)
	}
	if body.Message != "boom" {
		t.Errorf("message = %q, want boom", body.Message)
	}
}

func TestUnauthorized(t *testing.T) {
	code, body := perform(t, response.Unauthorized)

	if code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", code, http.StatusUnauthorized)
	}
	if body.ErrorCode != 401 || body.Message != "Unauthorized" {
		t.Errorf("body = %+v, want 401/Unauthorized", body)
	}
}

func TestForbidden(t *testing.T) {
	code, body := perform(t, response.Forbidden)

	if code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", code, http.StatusForbidden)
	}
	if body.ErrorCode != 403 || body.Message != "Forbidden" {
		t.Errorf("body = %+v, want 403/Forbidden", body)
	}
}
