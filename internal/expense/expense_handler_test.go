package expense_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-worktrack/internal/expense"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	expense.Service
	submitFn func(ctx context.Context, actor contextutil.Actor, req expense.SubmitExpenseRequest, invoice *storage.Upload) (expense.ExpenseResponse, error)
	exportFn func(ctx context.Context, q expense.ListQuery) (*bytes.Buffer, string, error)
}

func (f *fakeService) Submit(ctx context.Context, actor contextutil.Actor, req expense.SubmitExpenseRequest, invoice *storage.Upload) (expense.ExpenseResponse, error) {
	return f.submitFn(ctx, actor, req, invoice)
}

func (f *fakeService) Export(ctx context.Context, q expense.ListQuery) (*bytes.Buffer, string, error) {
	return f.exportFn(ctx, q)
}

func newRouter(svc expense.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := expense.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(request.ActorKey, emp) })
	r.POST("/expenses", h.Submit)
	r.GET("/expenses/export", h.Export)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("invoice", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHandler_Submit(t *testing.T) {
	t.Run("passes form fields and invoice", func(t *testing.T) {
		svc := &fakeService{submitFn: func(ctx context.Context, actor contextutil.Actor, req expense.SubmitExpenseRequest, invoice *storage.Upload) (expense.ExpenseResponse, error) {
			assert.Equal(t, int64(7), actor.EmployeeID)
			assert.Equal(t, "12.50", req.Amount)
			require.NotNil(t, invoice)
			assert.Equal(t, "bill.pdf", invoice.FileName)
			got, _ := io.ReadAll(invoice.Content)
			assert.Equal(t, pdfBody, string(got))
			return expense.ExpenseResponse{ID: 3, Amount: "12.50"}, nil
		}}
		body, ct := multipartBody(t, map[string]string{
			"expense_type_id": "2", "amount": "12.50", "expense_date": "2024-05-01",
		}, "bill.pdf", pdfBody)

		req := httptest.NewRequest(http.MethodPost, "/expenses", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing amount", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"expense_type_id": "2", "expense_date": "2024-05-01"}, "", "")

		req := httptest.NewRequest(http.MethodPost, "/expenses", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		newRouter(&fakeService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Amount is required", env.Error.Message)
	})
}

func TestHandler_Export(t *testing.T) {
	svc := &fakeService{exportFn: func(ctx context.Context, q expense.ListQuery) (*bytes.Buffer, string, error) {
		assert.Equal(t, int64(4), q.EmployeeID)
		return bytes.NewBufferString("xlsx"), "expenses_20240501_101010.xlsx", nil
	}}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/export?employee_id=4", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, expense.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expenses_20240501_101010.xlsx")
	assert.Equal(t, "xlsx", w.Body.String())
}
