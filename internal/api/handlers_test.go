package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/gin"
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/api"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/classifier"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/extract"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/logging"
)

const maxUpload = 16 << 20

type fixedGate bool

func (g fixedGate) IsPortuguese(string) bool { return bool(g) }

type failingAnalyzer struct{}

func (failingAnalyzer) Classify(context.Context, string) (*domain.Analysis, error) {
	return nil, errors.New("database password is hunter2")
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter builds the full server stack. Tests using it do not run in parallel: the
// server constructor sets the global gin mode.
func newRouter(t *testing.T, analyzer api.Analyzer, bodyLimit int64) *gin.Engine {
	t.Helper()

	log := infralogger.NewNop()
	handler := api.NewHandler(analyzer, extract.New(log), api.Options{
		MaxUploadBytes: maxUpload,
		EmailTypes:     []string{"status_request", "greetings"},
	}, logging.NewAdapter(log))

	server := infragin.NewServerBuilder("email-classifier", 0).
		WithLogger(log).
		WithVersion("2.0.0").
		WithBodyLimit(bodyLimit, domain.MsgFileTooLarge).
		WithInternalErrorMessage(domain.MsgInternalError).
		WithRoutes(func(router *gin.Engine) {
			api.SetupServiceRoutes(router, handler, nil)
		}).
		Build()
	return server.Router()
}

func newAnalyzer(portuguese bool) api.Analyzer {
	engine := classifier.NewRuleEngine(classifier.DefaultScoringConfig(), nil, nil)
	return classifier.NewClassifier(infralogger.NewNop(), classifier.Config{
		Gate:   fixedGate(portuguese),
		Engine: engine,
	})
}

func do(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func jsonRequest(t *testing.T, path, text string) *http.Request {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"email_text": text})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyze_JSON(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)
	rec, body := do(t, router, jsonRequest(t, "/analyze", "Olá, qual o status do meu pedido?"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Produtivo", body["category"])
	assert.Equal(t, "Status Request", body["email_type"])
	assert.Equal(t, "Alta", body["priority"])
	assert.Equal(t, "Alta", body["confidence"])
	assert.InDelta(t, 7, body["word_count"], 0)
	assert.Contains(t, body, "processing_time")

	scores, ok := body["confidence_scores"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 11, scores["status_request"], 0)
	assert.Len(t, scores, len(classifier.DefaultRules()))

	raw := rec.Body.String()
	assert.Less(t, strings.Index(raw, `"status_request"`), strings.Index(raw, `"social_chat"`),
		"scores keep rule order")

	details, ok := body["classification_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NLP Pattern Matching", details["method"])
	assert.Equal(t, "Financial Domain Specific Rules", details["algorithm"])
	assert.InDelta(t, 2, details["patterns_matched"], 0)
	assert.Equal(t, []any{"status", "qual o status", "pedido"}, details["matched_terms"])

	reply, ok := body["suggested_response"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, reply["body"], "ALTA PRIORIDADE")
}

func TestAnalyze_FormField(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)
	form := url.Values{"email_text": {"Feliz Natal e um próspero Ano Novo!"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec, body := do(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Improdutivo", body["category"])
	assert.Equal(t, "Greetings", body["email_type"])
	assert.Equal(t, "Baixa", body["priority"])
}

func TestAnalyze_TextUpload(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)
	rec, body := do(t, router, uploadRequest(t, "email.txt", []byte("Segue em anexo o relatório solicitado.")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Document Sharing", body["email_type"])
	assert.Equal(t, "Media", body["priority"])
}

func TestAnalyze_InputErrors(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)

	badJSON := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"email_text":`))
	badJSON.Header.Set("Content-Type", "application/json")

	tests := []struct {
		name    string
		req     *http.Request
		wantMsg string
	}{
		{name: "too short", req: jsonRequest(t, "/analyze", " ok "), wantMsg: domain.MsgTextTooShort},
		{name: "empty json", req: jsonRequest(t, "/analyze", ""), wantMsg: domain.MsgTextTooShort},
		{name: "unsupported file", req: uploadRequest(t, "email.docx", []byte("conteúdo")), wantMsg: domain.MsgUnsupportedFormat},
		{name: "empty pdf", req: uploadRequest(t, "email.pdf", []byte("not a pdf")), wantMsg: domain.MsgTextTooShort},
		{name: "malformed json", req: badJSON, wantMsg: domain.MsgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			rec, body := do(t, router, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestAnalyze_LanguageRejected(t *testing.T) {
	router := newRouter(t, newAnalyzer(false), maxUpload)
	rec, body := do(t, router, jsonRequest(t, "/analyze", "Please send me the quarterly report as soon as possible"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "language_error", body["email_type"])
	assert.Equal(t, "Improdutivo", body["category"])
	assert.Equal(t, "baixa", body["priority"])
	assert.Equal(t, "Alta", body["confidence"])
	assert.Equal(t, domain.MsgLanguageRejected, body["message"])
	assert.InDelta(t, 0.1, body["processing_time"], 1e-9)
	assert.InDelta(t, 10, body["word_count"], 0)
	assert.NotContains(t, body, "confidence_scores")
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), 1024)
	rec, body := do(t, router, uploadRequest(t, "email.txt", bytes.Repeat([]byte("a"), 4096)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, domain.MsgFileTooLarge, body["error"])
}

func TestAnalyze_InternalErrorIsRedacted(t *testing.T) {
	router := newRouter(t, failingAnalyzer{}, maxUpload)
	rec, body := do(t, router, jsonRequest(t, "/analyze", "Qual o status do pedido?"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domain.MsgInternalError, body["error"])
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestStats(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)
	rec, body := do(t, router, httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{".txt", ".pdf"}, body["supported_formats"])
	assert.Equal(t, "16MB", body["max_file_size"])
	assert.Equal(t, []any{"Produtivo", "Improdutivo"}, body["categories"])
	assert.Equal(t, []any{"alta", "media", "baixa"}, body["priority_levels"])
	assert.Equal(t, []any{"status_request", "greetings"}, body["email_types"])
	assert.Equal(t, "< 0.5 segundos", body["average_processing_time"])
}

func TestHealth(t *testing.T) {
	router := newRouter(t, newAnalyzer(true), maxUpload)
	rec, body := do(t, router, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "email-classifier", body["service"])
	assert.Equal(t, "2.0.0", body["version"])
	assert.NotEmpty(t, body["timestamp"])

	head := httptest.NewRecorder()
	router.ServeHTTP(head, httptest.NewRequest(http.MethodHead, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, head.Code)
}
