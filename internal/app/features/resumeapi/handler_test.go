package resumeapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/bhavyaverma/portfolio/internal/app/store/analytics"
	"github.com/bhavyaverma/portfolio/internal/app/store/downloads"
	"github.com/bhavyaverma/portfolio/internal/app/store/resume"
	"github.com/bhavyaverma/portfolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	testStaticURL = "/Bhavya_Verma_Resume.pdf"
	testMaxUpload = 1 << 20 // 1 MB, small enough to exceed in a test
)

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(
		resume.New(db, testStaticURL),
		downloads.New(db),
		analytics.New(db),
		testMaxUpload,
		zap.NewNop(),
	)
	return h, db
}

// multipartBody builds a multipart form with a single "resume" file
// part carrying an explicit part Content-Type.
func multipartBody(t *testing.T, filename, partType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
	header.Set("Content-Type", partType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, filename, partType string, content []byte) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, filename, partType, content)
	req := httptest.NewRequest(http.MethodPost, "/resume", body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestUploadHandler(t *testing.T) {
	t.Run("accepts a pdf", func(t *testing.T) {
		h, _ := newTestHandler(t)
		content := []byte("%PDF-1.4 test resume content")

		rec := testutil.NewRecorder()
		h.UploadHandler(rec.ResponseRecorder, uploadRequest(t, "resume_v2.pdf", "application/pdf", content))

		rec.AssertStatus(t, http.StatusCreated)
		body := testutil.DecodeJSON(t, rec.ResponseRecorder)
		if body["filename"] != "resume_v2.pdf" {
			t.Errorf("filename = %v, want resume_v2.pdf", body["filename"])
		}
		if id, _ := body["fileId"].(string); id == "" {
			t.Error("response has no fileId")
		}

		// The blob is now the latest resume.
		ctx, cancel := testutil.TestContext()
		defer cancel()
		latest, err := h.resumes.GetLatest(ctx)
		if err != nil {
			t.Fatalf("GetLatest() error = %v", err)
		}
		if latest.IsStatic || latest.Ref == nil {
			t.Fatalf("GetLatest() = %+v, want stored blob", latest)
		}
		if latest.Ref.Filename != "resume_v2.pdf" {
			t.Errorf("latest filename = %q", latest.Ref.Filename)
		}
	})

	t.Run("rejects oversized file without storing it", func(t *testing.T) {
		h, _ := newTestHandler(t)
		big := bytes.Repeat([]byte("x"), testMaxUpload+1024)

		rec := testutil.NewRecorder()
		h.UploadHandler(rec.ResponseRecorder, uploadRequest(t, "huge.pdf", "application/pdf", big))

		rec.AssertStatus(t, http.StatusRequestEntityTooLarge)

		ctx, cancel := testutil.TestContext()
		defer cancel()
		latest, err := h.resumes.GetLatest(ctx)
		if err != nil {
			t.Fatalf("GetLatest() error = %v", err)
		}
		if !latest.IsStatic {
			t.Error("rejected upload left a stored blob behind")
		}
	})

	t.Run("rejects non-pdf", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := testutil.NewRecorder()
		req := uploadRequest(t, "resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("not a pdf"))
		h.UploadHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusUnsupportedMediaType)
	})

	t.Run("rejects non-pdf content behind a pdf filename", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := testutil.NewRecorder()
		req := uploadRequest(t, "resume.pdf", "text/plain", []byte("plain text wearing a pdf name"))
		h.UploadHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusUnsupportedMediaType)

		ctx, cancel := testutil.TestContext()
		defer cancel()
		latest, err := h.resumes.GetLatest(ctx)
		if err != nil {
			t.Fatalf("GetLatest() error = %v", err)
		}
		if !latest.IsStatic {
			t.Error("rejected upload left a stored blob behind")
		}
	})

	t.Run("rejects missing file field", func(t *testing.T) {
		h, _ := newTestHandler(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("note", "no file here"); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/resume", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := testutil.NewRecorder()
		h.UploadHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestResolveHandler(t *testing.T) {
	t.Run("static fallback when no upload exists", func(t *testing.T) {
		h, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/download", nil)
		rec := testutil.NewRecorder()
		h.ResolveHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		body := testutil.DecodeJSON(t, rec.ResponseRecorder)
		if body["isStatic"] != true {
			t.Errorf("isStatic = %v, want true", body["isStatic"])
		}
		if body["downloadUrl"] != testStaticURL {
			t.Errorf("downloadUrl = %v, want %q", body["downloadUrl"], testStaticURL)
		}
		if _, ok := body["warning"]; ok {
			t.Errorf("unexpected warning: %v", body["warning"])
		}

		// The download was tracked.
		ctx, cancel := testutil.TestContext()
		defer cancel()
		n, err := h.downloads.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 1 {
			t.Errorf("download events = %d, want 1", n)
		}
	})

	t.Run("resolves the newest upload", func(t *testing.T) {
		h, _ := newTestHandler(t)

		uprec := testutil.NewRecorder()
		h.UploadHandler(uprec.ResponseRecorder, uploadRequest(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 content")))
		uprec.AssertStatus(t, http.StatusCreated)
		fileID := testutil.DecodeJSON(t, uprec.ResponseRecorder)["fileId"].(string)

		req := httptest.NewRequest(http.MethodGet, "/download", nil)
		rec := testutil.NewRecorder()
		h.ResolveHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		body := testutil.DecodeJSON(t, rec.ResponseRecorder)
		if body["isStatic"] != false {
			t.Errorf("isStatic = %v, want false", body["isStatic"])
		}
		wantURL := "/api/resume/download/" + fileID
		if body["downloadUrl"] != wantURL {
			t.Errorf("downloadUrl = %v, want %q", body["downloadUrl"], wantURL)
		}
		if body["filename"] != "resume.pdf" {
			t.Errorf("filename = %v, want resume.pdf", body["filename"])
		}
	})

	t.Run("resolves with a warning when tracking is down", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		// A client pointed at a closed port makes every downloads write
		// fail fast while resume resolution still works.
		deadClient, err := mongo.Connect(context.Background(), options.Client().
			ApplyURI("mongodb://127.0.0.1:1").
			SetServerSelectionTimeout(200*time.Millisecond).
			SetConnectTimeout(200*time.Millisecond))
		if err != nil {
			t.Fatalf("mongo.Connect() error = %v", err)
		}
		t.Cleanup(func() { _ = deadClient.Disconnect(context.Background()) })

		h := NewHandler(
			resume.New(db, testStaticURL),
			downloads.New(deadClient.Database("portfolio_dead")),
			analytics.New(db),
			testMaxUpload,
			zap.NewNop(),
		)

		req := httptest.NewRequest(http.MethodGet, "/download", nil)
		rec := testutil.NewRecorder()
		h.ResolveHandler(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		body := testutil.DecodeJSON(t, rec.ResponseRecorder)
		if body["success"] != true {
			t.Errorf("success = %v, want true", body["success"])
		}
		if warning, _ := body["warning"].(string); warning == "" {
			t.Error("expected a tracking warning in the response")
		}
		if body["downloadUrl"] != testStaticURL {
			t.Errorf("downloadUrl = %v, want the static fallback", body["downloadUrl"])
		}
	})
}

func TestStreamHandler(t *testing.T) {
	h, db := newTestHandler(t)
	router := PublicRoutes(h)

	content := []byte("%PDF-1.4 streamable resume body")
	uprec := testutil.NewRecorder()
	h.UploadHandler(uprec.ResponseRecorder, uploadRequest(t, "resume.pdf", "application/pdf", content))
	uprec.AssertStatus(t, http.StatusCreated)
	fileID := testutil.DecodeJSON(t, uprec.ResponseRecorder)["fileId"].(string)

	t.Run("streams the stored blob", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/download/"+fileID, nil)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusOK)
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Content-Type = %q, want application/pdf", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "resume.pdf") {
			t.Errorf("Content-Disposition = %q", cd)
		}
		if !bytes.Equal(rec.Body.Bytes(), content) {
			t.Errorf("streamed %d bytes, want %d matching bytes", rec.Body.Len(), len(content))
		}

		// A completed stream leaves a completion record.
		ctx, cancel := testutil.TestContext()
		defer cancel()
		n, err := db.Collection("download_completions").CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("CountDocuments() error = %v", err)
		}
		if n != 1 {
			t.Errorf("completion records = %d, want 1", n)
		}
	})

	t.Run("unknown file id is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/download/ffffffffffffffffffffffff", nil)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusNotFound)
	})

	t.Run("malformed file id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/download/not-a-hex-id", nil)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusBadRequest)
	})
}
