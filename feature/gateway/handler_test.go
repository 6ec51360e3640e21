package gateway

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"survey-gateway/core/storage"
	"survey-gateway/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, storage.Config{
		Bucket:         testBucket,
		PhotoRoot:      "photos",
		PresignWorkers: 4,
		TimeoutSeconds: 1,
	}, zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleHealth(t *testing.T) {
	t.Run("Resolved", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/storage/health", nil))

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report HealthReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.True(t, report.OK)
		assert.Equal(t, testBucket, report.ResolvedBucket)
		assert.Len(t, report.Candidates, 2)
	})

	t.Run("Unavailable", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(false, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/storage/health", nil))

		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)

		var report HealthReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.False(t, report.OK)
		assert.Contains(t, report.Diagnostics, "not found")
	})
}

func TestHandleUpload_JSON(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("PutObject", mock.Anything, testBucket, "photos/2024-05-01/bud-1/173_lamp.jpg",
		mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	mockClient.On("PresignedGet", mock.Anything, testBucket, "photos/2024-05-01/bud-1/173_lamp.jpg", PresignTTL).
		Return(signedURL(t, "photos/2024-05-01/bud-1/173_lamp.jpg"), nil)

	body := fmt.Sprintf(`{"path":"photos/2024-05-01/bud-1/173_lamp.jpg","payload":%q,"contentType":"image/jpeg"}`,
		base64.StdEncoding.EncodeToString([]byte("ping")))
	req := httptest.NewRequest("POST", "/storage/objects", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result UploadResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, testBucket, result.Bucket.Name)
	assert.NotEmpty(t, result.URL)
	require.Len(t, result.Attempts, 1)
	assert.True(t, result.Attempts[0].OK)
}

func TestHandleUpload_Multipart(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("PutObject", mock.Anything, testBucket, "photos/2024-05-01/bud-1/174_pole.jpg",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	mockClient.On("PresignedGet", mock.Anything, testBucket, "photos/2024-05-01/bud-1/174_pole.jpg", PresignTTL).
		Return(signedURL(t, "photos/2024-05-01/bud-1/174_pole.jpg"), nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("path", "photos/2024-05-01/bud-1/174_pole.jpg"))
	part, err := form.CreateFormFile("file", "174_pole.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/storage/objects", &buf)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestHandleUpload_ExhaustionReturnsTrail(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	body := fmt.Sprintf(`{"path":"photos/2024-05-01/bud-1/a.jpg","payload":%q}`,
		base64.StdEncoding.EncodeToString([]byte("x")))
	req := httptest.NewRequest("POST", "/storage/objects", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	attempts, ok := payload["attempts"].([]any)
	require.True(t, ok)
	assert.Len(t, attempts, 2)
}

func TestHandleUpload_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"InvalidBase64", `{"path":"photos/a.jpg","payload":"not base64!!"}`},
		{"InvalidPath", fmt.Sprintf(`{"path":"../escape.jpg","payload":%q}`,
			base64.StdEncoding.EncodeToString([]byte("x")))},
		{"MissingPath", fmt.Sprintf(`{"payload":%q}`,
			base64.StdEncoding.EncodeToString([]byte("x")))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, mockClient := setupTestApp(t)
			mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(true, nil)

			req := httptest.NewRequest("POST", "/storage/objects", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
			mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything,
				mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleResolve(t *testing.T) {
	const key = "photos/2024-05-01/bud-1/173_lamp.jpg"

	t.Run("Found", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		mockClient.On("StatObject", mock.Anything, testBucket, key, mock.Anything).
			Return(minio.ObjectInfo{Key: key}, nil)
		mockClient.On("PresignedGet", mock.Anything, testBucket, key, PresignTTL).
			Return(signedURL(t, key), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/storage/objects?path="+key, nil))

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var entry FileEntry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
		assert.Equal(t, "173_lamp.jpg", entry.Name)
		assert.NotEmpty(t, entry.URL)
	})

	t.Run("Missing", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		mockClient.On("StatObject", mock.Anything, testBucket, key, mock.Anything).
			Return(minio.ObjectInfo{}, notFoundErr())

		resp, err := app.Test(httptest.NewRequest("GET", "/storage/objects?path="+key, nil))

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("InvalidPath", func(t *testing.T) {
		app, _ := setupTestApp(t)

		resp, err := app.Test(httptest.NewRequest("GET", "/storage/objects?path=/absolute.jpg", nil))

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleListing_Days(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("ListPage", mock.Anything, testBucket, "photos/", "", "/", defaultPageLimit).
		Return(minio.ListBucketV2Result{
			CommonPrefixes: []minio.CommonPrefix{
				{Prefix: "photos/2024-04-30/"},
				{Prefix: "photos/2024-05-01/"},
			},
		}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/storage/listing", nil))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"photos/2024-05-01/", "photos/2024-04-30/"}, body.Items)
}

func TestHandleListing_DegradedStays200(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/storage/listing?scope=days", nil))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Items)
	assert.NotNil(t, body.Items)
}

func TestHandleListing_Files(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("ListPage", mock.Anything, testBucket, "photos/2024-05-01/bud-1/", "", "", defaultPageLimit).
		Return(flatResult([]string{"photos/2024-05-01/bud-1/173_lamp.jpg"}, "tok-2"), nil)
	mockClient.On("PresignedGet", mock.Anything, testBucket, "photos/2024-05-01/bud-1/173_lamp.jpg", PresignTTL).
		Return(signedURL(t, "photos/2024-05-01/bud-1/173_lamp.jpg"), nil)

	req := httptest.NewRequest("GET", "/storage/listing?scope=files&day=2024-05-01&surveyor=bud-1", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Items         []FileEntry `json:"items"`
		NextPageToken string      `json:"nextPageToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "173_lamp.jpg", body.Items[0].Name)
	assert.NotEmpty(t, body.Items[0].URL)
	assert.Equal(t, "tok-2", body.NextPageToken)
}

func TestHandleListing_FilesRequiresDayAndSurveyor(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, target := range []string{
		"/storage/listing?scope=files",
		"/storage/listing?scope=files&day=2024-05-01",
		"/storage/listing?scope=files&surveyor=bud-1",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, target)
	}
}

func TestHandleListing_UnknownScope(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/storage/listing?scope=weeks", nil))

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "weeks")
}
