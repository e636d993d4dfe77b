package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"interioai/internal/config"
	"interioai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "room1.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))
	return path
}

func newTestModelServer(t *testing.T, handler http.HandlerFunc) (*ModelServerClient, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	outDir := t.TempDir()
	client := NewModelServerClient(config.ModelServerConfig{
		BaseURL: srv.URL + "/",
		Timeout: 5 * time.Second,
	}, outDir, zap.NewNop())
	return client, outDir
}

func TestModelServerClient_Detect(t *testing.T) {
	client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0.15", r.FormValue("confidence"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "room1.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		writeJSON(w, http.StatusOK, map[string]any{
			"detections": []map[string]any{
				{"label": "bed", "confidence": 0.91},
				{"label": " ", "confidence": 0.5},
				{"label": "chair", "confidence": 0.4},
				{"label": "chair", "confidence": 0.3},
			},
		})
	})

	labels, err := client.Detect(context.Background(), writeTestImage(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"bed", "chair", "chair"}, labels)
}

func TestModelServerClient_Detect_ServerError(t *testing.T) {
	client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "model not loaded"})
	})

	_, err := client.Detect(context.Background(), writeTestImage(t))
	require.Error(t, err)
	assert.True(t, IsExternalDependencyError(err))
	assert.Contains(t, err.Error(), "status 503: model not loaded")
}

func TestModelServerClient_Detect_MissingFile(t *testing.T) {
	client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	_, err := client.Detect(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
	assert.True(t, IsExternalDependencyError(err))
}

func TestModelServerClient_EstimateDimensions(t *testing.T) {
	t.Run("estimate", func(t *testing.T) {
		client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/dimensions", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"dimensions": map[string]any{"length_m": 4.2, "width_m": 3.1, "height_m": 2.7, "confidence": "Medium"},
			})
		})

		dims, err := client.EstimateDimensions(context.Background(), writeTestImage(t))
		require.NoError(t, err)
		require.NotNil(t, dims)
		assert.Equal(t, model.RoomDimensions{LengthM: 4.2, WidthM: 3.1, HeightM: 2.7, Confidence: model.ConfidenceMedium}, *dims)
	})

	t.Run("no estimate", func(t *testing.T) {
		client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"dimensions": nil})
		})

		dims, err := client.EstimateDimensions(context.Background(), writeTestImage(t))
		require.NoError(t, err)
		assert.Nil(t, dims)
	})
}

func TestModelServerClient_Render(t *testing.T) {
	client, outDir := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/render", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "cozy bedroom", r.FormValue("prompt"))
		assert.Equal(t, NegativePrompt, r.FormValue("negative_prompt"))
		assert.Equal(t, "0.80", r.FormValue("strength"))
		assert.Equal(t, "true", r.FormValue("comparison"))

		encoded := base64.StdEncoding.EncodeToString(pngBytes)
		writeJSON(w, http.StatusOK, map[string]string{"image": encoded, "comparison": encoded})
	})

	res, err := client.Render(context.Background(), RenderRequest{
		ImagePath:        writeTestImage(t),
		Prompt:           "cozy bedroom",
		NegativePrompt:   NegativePrompt,
		Strength:         0.8,
		CreateComparison: true,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^room1_designed_[0-9a-f]{8}\.png$`, res.EditedImage)
	assert.Regexp(t, `^room1_before_after_[0-9a-f]{8}\.png$`, res.ComparisonImage)

	data, err := os.ReadFile(filepath.Join(outDir, res.EditedImage))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestModelServerClient_Render_BadPayload(t *testing.T) {
	client, _ := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"image": "%%%not-base64"})
	})

	_, err := client.Render(context.Background(), RenderRequest{ImagePath: writeTestImage(t)})
	require.Error(t, err)
	assert.True(t, IsExternalDependencyError(err))
	assert.Contains(t, err.Error(), "invalid image payload")
}

func TestModelServerClient_Visualize(t *testing.T) {
	client, outDir := newTestModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visualize", r.URL.Path)
		var body visualizeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bedroom", body.RoomType)
		assert.Equal(t, []string{"bed"}, body.CurrentItems)
		assert.Equal(t, []string{"wardrobe"}, body.SuggestedItems)
		if assert.NotNil(t, body.Dimensions) {
			assert.Equal(t, 4.0, body.Dimensions.LengthM)
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"floor_plan": base64.StdEncoding.EncodeToString(pngBytes),
		})
	})

	res, err := client.Visualize(context.Background(), VisualizeRequest{
		RoomType:       model.RoomBedroom,
		CurrentItems:   []string{"bed"},
		SuggestedItems: []string{"wardrobe"},
		Dimensions:     &model.RoomDimensions{LengthM: 4, WidthM: 3, HeightM: 2.5},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^bedroom_floor_plan_[0-9a-f]{8}\.png$`, res.FloorPlan)
	assert.Empty(t, res.Visualization3D)
	assert.FileExists(t, filepath.Join(outDir, res.FloorPlan))
}
