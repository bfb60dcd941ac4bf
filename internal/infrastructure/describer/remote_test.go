package describer

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

func testCrop() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 32, 32))
}

func TestRemote_Describe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/describe", r.URL.Path)

		var req struct {
			Image      []byte `json:"image"`
			DefectType string `json:"defect_type"`
			Severity   string `json:"severity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Image)
		require.Equal(t, "crack", req.DefectType)
		require.Equal(t, "High", req.Severity)

		json.NewEncoder(w).Encode(map[string]string{
			"explanation":        "model explanation",
			"recommended_action": "model action",
		})
	}))
	defer srv.Close()

	d := NewRemote(srv.URL)
	desc, err := d.Describe(context.Background(), testCrop(), entity.DefectCrack, entity.SeverityHigh)
	require.NoError(t, err)
	require.Equal(t, "model explanation", desc.Explanation)
	require.Equal(t, "model action", desc.RecommendedAction)
}

func TestRemote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewRemote(srv.URL)
	_, err := d.Describe(context.Background(), testCrop(), entity.DefectCrack, entity.SeverityLow)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 500")
}

func TestRemote_ContextTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	d := NewRemote(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Describe(ctx, testCrop(), entity.DefectCorrosion, entity.SeverityMedium)
	require.Error(t, err)
}
