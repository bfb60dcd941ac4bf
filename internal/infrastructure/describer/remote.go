package describer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
)

// Remote обращается за описанием дефекта к внешнему VLM-сервису.
// Вырезанная область уходит на inference-сервер как JPEG в base64,
// ответ ожидается в JSON. Таймаут задаёт вызывающая сторона через контекст.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote создаёт клиент VLM-сервиса. endpoint — базовый URL без пути.
func NewRemote(endpoint string) *Remote {
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

type remoteRequest struct {
	Image      []byte `json:"image"` // JPEG, кодируется в base64 средствами encoding/json
	DefectType string `json:"defect_type"`
	Severity   string `json:"severity"`
}

type remoteResponse struct {
	Explanation       string `json:"explanation"`
	RecommendedAction string `json:"recommended_action"`
}

// Describe отправляет область дефекта на inference-сервер.
func (d *Remote) Describe(ctx context.Context, crop image.Image, defectType entity.DefectType, severity entity.SeverityLevel) (*entity.Description, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, crop, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode crop: %w", err)
	}

	payload, err := json.Marshal(remoteRequest{
		Image:      buf.Bytes(),
		DefectType: string(defectType),
		Severity:   string(severity),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint+"/describe", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vlm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vlm request: unexpected status %d", resp.StatusCode)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("vlm response: %w", err)
	}

	return &entity.Description{
		Explanation:       out.Explanation,
		RecommendedAction: out.RecommendedAction,
	}, nil
}

// Проверка реализации интерфейса
var _ port.DefectDescriber = (*Remote)(nil)
