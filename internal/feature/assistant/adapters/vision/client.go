// Package vision はGoogle Cloud Vision APIを使用した画像ラベル抽出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"artisan_backend/internal/feature/assistant/usecase"
)

// maxLabels は1画像あたりのラベル数の上限です。
const maxLabels = 8

// VisionAnnotator はGoogle Cloud Vision APIを使用して画像のラベルを抽出します。
// 抽出されたラベルは商品説明生成プロンプトのヒントとして使用されます。
type VisionAnnotator struct {
	client *gvision.ImageAnnotatorClient
}

// VisionAnnotatorがImageAnnotatorを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnnotator = (*VisionAnnotator)(nil)

// NewVisionAnnotator はADCを使用してVisionAnnotatorの新しいインスタンスを生成します。
func NewVisionAnnotator(ctx context.Context) (*VisionAnnotator, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionAnnotator{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionAnnotator) Close() error {
	return v.client.Close()
}

// Labels は画像バイト列からラベル（被写体の説明）を抽出します。
func (v *VisionAnnotator) Labels(ctx context.Context, imageData []byte) ([]string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	labels := make([]string, 0, len(resp.Responses[0].LabelAnnotations))
	for _, label := range resp.Responses[0].LabelAnnotations {
		labels = append(labels, label.Description)
	}

	return labels, nil
}
