package gemini

import (
	"google.golang.org/genai"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

func toParts(parts []usecase.Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Image != nil {
			out = append(out, genai.NewPartFromBytes(p.Image.Data, p.Image.MIMEType))
		}
		if p.Text != "" {
			out = append(out, genai.NewPartFromText(p.Text))
		}
	}
	return out
}

func toContents(parts []usecase.Part) []*genai.Content {
	return []*genai.Content{genai.NewContentFromParts(toParts(parts), genai.RoleUser)}
}

func toImageConfig(cfg *usecase.ImageConfig) *genai.ImageConfig {
	if cfg == nil || (cfg.AspectRatio == "" && cfg.Size == "") {
		return nil
	}
	return &genai.ImageConfig{AspectRatio: cfg.AspectRatio, ImageSize: cfg.Size}
}

func searchTools(enabled bool) []*genai.Tool {
	if !enabled {
		return nil
	}
	return []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
}

func toConfig(req *usecase.GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: req.ResponseModalities,
		ResponseMIMEType:   req.ResponseMIMEType,
		ImageConfig:        toImageConfig(req.Image),
		Tools:              searchTools(req.GoogleSearch),
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}
	return cfg
}

func fromBlob(b *genai.Blob) *entity.Image {
	if b == nil || len(b.Data) == 0 {
		return nil
	}
	return &entity.Image{Data: b.Data, MIMEType: b.MIMEType}
}

// fromResponse は最初の候補のパートとグラウンディングの検索クエリを取り出します。
func fromResponse(resp *genai.GenerateContentResponse) *usecase.GenerateResponse {
	out := &usecase.GenerateResponse{}
	if resp == nil {
		return out
	}
	out.ModelVersion = resp.ModelVersion
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}
	cand := resp.Candidates[0]
	for _, p := range cand.Content.Parts {
		if p == nil {
			continue
		}
		img := fromBlob(p.InlineData)
		if p.Text == "" && img == nil {
			continue
		}
		out.Parts = append(out.Parts, usecase.ResponsePart{Text: p.Text, Image: img, Thought: p.Thought})
	}
	if cand.GroundingMetadata != nil {
		out.SearchQueries = cand.GroundingMetadata.WebSearchQueries
	}
	return out
}

// toMessages は会話履歴を推論パートを除いたメッセージに変換します。
func toMessages(history []*genai.Content) []entity.Message {
	msgs := make([]entity.Message, 0, len(history))
	for _, c := range history {
		if c == nil {
			continue
		}
		m := entity.Message{Role: c.Role}
		for _, p := range c.Parts {
			if p == nil || p.Thought {
				continue
			}
			m.Text += p.Text
			if p.InlineData != nil {
				m.HasImage = true
			}
		}
		msgs = append(msgs, m)
	}
	return msgs
}
