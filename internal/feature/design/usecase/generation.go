package usecase

import (
	"context"
	"log/slog"

	"designkit_backend/internal/feature/design/domain/entity"
)

// ImageOptions はテキストからの画像生成・画像編集の設定です。
type ImageOptions struct {
	AspectRatio string  // 既定値 "16:9"
	Quality     Quality // 既定値 QualityFast
}

// StyleOptions はスタイル変換の設定です。
type StyleOptions struct {
	AspectRatio string // 既定値 "16:9"
	Resolution  string // 既定値 "2K"（Pro モデルのみ有効）
	UsePro      bool
}

// RenderOptions は Pro モデルで解像度を指定して生成する場合の設定です。
type RenderOptions struct {
	AspectRatio string // 既定値 "16:9"
	Resolution  string // 既定値 "2K"
}

// GenerateImage はテキストから画像を生成します。
func (u *designUsecase) GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (*entity.GeneratedImage, error) {
	if err := validatePrompt("prompt", prompt); err != nil {
		return nil, err
	}
	return u.generateImage(ctx, &GenerateRequest{
		Operation: OpGenerateImage,
		Model:     u.models.ForQuality(opts.Quality),
		Parts:     []Part{TextPart(prompt)},
		Image:     &ImageConfig{AspectRatio: orDefault(opts.AspectRatio, DefaultAspectRatio)},
	})
}

// EditImage は既存の画像をテキストの指示に従って編集します。
func (u *designUsecase) EditImage(ctx context.Context, img *entity.Image, prompt string, opts ImageOptions) (*entity.GeneratedImage, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if err := validatePrompt("prompt", prompt); err != nil {
		return nil, err
	}
	return u.generateImage(ctx, &GenerateRequest{
		Operation: OpEditImage,
		Model:     u.models.ForQuality(opts.Quality),
		Parts:     []Part{ImagePart(*img), TextPart(prompt)},
		Image:     &ImageConfig{AspectRatio: orDefault(opts.AspectRatio, DefaultAspectRatio)},
	})
}

// GenerateRoomStyle は部屋の構造を保ったまま、指定スタイルのインテリアに変換します。
// 解像度は Pro モデルの場合のみ指定されます。
func (u *designUsecase) GenerateRoomStyle(ctx context.Context, img *entity.Image, style string, opts StyleOptions) (*entity.GeneratedImage, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if err := validatePrompt("style", style); err != nil {
		return nil, err
	}
	cfg := &ImageConfig{AspectRatio: orDefault(opts.AspectRatio, DefaultAspectRatio)}
	model := u.models.Image
	if opts.UsePro {
		model = u.models.ImagePro
		cfg.Size = orDefault(opts.Resolution, DefaultResolution)
	}
	return u.generateImage(ctx, &GenerateRequest{
		Operation: OpRoomStyle,
		Model:     model,
		Parts:     []Part{ImagePart(*img), TextPart(roomStylePrompt(style))},
		Image:     cfg,
	})
}

// TruncateReferences は参照画像を最大 MaxReferenceImages 枚に切り詰めます。
func TruncateReferences(refs []entity.Image) []entity.Image {
	if len(refs) <= MaxReferenceImages {
		return refs
	}
	slog.Warn("参照画像が上限を超えたため切り詰めます", "given", len(refs), "max", MaxReferenceImages)
	return refs[:MaxReferenceImages]
}

// CompositeWithReferences は複数の参照画像（最大14枚）を組み合わせて画像を生成します。
// 上限を超えた参照画像は警告を出して切り捨てます。
func (u *designUsecase) CompositeWithReferences(ctx context.Context, prompt string, refs []entity.Image, opts RenderOptions) (*entity.GeneratedImage, error) {
	if err := validatePrompt("prompt", prompt); err != nil {
		return nil, err
	}
	refs = TruncateReferences(refs)
	parts := make([]Part, 0, len(refs)+1)
	parts = append(parts, TextPart(prompt))
	for i := range refs {
		if err := validateImage(&refs[i]); err != nil {
			return nil, err
		}
		parts = append(parts, ImagePart(refs[i]))
	}
	return u.generateImage(ctx, &GenerateRequest{
		Operation: OpComposite,
		Model:     u.models.ImagePro,
		Parts:     parts,
		Image: &ImageConfig{
			AspectRatio: orDefault(opts.AspectRatio, DefaultAspectRatio),
			Size:        orDefault(opts.Resolution, DefaultResolution),
		},
	})
}

// GenerateSeamlessTexture はタイル状に繰り返せる正方形のテクスチャを生成します。
// 2K・4K は Pro モデルで解像度を指定し、それ以外は高速モデルを使用します。
// 画像が返されなかった場合は nil を返します。
func (u *designUsecase) GenerateSeamlessTexture(ctx context.Context, material, resolution string) (*entity.Image, error) {
	if err := validatePrompt("material", material); err != nil {
		return nil, err
	}
	resolution = orDefault(resolution, DefaultResolution)
	req := &GenerateRequest{
		Operation: OpSeamlessTexture,
		Model:     u.models.Image,
		Parts:     []Part{TextPart(texturePrompt(material))},
		Image:     &ImageConfig{AspectRatio: TextureAspectRatio},
	}
	if resolution == DefaultResolution || resolution == Resolution4K {
		req.Model = u.models.ImagePro
		req.Image.Size = resolution
	}
	out, err := u.generateImage(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Image, nil
}

// GenerateGroundedImage はGoogle検索の結果を反映した画像を生成し、使用された検索クエリも返します。
func (u *designUsecase) GenerateGroundedImage(ctx context.Context, prompt string, opts RenderOptions) (*entity.GeneratedImage, error) {
	if err := validatePrompt("prompt", prompt); err != nil {
		return nil, err
	}
	out, err := u.generateImage(ctx, &GenerateRequest{
		Operation: OpGroundedImage,
		Model:     u.models.ImagePro,
		Parts:     []Part{TextPart(prompt)},
		Image: &ImageConfig{
			AspectRatio: orDefault(opts.AspectRatio, DefaultAspectRatio),
			Size:        orDefault(opts.Resolution, DefaultResolution),
		},
		GoogleSearch: true,
	})
	if err != nil {
		return nil, err
	}
	if out.SearchQueries == nil {
		out.SearchQueries = []string{}
	}
	return out, nil
}

// Generate4KImage は4K解像度の画像を生成します。input を指定した場合はその画像を編集します。
func (u *designUsecase) Generate4KImage(ctx context.Context, prompt, aspectRatio string, input *entity.Image) (*entity.GeneratedImage, error) {
	if err := validatePrompt("prompt", prompt); err != nil {
		return nil, err
	}
	parts := []Part{TextPart(prompt)}
	if input != nil {
		if err := validateImage(input); err != nil {
			return nil, err
		}
		parts = []Part{ImagePart(*input), TextPart(prompt)}
	}
	return u.generateImage(ctx, &GenerateRequest{
		Operation: OpGenerate4K,
		Model:     u.models.ImagePro,
		Parts:     parts,
		Image: &ImageConfig{
			AspectRatio: orDefault(aspectRatio, DefaultAspectRatio),
			Size:        Resolution4K,
		},
	})
}
