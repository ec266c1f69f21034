package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/transport/http/dto"
	"designkit_backend/internal/feature/design/usecase"
)

// ImageUsecase は画像生成系ユースケースのインターフェースです。
type ImageUsecase interface {
	GenerateImage(ctx context.Context, prompt string, opts usecase.ImageOptions) (*entity.GeneratedImage, error)
	EditImage(ctx context.Context, img *entity.Image, prompt string, opts usecase.ImageOptions) (*entity.GeneratedImage, error)
	GenerateRoomStyle(ctx context.Context, img *entity.Image, style string, opts usecase.StyleOptions) (*entity.GeneratedImage, error)
	GenerateStyleVariations(ctx context.Context, img *entity.Image, baseStyle string, n int, resolution string) ([]entity.StyleVariation, error)
	CompositeWithReferences(ctx context.Context, prompt string, refs []entity.Image, opts usecase.RenderOptions) (*entity.GeneratedImage, error)
	GenerateSeamlessTexture(ctx context.Context, material, resolution string) (*entity.Image, error)
	GenerateGroundedImage(ctx context.Context, prompt string, opts usecase.RenderOptions) (*entity.GeneratedImage, error)
	Generate4KImage(ctx context.Context, prompt, aspectRatio string, input *entity.Image) (*entity.GeneratedImage, error)
}

// ImageHandler は画像生成系のHTTPリクエストを処理します。
type ImageHandler struct {
	uc ImageUsecase
}

// NewImageHandler はImageHandlerの新しいインスタンスを生成します。
func NewImageHandler(uc ImageUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// Generate はテキストから画像を生成します。
//
// エンドポイント: POST /v1/images/generate
// Content-Type: application/json
func (h *ImageHandler) Generate(c *gin.Context) {
	var req dto.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.uc.GenerateImage(c.Request.Context(), req.Prompt, usecase.ImageOptions{
		AspectRatio: req.AspectRatio,
		Quality:     usecase.Quality(req.Quality),
	})
	if err != nil {
		writeError(c, err, "画像生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}

// Edit はアップロードされた画像をプロンプトに従って編集します。
//
// エンドポイント: POST /v1/images/edit
func (h *ImageHandler) Edit(c *gin.Context) {
	var form dto.EditImageForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}
	out, err := h.uc.EditImage(c.Request.Context(), img, form.Prompt, usecase.ImageOptions{
		AspectRatio: form.AspectRatio,
		Quality:     usecase.Quality(form.Quality),
	})
	if err != nil {
		writeError(c, err, "画像編集に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}

// Style は部屋画像を指定スタイルに変換します。
//
// エンドポイント: POST /v1/images/style
func (h *ImageHandler) Style(c *gin.Context) {
	var form dto.StyleForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}
	out, err := h.uc.GenerateRoomStyle(c.Request.Context(), img, form.Style, usecase.StyleOptions{
		AspectRatio: form.AspectRatio,
		Resolution:  form.Resolution,
		UsePro:      form.UsePro,
	})
	if err != nil {
		writeError(c, err, "スタイル変換に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}

// Variations は固定プリセットによるスタイルバリエーションを生成します。
// 一部のバリエーションが失敗しても、成功したものだけを返します。
//
// エンドポイント: POST /v1/images/variations
func (h *ImageHandler) Variations(c *gin.Context) {
	var form dto.VariationsForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}
	variations, err := h.uc.GenerateStyleVariations(c.Request.Context(), img, form.BaseStyle, form.Count, form.Resolution)
	if err != nil {
		writeError(c, err, "スタイルバリエーションの生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toVariationResponses(variations))
}

// Composite は複数の参照画像を組み合わせて画像を生成します。15枚目以降の参照画像は無視されます。
//
// エンドポイント: POST /v1/images/composite
// フィールド: prompt, references（複数）, aspect_ratio, resolution
func (h *ImageHandler) Composite(c *gin.Context) {
	var form dto.CompositeForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	refs := make([]entity.Image, 0, len(form.References))
	for _, fh := range form.References {
		img, err := readImage(fh)
		if err != nil {
			writeError(c, err, "画像の読み込みに失敗しました")
			return
		}
		refs = append(refs, *img)
	}
	out, err := h.uc.CompositeWithReferences(c.Request.Context(), form.Prompt, refs, usecase.RenderOptions{
		AspectRatio: form.AspectRatio,
		Resolution:  form.Resolution,
	})
	if err != nil {
		writeError(c, err, "画像合成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}

// Texture はシームレステクスチャを生成します。
//
// エンドポイント: POST /v1/images/texture
// Content-Type: application/json
func (h *ImageHandler) Texture(c *gin.Context) {
	var req dto.TextureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	img, err := h.uc.GenerateSeamlessTexture(c.Request.Context(), req.Material, req.Resolution)
	if err != nil {
		writeError(c, err, "テクスチャ生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, dto.TextureResponse{Image: toImageResponse(img)})
}

// Grounded はGoogle検索の結果を反映した画像を生成します。
//
// エンドポイント: POST /v1/images/grounded
// Content-Type: application/json
func (h *ImageHandler) Grounded(c *gin.Context) {
	var req dto.GroundedImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.uc.GenerateGroundedImage(c.Request.Context(), req.Prompt, usecase.RenderOptions{
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
	})
	if err != nil {
		writeError(c, err, "画像生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}

// Generate4K は4K解像度の画像を生成します。image を添付した場合はその画像を編集します。
//
// エンドポイント: POST /v1/images/4k
func (h *ImageHandler) Generate4K(c *gin.Context) {
	var form dto.Generate4KForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}
	out, err := h.uc.Generate4KImage(c.Request.Context(), form.Prompt, form.AspectRatio, img)
	if err != nil {
		writeError(c, err, "4K画像の生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toGeneratedImageResponse(out))
}
