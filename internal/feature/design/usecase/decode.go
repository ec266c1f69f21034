package usecase

import (
	"log/slog"

	"github.com/tidwall/gjson"

	"designkit_backend/internal/feature/design/domain/entity"
)

// JSONレスポンスのデコード。
// 不正なJSONの場合は生のテキストをログに残し、ゼロ値を返します（エラーにはしません）。
// 欠けた数値は0、欠けたリストは空、欠けたカテゴリは "other" として補完します。

func parseJSON(op, raw string) (gjson.Result, bool) {
	if !gjson.Valid(raw) {
		slog.Warn("JSONレスポンスの解析に失敗", "operation", op, "raw", raw)
		return gjson.Result{}, false
	}
	return gjson.Parse(raw), true
}

func stringOr(r gjson.Result, def string) string {
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.String()
}

func floatOr(r gjson.Result, def float64) float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.Float()
}

func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func recordList(r gjson.Result) []map[string]any {
	out := []map[string]any{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if m, ok := v.Value().(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// decodeObjects は検出結果のJSON配列をデコードします。信頼度によるフィルタは呼び出し側で行います。
func decodeObjects(raw string) []entity.RecognizedObject {
	root, ok := parseJSON(OpRecognizeObjects, raw)
	if !ok {
		return []entity.RecognizedObject{}
	}
	if !root.IsArray() {
		slog.Warn("検出結果が配列ではありません", "raw", raw)
		return []entity.RecognizedObject{}
	}
	objects := []entity.RecognizedObject{}
	for _, item := range root.Array() {
		if !item.IsObject() {
			continue
		}
		bbox := item.Get("bounding_box")
		objects = append(objects, entity.RecognizedObject{
			Label:      stringOr(item.Get("label"), "unknown"),
			Confidence: floatOr(item.Get("confidence"), 0),
			BoundingBox: entity.BoundingBox{
				MinX: floatOr(bbox.Get("min_x"), 0),
				MinY: floatOr(bbox.Get("min_y"), 0),
				MaxX: floatOr(bbox.Get("max_x"), 1),
				MaxY: floatOr(bbox.Get("max_y"), 1),
			},
			Category: entity.ParseObjectCategory(item.Get("category").String()),
		})
	}
	return objects
}

// decodeRoomAnalysis は部屋分析のJSONオブジェクトをデコードします。
func decodeRoomAnalysis(raw string) entity.RoomAnalysis {
	root, ok := parseJSON(OpAnalyzeRoom, raw)
	if !ok || !root.IsObject() {
		return entity.EmptyRoomAnalysis()
	}
	dims := root.Get("dimensions")
	return entity.RoomAnalysis{
		RoomType: stringOr(root.Get("room_type"), entity.UnknownRoomType),
		Dimensions: entity.RoomDimensions{
			Width:  floatOr(dims.Get("estimated_width"), 0),
			Length: floatOr(dims.Get("estimated_length"), 0),
			Height: floatOr(dims.Get("estimated_height"), 0),
		},
		LightingSuggestions:  stringList(root.Get("lighting_suggestions")),
		StyleRecommendations: stringList(root.Get("style_recommendations")),
		DetectedFeatures:     stringList(root.Get("detected_features")),
	}
}

// decodeFloorPlan は間取りのJSONオブジェクトをデコードします。
// dimensions が欠けている場合は幅・奥行きとも0になります。
func decodeFloorPlan(raw string) entity.FloorPlan {
	root, ok := parseJSON(OpFloorPlan, raw)
	if !ok || !root.IsObject() {
		return entity.EmptyFloorPlan()
	}
	plan := entity.EmptyFloorPlan()
	plan.Walls = recordList(root.Get("walls"))
	plan.Doors = recordList(root.Get("doors"))
	plan.Windows = recordList(root.Get("windows"))
	if dims := root.Get("dimensions"); dims.IsObject() {
		plan.Dimensions = map[string]float64{}
		dims.ForEach(func(key, value gjson.Result) bool {
			plan.Dimensions[key.String()] = value.Float()
			return true
		})
	}
	return plan
}

// decodeProducts は商品推薦のJSON配列をデコードします。
func decodeProducts(raw string) []entity.ProductRecommendation {
	root, ok := parseJSON(OpProductRecommend, raw)
	if !ok {
		return []entity.ProductRecommendation{}
	}
	if !root.IsArray() {
		slog.Warn("商品推薦が配列ではありません", "raw", raw)
		return []entity.ProductRecommendation{}
	}
	products := []entity.ProductRecommendation{}
	for _, item := range root.Array() {
		if !item.IsObject() {
			continue
		}
		products = append(products, entity.ProductRecommendation{
			Name:         item.Get("name").String(),
			Brand:        item.Get("brand").String(),
			PriceRange:   item.Get("price_range").String(),
			Retailer:     item.Get("retailer").String(),
			FitRationale: item.Get("fit_rationale").String(),
			SearchQuery:  item.Get("search_query").String(),
		})
	}
	return products
}
