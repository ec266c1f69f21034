package usecase

import (
	"fmt"
	"strings"

	"designkit_backend/internal/feature/design/domain/entity"
)

const recognitionPrompt = `You are an expert architectural and interior design feature detector.
Analyze this room image and identify ALL visible objects and architectural features.

For each detected item, provide a JSON array with objects containing:
- label: specific name (e.g., "wall", "floor", "ceiling", "window", "door", "sofa", "table")
- confidence: 0.0 to 1.0 based on detection certainty
- bounding_box: {min_x, min_y, max_x, max_y} as normalized coordinates (0-1)
- category: one of "architectural", "furniture", "fixture", "other"

Categories:
- architectural: walls, floors, ceilings, columns, beams, stairs
- furniture: tables, chairs, sofas, beds, desks, shelves, cabinets
- fixture: windows, doors, outlets, switches, vents, built-in lighting
- other: plants, decorations, artwork, rugs, curtains

Return ONLY a valid JSON array.`

const roomAnalysisPrompt = `You are an expert interior designer and architect.
Analyze this room image and provide a JSON object with:

{
    "room_type": "living room/bedroom/kitchen/etc",
    "dimensions": {
        "estimated_width": <meters>,
        "estimated_length": <meters>,
        "estimated_height": <meters>
    },
    "lighting_suggestions": ["suggestion1", "suggestion2", ...],
    "style_recommendations": ["style1", "style2", ...],
    "detected_features": ["feature1", "feature2", ...]
}

Return ONLY valid JSON.`

const roomStylePromptTemplate = `Transform this room image according to the following style:
%s

Important guidelines:
- Preserve the room's basic structure and layout
- Change materials, colors, textures, and decor to match the style
- Maintain realistic lighting that matches the new materials
- Keep the same camera angle and perspective
- Make it look like a professional interior design visualization`

const variationPromptTemplate = `Transform this room with a %s style, %s.

Create a professional interior design visualization that:
- Preserves the room's structure
- Applies the style consistently throughout
- Looks realistic and achievable`

const texturePromptTemplate = `Create a seamless tileable texture for: %s

Requirements:
- Must be perfectly tileable (edges match when repeated)
- High detail and realistic appearance
- Suitable for 3D rendering and AR visualization
- Professional quality interior design material
- Even lighting with no visible seams
- Square format`

const floorPlanPromptTemplate = `You are an expert architect analyzing a room image to generate a 2D floor plan.

%s

Based on this image, generate a floor plan as JSON:
{
    "walls": [{"start": {"x": 0, "y": 0}, "end": {"x": 5, "y": 0}}, ...],
    "doors": [{"position": {"x": 2, "y": 0}, "width": 0.9, "angle": 90}, ...],
    "windows": [{"position": {"x": 3, "y": 0}, "width": 1.2, "height": 1.5}, ...],
    "dimensions": {"width": 5.0, "length": 4.0}
}

All measurements in meters. Return ONLY valid JSON.`

const productPromptTemplate = `Based on this room analysis, recommend specific furniture and decor products.

Room Type: %s
Room Dimensions: %gm x %gm
Style Recommendations: %s
User Preferred Style: %s
Budget Range: %s
Priorities: %s

Search for REAL products currently available. Provide 5-8 recommendations as JSON array:
[
    {
        "name": "Product Name",
        "brand": "Brand",
        "price_range": "$X - $Y",
        "retailer": "Store Name",
        "fit_rationale": "Why this fits",
        "search_query": "search terms"
    }
]

Return ONLY valid JSON array.`

const notSpecified = "Not specified"

func roomStylePrompt(style string) string {
	return fmt.Sprintf(roomStylePromptTemplate, style)
}

func variationPrompt(baseStyle string, preset entity.StylePreset) string {
	return fmt.Sprintf(variationPromptTemplate, baseStyle, preset.Modifier)
}

func texturePrompt(material string) string {
	return fmt.Sprintf(texturePromptTemplate, material)
}

// floorPlanContext は建築要素（壁・ドア・窓・床）の位置をプロンプト用に要約します。
func floorPlanContext(objects []entity.RecognizedObject) string {
	var features []string
	for _, o := range objects {
		if !o.IsArchitectural() {
			continue
		}
		features = append(features, fmt.Sprintf("%s at (%.2f, %.2f)", o.Label, o.BoundingBox.MinX, o.BoundingBox.MinY))
	}
	if len(features) == 0 {
		return ""
	}
	return "Detected features: " + strings.Join(features, ", ")
}

func floorPlanPrompt(objects []entity.RecognizedObject) string {
	return fmt.Sprintf(floorPlanPromptTemplate, floorPlanContext(objects))
}

func productPrompt(a entity.RoomAnalysis, q ProductQuery) string {
	priorities := notSpecified
	if len(q.Priorities) > 0 {
		priorities = strings.Join(q.Priorities, ", ")
	}
	return fmt.Sprintf(productPromptTemplate,
		a.RoomType,
		a.Dimensions.Width, a.Dimensions.Length,
		strings.Join(a.StyleRecommendations, ", "),
		orDefault(q.Style, notSpecified),
		q.Budget.Describe(),
		priorities,
	)
}
