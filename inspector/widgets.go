package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Row heights per widget, shared by drawing and panel sizing.
const (
	labelHeight = 20
	barHeight   = 18
	angleSize   = 40
	angleHeight = angleSize + 4
	boolHeight  = 18
)

// DrawLabel renders a field as "name: value".
func DrawLabel(x, y int32, f Field) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", f.Name, f.Text()), x, y, 16, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal bar filled to the field's share of its max.
func DrawBar(x, y int32, f Field) int32 {
	ratio := f.Fill()

	barWidth := int32(120)
	barH := int32(14)

	rl.DrawText(f.Name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barH, ColorBarBg)

	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, int32(float64(barWidth)*ratio), barH, fillColor)

	rl.DrawText(fmt.Sprintf("%.2f", f.Number), barX+barWidth+5, y, 14, ColorTextDim)

	return barHeight
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	centerX := x + 60 + angleSize/2
	centerY := y + angleSize/2

	rl.DrawText(name, x, y+angleSize/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, angleSize/2, ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, angleSize/2, ColorTextDim)

	needleLen := float64(angleSize/2 - 4)
	end := rl.Vector2{
		X: float32(float64(centerX) + needleLen*math.Cos(radians)),
		Y: float32(float64(centerY) + needleLen*math.Sin(radians)),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(centerX), Y: float32(centerY)}, end, 2, ColorAngleNeedle)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+60+angleSize+5, y+angleSize/2-7, 14, ColorTextDim)

	return angleHeight
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return boolHeight
}

// DrawField renders a field using its resolved widget.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		return DrawBar(x, y, f)
	case WidgetAngle:
		return DrawAngle(x, y, f.Name, f.Number)
	case WidgetBool:
		on, _ := f.Value.(bool)
		return DrawBool(x, y, f.Name, on)
	}
	return DrawLabel(x, y, f)
}

// FieldHeight returns the height DrawField uses for f.
func FieldHeight(f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		return barHeight
	case WidgetAngle:
		return angleHeight
	case WidgetBool:
		return boolHeight
	}
	return labelHeight
}
