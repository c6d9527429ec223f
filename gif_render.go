// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tinygif

import (
	"errors"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

// ErrPixelOutOfBounds 像素坐标超出接收器边界
var ErrPixelOutOfBounds = errors.New("pixel out of bounds")

// PixelSink 像素接收器
// 解码器按光栅顺序逐像素调用, 颜色向目标像素格式的转换由接收器完成,
// 越界写入由接收器自行检查并报错, 错误会原样向上传播
type PixelSink interface {
	SetPixel(x, y int, r, g, b uint8) error
}

// TranslateSink 坐标平移包装器
// 把所有写入平移(Dx,Dy)后转发给内部接收器
type TranslateSink struct {
	Sink PixelSink
	Dx   int
	Dy   int
}

// SetPixel 平移坐标后写入像素
// 入参: x 轴坐标, y 轴坐标, r 红色分量, g 绿色分量, b 蓝色分量
// 返回: error 错误信息
func (s *TranslateSink) SetPixel(x, y int, r, g, b uint8) error {
	return s.Sink.SetPixel(x+s.Dx, y+s.Dy, r, g, b)
}

// ImageSink 标准库图像接收器
// 把像素写入一个draw.Image目标
type ImageSink struct {
	Img draw.Image
}

// SetPixel 写入一个不透明像素
// 入参: x 轴坐标, y 轴坐标, r 红色分量, g 绿色分量, b 蓝色分量
// 返回: error 错误信息
func (s *ImageSink) SetPixel(x, y int, r, g, b uint8) error {
	if !(image.Point{X: x, Y: y}.In(s.Img.Bounds())) {
		return ErrPixelOutOfBounds
	}
	s.Img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	return nil
}

// backgroundColor 获取逻辑屏幕背景色
// 背景色索引无效或无全局颜色表时为全透明
// 入参: g 解码句柄
// 返回: color.Color 背景色
func backgroundColor(g *Gif) color.Color {
	if g.globalColorTable != nil {
		if cr, cg, cb, err := g.globalColorTable.Resolve(g.backgroundColorIndex); err == nil {
			return color.RGBA{R: cr, G: cg, B: cb, A: 0xFF}
		}
	}
	return color.RGBA{}
}

// newCanvas 创建按背景色填充的逻辑屏幕画布
// 入参: g 解码句柄
// 返回: *image.RGBA 画布
func newCanvas(g *Gif) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, int(g.width), int(g.height)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backgroundColor(g)), image.Point{}, draw.Src)
	return canvas
}

// cloneCanvas 复制画布
// 入参: src 源画布
// 返回: *image.RGBA 副本
func cloneCanvas(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	return dst
}

// Decode 解码GIF数据包含的第一帧
// 入参: r 读取器
// 返回: image.Image 图像, error 错误信息
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g, err := FromSlice(data)
	if err != nil {
		return nil, err
	}
	frames := g.Frames()
	if len(frames) == 0 {
		return nil, errors.New("no image data")
	}
	canvas := newCanvas(g)
	if err := frames[0].Draw(&ImageSink{Img: canvas}, 0, 0); err != nil {
		return nil, err
	}
	return canvas, nil
}

// DecodeAll 解码所有帧并按处置方式合成
// 每帧产出合成后的完整逻辑屏幕快照
// 入参: r 读取器
// 返回: []image.Image 图像列表, error 错误信息
func DecodeAll(r io.Reader) ([]image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g, err := FromSlice(data)
	if err != nil {
		return nil, err
	}
	canvas := newCanvas(g)
	bg := image.NewUniform(backgroundColor(g))
	frames := g.Frames()
	images := make([]image.Image, 0, len(frames))
	for i := range frames {
		frame := &frames[i]
		var prev *image.RGBA
		if frame.Disposal() == DisposalRestorePrevious {
			prev = cloneCanvas(canvas)
		}
		if err := frame.Draw(&ImageSink{Img: canvas}, 0, 0); err != nil {
			return images, err
		}
		images = append(images, cloneCanvas(canvas))
		switch frame.Disposal() {
		case DisposalRestoreBackground:
			rect := image.Rect(
				int(frame.left), int(frame.top),
				int(frame.left)+int(frame.width), int(frame.top)+int(frame.height),
			)
			draw.Draw(canvas, rect.Intersect(canvas.Bounds()), bg, image.Point{}, draw.Src)
		case DisposalRestorePrevious:
			draw.Copy(canvas, image.Point{}, prev, prev.Bounds(), draw.Src, nil)
		}
	}
	return images, nil
}

// DecodeConfig 获取GIF图像配置
// 入参: r 读取器
// 返回: image.Config 图像配置, error 错误信息
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	g, err := FromSlice(data)
	if err != nil {
		return image.Config{}, err
	}
	var model color.Model = color.RGBAModel
	if t := g.globalColorTable; t != nil {
		palette := make(color.Palette, t.Size())
		for i := range palette {
			cr, cg, cb, _ := t.Resolve(uint8(i))
			palette[i] = color.RGBA{R: cr, G: cg, B: cb, A: 0xFF}
		}
		model = palette
	}
	return image.Config{ColorModel: model, Width: int(g.width), Height: int(g.height)}, nil
}

func init() {
	image.RegisterFormat("gif", "GIF8?a", Decode, DecodeConfig)
}
