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

// Package tinygif 一个面向受限内存环境的纯 Go 语言 GIF87a/89a 解码器
// 解析阶段急切校验容器结构, 像素解压推迟到每帧绘制时流式进行,
// 工作内存以LZW字典容量为上界, 与图像尺寸和帧数无关
package tinygif

// Gif GIF解码句柄
// 借用而不复制输入数据, 构建后不可变
type Gif struct {
	data                 []byte
	version              Version
	width                uint16
	height               uint16
	hasGlobalColorTable  bool
	colorResolution      uint8
	backgroundColorIndex uint8
	pixelAspectRatio     uint8
	globalColorTable     *ColorTable
	loopCount            int
	frames               []Frame
}

// FromSlice 从字节切片创建GIF解码句柄
// 急切校验文件头/屏幕描述符/颜色表并定位各帧, 不解压像素数据,
// 解析错误会使整个构建失败, 不产生部分可用的句柄
// 入参: data 从签名到文件结尾的完整GIF数据
// 返回: *Gif 解码句柄, error 错误信息
func FromSlice(data []byte) (*Gif, error) {
	return parseGif(data)
}

// Version 获取GIF版本
// 返回: Version 版本
func (g *Gif) Version() Version {
	return g.version
}

// Width 获取逻辑屏幕宽度
// 返回: uint16 宽度
func (g *Gif) Width() uint16 {
	return g.width
}

// Height 获取逻辑屏幕高度
// 返回: uint16 高度
func (g *Gif) Height() uint16 {
	return g.height
}

// ColorResolution 获取颜色分辨率字段
// 返回: uint8 颜色分辨率
func (g *Gif) ColorResolution() uint8 {
	return g.colorResolution
}

// BackgroundColorIndex 获取背景色索引
// 返回: uint8 背景色索引
func (g *Gif) BackgroundColorIndex() uint8 {
	return g.backgroundColorIndex
}

// PixelAspectRatio 获取像素宽高比字段
// 返回: uint8 像素宽高比
func (g *Gif) PixelAspectRatio() uint8 {
	return g.pixelAspectRatio
}

// GlobalColorTable 获取全局颜色表
// 返回: *ColorTable 全局颜色表, 不存在时为nil
func (g *Gif) GlobalColorTable() *ColorTable {
	return g.globalColorTable
}

// LoopCount 获取动画循环次数
// 来自NETSCAPE2.0/ANIMEXTS1.0应用扩展, 0表示无限循环, -1表示未声明
// 返回: int 循环次数
func (g *Gif) LoopCount() int {
	return g.loopCount
}

// Frames 获取帧描述序列
// 序列有限且按文件顺序排列, 重复调用返回相同序列
// 返回: []Frame 帧描述序列
func (g *Gif) Frames() []Frame {
	return g.frames
}
