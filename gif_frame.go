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

// Frame 帧描述
// 解析阶段一次性构建的不可变描述, 不持有解码后的像素,
// 像素解压在Draw调用期间流式进行, 可任意次重复解码
type Frame struct {
	gif              *Gif
	left             uint16
	top              uint16
	width            uint16
	height           uint16
	delayCentis      uint16
	disposal         DisposalMethod
	hasTransparency  bool
	transparentIndex uint8
	localColorTable  *ColorTable
	dataOffset       int
	minCodeSize      uint8
}

// Left 获取帧左边距
// 返回: uint16 左边距
func (f *Frame) Left() uint16 {
	return f.left
}

// Top 获取帧上边距
// 返回: uint16 上边距
func (f *Frame) Top() uint16 {
	return f.top
}

// Width 获取帧宽度
// 返回: uint16 宽度
func (f *Frame) Width() uint16 {
	return f.width
}

// Height 获取帧高度
// 返回: uint16 高度
func (f *Frame) Height() uint16 {
	return f.height
}

// DelayCentis 获取帧延迟, 单位为百分之一秒
// 返回: uint16 延迟值
func (f *Frame) DelayCentis() uint16 {
	return f.delayCentis
}

// Disposal 获取帧处置方式
// 返回: DisposalMethod 处置方式
func (f *Frame) Disposal() DisposalMethod {
	return f.disposal
}

// TransparentIndex 获取透明色索引
// 返回: uint8 透明色索引, bool 是否声明了透明色
func (f *Frame) TransparentIndex() (uint8, bool) {
	return f.transparentIndex, f.hasTransparency
}

// LocalColorTable 获取局部颜色表
// 返回: *ColorTable 局部颜色表, 不存在时为nil
func (f *Frame) LocalColorTable() *ColorTable {
	return f.localColorTable
}

// EffectiveColorTable 获取本帧生效的颜色表
// 局部颜色表优先于全局颜色表
// 返回: *ColorTable 颜色表, 两者都不存在时为nil
func (f *Frame) EffectiveColorTable() *ColorTable {
	if f.localColorTable != nil {
		return f.localColorTable
	}
	return f.gif.globalColorTable
}

// Draw 解码本帧并流式绘制到像素接收器
// 每次调用持有独立的位流读取器和LZW解压器, 像素按光栅顺序逐个写出,
// 透明色索引对应的像素被跳过, 接收器当前内容保持不变,
// 出错时中止本次绘制, 已写出的像素保持原样
// 入参: sink 像素接收器, offsetX 水平平移量, offsetY 垂直平移量
// 返回: error 错误信息
func (f *Frame) Draw(sink PixelSink, offsetX, offsetY int) error {
	table := f.EffectiveColorTable()
	if table == nil {
		return ErrPaletteIndexOutOfRange
	}
	dec, err := NewLzwDecoder(NewBitReader(f.gif.data, f.dataOffset), f.minCodeSize)
	if err != nil {
		return err
	}
	width := int(f.width)
	total := width * int(f.height)
	baseX := int(f.left) + offsetX
	baseY := int(f.top) + offsetY
	for i := 0; i < total; i++ {
		index, ok, err := dec.Next()
		if err != nil {
			return err
		}
		if !ok {
			// 结束码提前出现, 剩余像素保持未绘制
			return nil
		}
		if f.hasTransparency && index == f.transparentIndex {
			continue
		}
		r, g, b, err := table.Resolve(index)
		if err != nil {
			return err
		}
		if err := sink.SetPixel(baseX+i%width, baseY+i/width, r, g, b); err != nil {
			return err
		}
	}
	return nil
}
