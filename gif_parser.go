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

import "bytes"

// graphicControl 图形控制扩展的待定字段, 只作用于紧随其后的一个图像块
type graphicControl struct {
	disposal         DisposalMethod
	hasTransparency  bool
	transparentIndex uint8
	delayCentis      uint16
}

// byteReader 字节游标读取器
type byteReader struct {
	data []byte
	pos  int
}

// readByte 读取1字节
// 返回: uint8 结果, error 错误信息
func (r *byteReader) readByte() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEndOfData
	}
	c := r.data[r.pos]
	r.pos++
	return c, nil
}

// readUint16 读取2字节小端序整数
// 返回: uint16 结果, error 错误信息
func (r *byteReader) readUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrUnexpectedEndOfData
	}
	v := uint16(r.data[r.pos]) | uint16(r.data[r.pos+1])<<8
	r.pos += 2
	return v, nil
}

// readSlice 读取指定长度的字节段, 借用不复制
// 入参: n 长度
// 返回: []byte 字节段, error 错误信息
func (r *byteReader) readSlice(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, ErrUnexpectedEndOfData
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// skipSubBlocks 跳过一个长度前缀子块序列直到零长度子块
// 返回: error 错误信息
func (r *byteReader) skipSubBlocks() error {
	for {
		n, err := r.readByte()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if _, err := r.readSlice(int(n)); err != nil {
			return err
		}
	}
}

// parseGif 解析GIF容器结构
// 急切校验文件头/屏幕描述符/颜色表并定位各帧边界, 不解压像素数据
// 入参: data 完整的GIF数据
// 返回: *Gif 解码句柄, error 错误信息
func parseGif(data []byte) (*Gif, error) {
	r := &byteReader{data: data}
	sig, err := r.readSlice(6)
	if err != nil {
		return nil, err
	}
	g := &Gif{data: data, loopCount: -1}
	switch {
	case bytes.Equal(sig, []byte("GIF87a")):
		g.version = Version87a
	case bytes.Equal(sig, []byte("GIF89a")):
		g.version = Version89a
	default:
		return nil, ErrMalformedHeader
	}
	if g.width, err = r.readUint16(); err != nil {
		return nil, err
	}
	if g.height, err = r.readUint16(); err != nil {
		return nil, err
	}
	packed, err := r.readByte()
	if err != nil {
		return nil, err
	}
	g.hasGlobalColorTable = packed&0x80 != 0
	g.colorResolution = (packed >> 4) & 0x07
	if g.backgroundColorIndex, err = r.readByte(); err != nil {
		return nil, err
	}
	if g.pixelAspectRatio, err = r.readByte(); err != nil {
		return nil, err
	}
	if g.hasGlobalColorTable {
		size := 1 << ((packed & 0x07) + 1)
		raw, err := r.readSlice(3 * size)
		if err != nil {
			return nil, err
		}
		g.globalColorTable = NewColorTable(raw)
	}
	var pending *graphicControl
	for {
		introducer, err := r.readByte()
		if err != nil {
			return nil, err
		}
		switch introducer {
		case BlockTrailer:
			// 尾部多余数据被忽略
			return g, nil
		case BlockExtension:
			if err := parseExtension(r, g, &pending); err != nil {
				return nil, err
			}
		case BlockImageDescriptor:
			frame, err := parseImageDescriptor(r, g, pending)
			if err != nil {
				return nil, err
			}
			g.frames = append(g.frames, frame)
			pending = nil
		default:
			return nil, ErrUnknownBlockIntroducer
		}
	}
}

// parseExtension 解析一个扩展块
// 图形控制扩展的字段被捕获为待定状态, 其余扩展捕获相关字段后跳过
// 入参: r 字节读取器, g 解码句柄, pending 待定图形控制字段
// 返回: error 错误信息
func parseExtension(r *byteReader, g *Gif, pending **graphicControl) error {
	label, err := r.readByte()
	if err != nil {
		return err
	}
	switch label {
	case LabelGraphicControl:
		size, err := r.readByte()
		if err != nil {
			return err
		}
		if size != 4 {
			return ErrMalformedHeader
		}
		packed, err := r.readByte()
		if err != nil {
			return err
		}
		ctrl := &graphicControl{hasTransparency: packed&0x01 != 0}
		disposal := DisposalMethod((packed >> 2) & 0x07)
		if disposal <= DisposalRestorePrevious {
			ctrl.disposal = disposal
		}
		if ctrl.delayCentis, err = r.readUint16(); err != nil {
			return err
		}
		if ctrl.transparentIndex, err = r.readByte(); err != nil {
			return err
		}
		terminator, err := r.readByte()
		if err != nil {
			return err
		}
		if terminator != 0 {
			return ErrMalformedHeader
		}
		*pending = ctrl
		return nil
	case LabelApplication:
		size, err := r.readByte()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		ident, err := r.readSlice(int(size))
		if err != nil {
			return err
		}
		netscape := size == 11 &&
			(bytes.Equal(ident, []byte("NETSCAPE2.0")) || bytes.Equal(ident, []byte("ANIMEXTS1.0")))
		for {
			n, err := r.readByte()
			if err != nil {
				return err
			}
			if n == 0 {
				return nil
			}
			body, err := r.readSlice(int(n))
			if err != nil {
				return err
			}
			if netscape && n == 3 && body[0] == 1 {
				g.loopCount = int(body[1]) | int(body[2])<<8
			}
		}
	default:
		// 注释/纯文本/未知标签的扩展都以自身的子块序列自定界
		return r.skipSubBlocks()
	}
}

// parseImageDescriptor 解析一个图像描述符并构建帧描述
// 记录压缩数据起始偏移量, 跳过而不消费子块序列
// 入参: r 字节读取器, g 解码句柄, pending 待定图形控制字段
// 返回: Frame 帧描述, error 错误信息
func parseImageDescriptor(r *byteReader, g *Gif, pending *graphicControl) (Frame, error) {
	frame := Frame{gif: g}
	var err error
	if frame.left, err = r.readUint16(); err != nil {
		return frame, err
	}
	if frame.top, err = r.readUint16(); err != nil {
		return frame, err
	}
	if frame.width, err = r.readUint16(); err != nil {
		return frame, err
	}
	if frame.height, err = r.readUint16(); err != nil {
		return frame, err
	}
	packed, err := r.readByte()
	if err != nil {
		return frame, err
	}
	if packed&0x40 != 0 {
		// 隔行扫描图像被拒绝而不是错误解码
		return frame, ErrUnsupportedFeature
	}
	if packed&0x80 != 0 {
		size := 1 << ((packed & 0x07) + 1)
		raw, err := r.readSlice(3 * size)
		if err != nil {
			return frame, err
		}
		frame.localColorTable = NewColorTable(raw)
	}
	if frame.minCodeSize, err = r.readByte(); err != nil {
		return frame, err
	}
	if frame.minCodeSize < 2 || frame.minCodeSize > 8 {
		return frame, ErrMalformedHeader
	}
	frame.dataOffset = r.pos
	if err := r.skipSubBlocks(); err != nil {
		return frame, err
	}
	if pending != nil {
		frame.disposal = pending.disposal
		frame.hasTransparency = pending.hasTransparency
		frame.transparentIndex = pending.transparentIndex
		frame.delayCentis = pending.delayCentis
	}
	return frame, nil
}
