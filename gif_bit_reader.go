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

// BitReader 位流读取器
// 在长度前缀子块序列上按LSB优先顺序读取变宽LZW编码,
// 子块序列以零长度子块结束, 读取会自动跨越子块边界
type BitReader struct {
	data      []byte
	pos       int
	blockLeft int
	bits      uint32
	nbits     uint
	done      bool
}

// NewBitReader 创建位流读取器
// 入参: data 数据源, offset 子块序列起始偏移量
// 返回: *BitReader 位流读取器
func NewBitReader(data []byte, offset int) *BitReader {
	if offset < 0 || offset > len(data) {
		offset = len(data)
	}
	return &BitReader{data: data, pos: offset}
}

// ReadCode 读取一个指定位宽的LZW编码
// 入参: width 位宽
// 返回: uint16 编码值, error 错误信息
func (b *BitReader) ReadCode(width uint) (uint16, error) {
	for b.nbits < width {
		c, err := b.nextByte()
		if err != nil {
			return 0, err
		}
		b.bits |= uint32(c) << b.nbits
		b.nbits += 8
	}
	code := uint16(b.bits & (1<<width - 1))
	b.bits >>= width
	b.nbits -= width
	return code, nil
}

// nextByte 取出下一个数据字节, 必要时进入下一个子块
func (b *BitReader) nextByte() (uint8, error) {
	if b.done {
		return 0, ErrUnexpectedEndOfData
	}
	if b.blockLeft == 0 {
		if b.pos >= len(b.data) {
			return 0, ErrUnexpectedEndOfData
		}
		n := int(b.data[b.pos])
		b.pos++
		if n == 0 {
			b.done = true
			return 0, ErrUnexpectedEndOfData
		}
		b.blockLeft = n
	}
	if b.pos >= len(b.data) {
		return 0, ErrUnexpectedEndOfData
	}
	c := b.data[b.pos]
	b.pos++
	b.blockLeft--
	return c, nil
}
