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

// LzwDecoder GIF变体LZW解压器
// 字典为固定容量4096条目的(前缀,后缀)数组, 条目增长只是活动计数的增长,
// 峰值内存与字典容量成正比, 与输出像素数无关
type LzwDecoder struct {
	br          *BitReader
	minCodeSize uint8
	codeSize    uint
	clearCode   uint16
	endCode     uint16
	nextFree    uint16
	prevCode    uint16
	first       uint8
	done        bool
	sp          int
	prefix      [MaxDictEntries]uint16
	suffix      [MaxDictEntries]uint8
	stack       [MaxDictEntries]uint8
}

// NewLzwDecoder 创建LZW解压器
// 入参: br 位流读取器, minCodeSize 最小编码位宽
// 返回: *LzwDecoder 解压器, error 错误信息
func NewLzwDecoder(br *BitReader, minCodeSize uint8) (*LzwDecoder, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, ErrMalformedHeader
	}
	d := &LzwDecoder{
		br:          br,
		minCodeSize: minCodeSize,
		clearCode:   1 << minCodeSize,
		endCode:     1<<minCodeSize + 1,
	}
	for i := uint16(0); i <= d.endCode; i++ {
		d.prefix[i] = codeNone
		d.suffix[i] = uint8(i)
	}
	d.reset()
	return d, nil
}

// reset 重置字典为根条目并恢复初始编码位宽
func (d *LzwDecoder) reset() {
	d.codeSize = uint(d.minCodeSize) + 1
	d.nextFree = d.endCode + 1
	d.prevCode = codeNone
}

// Next 取出下一个调色板索引
// 索引按光栅顺序产出, 遇到结束码后ok为false
// 返回: uint8 调色板索引, bool 是否有效, error 错误信息
func (d *LzwDecoder) Next() (uint8, bool, error) {
	for {
		if d.sp > 0 {
			d.sp--
			return d.stack[d.sp], true, nil
		}
		if d.done {
			return 0, false, nil
		}
		code, err := d.br.ReadCode(d.codeSize)
		if err != nil {
			return 0, false, err
		}
		if code == d.clearCode {
			d.reset()
			continue
		}
		if code == d.endCode {
			d.done = true
			return 0, false, nil
		}
		if err := d.expand(code); err != nil {
			return 0, false, err
		}
	}
}

// expand 展开一个编码所指的索引序列到内部栈
// 沿(前缀,后缀)链回溯到根条目, 链上条目索引严格递减, 回溯深度受字典容量约束
func (d *LzwDecoder) expand(code uint16) error {
	c := code
	if code == d.nextFree {
		// KwKwK: 序列为前一序列加上其首符号, 首符号最后产出
		if d.prevCode == codeNone {
			return ErrDictionaryOverflow
		}
		d.stack[d.sp] = d.first
		d.sp++
		c = d.prevCode
	} else if code > d.nextFree {
		return ErrDictionaryOverflow
	}
	for d.prefix[c] != codeNone {
		if d.sp >= len(d.stack) {
			return ErrDictionaryOverflow
		}
		d.stack[d.sp] = d.suffix[c]
		d.sp++
		c = d.prefix[c]
	}
	d.stack[d.sp] = d.suffix[c]
	d.sp++
	d.first = d.suffix[c]
	if d.prevCode != codeNone && d.nextFree < MaxDictEntries {
		d.prefix[d.nextFree] = d.prevCode
		d.suffix[d.nextFree] = d.first
		d.nextFree++
		if d.nextFree == 1<<d.codeSize && d.codeSize < MaxCodeSize {
			d.codeSize++
		}
	}
	d.prevCode = code
	return nil
}
