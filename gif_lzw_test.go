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
	"testing"
)

// packCodes 按解码器的位宽状态机打包编码序列并切分为子块序列
func packCodes(minCodeSize uint8, codes []uint16) []byte {
	var payload []byte
	var acc uint32
	var nbits uint
	clear := uint16(1) << minCodeSize
	end := clear + 1
	width := uint(minCodeSize) + 1
	nextFree := end + 1
	prev := codeNone
	for _, code := range codes {
		acc |= uint32(code) << nbits
		nbits += width
		for nbits >= 8 {
			payload = append(payload, byte(acc))
			acc >>= 8
			nbits -= 8
		}
		switch code {
		case clear:
			width = uint(minCodeSize) + 1
			nextFree = end + 1
			prev = codeNone
		case end:
		default:
			if prev != codeNone && nextFree < MaxDictEntries {
				nextFree++
				if nextFree == 1<<width && width < MaxCodeSize {
					width++
				}
			}
			prev = code
		}
	}
	if nbits > 0 {
		payload = append(payload, byte(acc))
	}
	return subBlocks(payload)
}

// subBlocks 把负载切分为长度前缀子块并附加零长度终止块
func subBlocks(payload []byte) []byte {
	var out []byte
	for len(payload) > 0 {
		n := len(payload)
		if n > 255 {
			n = 255
		}
		out = append(out, byte(n))
		out = append(out, payload[:n]...)
		payload = payload[n:]
	}
	return append(out, 0)
}

// drainLzw 解压全部调色板索引直到结束码
func drainLzw(t *testing.T, minCodeSize uint8, data []byte) []uint8 {
	t.Helper()
	dec, err := NewLzwDecoder(NewBitReader(data, 0), minCodeSize)
	if err != nil {
		t.Fatalf("NewLzwDecoder: %v", err)
	}
	var out []uint8
	for {
		v, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func equalIndices(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLzwDecodeSimple(t *testing.T) {
	// clear, 0, 1, 1, 0, end
	data := packCodes(2, []uint16{4, 0, 1, 1, 0, 5})
	got := drainLzw(t, 2, data)
	if !equalIndices(got, []uint8{0, 1, 1, 0}) {
		t.Fatalf("got %v, want [0 1 1 0]", got)
	}
}

func TestLzwKwKwK(t *testing.T) {
	// 编码6在被定义的同时被引用, 序列为前一序列加其首符号
	data := packCodes(2, []uint16{4, 0, 6, 5})
	got := drainLzw(t, 2, data)
	if !equalIndices(got, []uint8{0, 0, 0}) {
		t.Fatalf("got %v, want [0 0 0]", got)
	}
}

func TestLzwClearCodeMidStream(t *testing.T) {
	// 中途清除码重置位宽与字典, 清除后继续正确解码
	data := packCodes(2, []uint16{4, 0, 1, 2, 4, 1, 0, 5})
	got := drainLzw(t, 2, data)
	if !equalIndices(got, []uint8{0, 1, 2, 1, 0}) {
		t.Fatalf("got %v, want [0 1 2 1 0]", got)
	}
}

func TestLzwStaleEntryAfterClear(t *testing.T) {
	// 清除后引用清除前创建的条目6属于字典越界
	data := packCodes(2, []uint16{4, 0, 1, 4, 6, 5})
	dec, err := NewLzwDecoder(NewBitReader(data, 0), 2)
	if err != nil {
		t.Fatalf("NewLzwDecoder: %v", err)
	}
	for {
		_, ok, err := dec.Next()
		if err != nil {
			if !errors.Is(err, ErrDictionaryOverflow) {
				t.Fatalf("got %v, want ErrDictionaryOverflow", err)
			}
			return
		}
		if !ok {
			t.Fatal("decode finished without error")
		}
	}
}

func TestLzwCodeBeyondDictionary(t *testing.T) {
	data := packCodes(2, []uint16{4, 7, 5})
	dec, err := NewLzwDecoder(NewBitReader(data, 0), 2)
	if err != nil {
		t.Fatalf("NewLzwDecoder: %v", err)
	}
	if _, _, err := dec.Next(); !errors.Is(err, ErrDictionaryOverflow) {
		t.Fatalf("got %v, want ErrDictionaryOverflow", err)
	}
}

func TestLzwDictionaryOverflowCapsGrowth(t *testing.T) {
	// 没有清除码的稠密编码流把字典增长到容量上限,
	// 超出上限后停止增长, 解码继续且不越过固定缓冲
	codes := []uint16{4, 0}
	for c := uint16(6); c < MaxDictEntries; c++ {
		codes = append(codes, c)
	}
	// 字典已满, 再次引用最高条目不再增长
	codes = append(codes, MaxDictEntries-1, 5)
	data := packCodes(2, codes)
	dec, err := NewLzwDecoder(NewBitReader(data, 0), 2)
	if err != nil {
		t.Fatalf("NewLzwDecoder: %v", err)
	}
	want := 1
	for c := 6; c < MaxDictEntries; c++ {
		want += c - 4
	}
	want += MaxDictEntries - 1 - 4
	got := 0
	for {
		v, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		if v != 0 {
			t.Fatalf("pixel %d: got index %d, want 0", got, v)
		}
		got++
	}
	if got != want {
		t.Fatalf("got %d pixels, want %d", got, want)
	}
}

func TestLzwBadMinCodeSize(t *testing.T) {
	for _, size := range []uint8{0, 1, 9, 12} {
		if _, err := NewLzwDecoder(NewBitReader([]byte{0}, 0), size); !errors.Is(err, ErrMalformedHeader) {
			t.Fatalf("min code size %d: got %v, want ErrMalformedHeader", size, err)
		}
	}
}

func TestLzwTruncatedStream(t *testing.T) {
	// 子块序列在结束码之前耗尽
	data := packCodes(2, []uint16{4, 0})
	dec, err := NewLzwDecoder(NewBitReader(data, 0), 2)
	if err != nil {
		t.Fatalf("NewLzwDecoder: %v", err)
	}
	if _, _, err := dec.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, _, err := dec.Next(); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("got %v, want ErrUnexpectedEndOfData", err)
	}
}
