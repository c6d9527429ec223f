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

// ColorTable 颜色表
// 借用输入数据中长度为3*size的字节段, 条目数总是2的幂, 最多256项
type ColorTable struct {
	data []byte
}

// NewColorTable 创建颜色表
// 入参: data 3*size字节的RGB三元组序列
// 返回: *ColorTable 颜色表
func NewColorTable(data []byte) *ColorTable {
	return &ColorTable{data: data}
}

// Size 获取条目数
// 返回: int 条目数
func (t *ColorTable) Size() int {
	return len(t.data) / 3
}

// Resolve 解析调色板索引为RGB三元组
// 入参: index 调色板索引
// 返回: r 红色分量, g 绿色分量, b 蓝色分量, error 错误信息
func (t *ColorTable) Resolve(index uint8) (r, g, b uint8, err error) {
	offset := int(index) * 3
	if offset+3 > len(t.data) {
		return 0, 0, 0, ErrPaletteIndexOutOfRange
	}
	return t.data[offset], t.data[offset+1], t.data[offset+2], nil
}
