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

import "errors"

const (
	// BlockExtension 扩展块引导字节
	BlockExtension = 0x21
	// BlockImageDescriptor 图像描述符引导字节
	BlockImageDescriptor = 0x2C
	// BlockTrailer 文件结尾引导字节
	BlockTrailer = 0x3B
)

const (
	// LabelGraphicControl 图形控制扩展标签
	LabelGraphicControl = 0xF9
	// LabelComment 注释扩展标签
	LabelComment = 0xFE
	// LabelApplication 应用扩展标签
	LabelApplication = 0xFF
	// LabelPlainText 纯文本扩展标签
	LabelPlainText = 0x01
)

const (
	// MaxCodeSize LZW编码最大位宽
	MaxCodeSize = 12
	// MaxDictEntries LZW字典最大条目数
	MaxDictEntries = 1 << MaxCodeSize
)

// codeNone 表示空编码, 不使用指针以节省内存
const codeNone uint16 = 0xFFFF

var (
	// ErrMalformedHeader 文件签名或结构损坏
	ErrMalformedHeader = errors.New("malformed header")
	// ErrUnknownBlockIntroducer 未知的顶层块引导字节
	ErrUnknownBlockIntroducer = errors.New("unknown block introducer")
	// ErrUnexpectedEndOfData 数据在块或位流中途被截断
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	// ErrPaletteIndexOutOfRange 调色板索引超出颜色表范围
	ErrPaletteIndexOutOfRange = errors.New("palette index out of range")
	// ErrDictionaryOverflow LZW编码引用了尚未创建的字典条目
	ErrDictionaryOverflow = errors.New("lzw dictionary overflow")
	// ErrUnsupportedFeature 遇到不支持的特性, 例如隔行扫描图像
	ErrUnsupportedFeature = errors.New("unsupported feature")
)

// Version GIF版本
type Version int

const (
	// Version87a GIF87a版本
	Version87a Version = 0
	// Version89a GIF89a版本
	Version89a Version = 1
)

// DisposalMethod 帧处置方式
type DisposalMethod int

const (
	// DisposalNone 未指定处置方式
	DisposalNone DisposalMethod = 0
	// DisposalDoNotDispose 保留当前帧内容
	DisposalDoNotDispose DisposalMethod = 1
	// DisposalRestoreBackground 恢复为背景色
	DisposalRestoreBackground DisposalMethod = 2
	// DisposalRestorePrevious 恢复为前一帧内容
	DisposalRestorePrevious DisposalMethod = 3
)
