// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import "trippygl.org/internal/gl"

// BlendEquation combines the source and destination terms of blending.
type BlendEquation uint8

// BlendFactor scales a source or destination term of blending.
type BlendFactor uint8

// CompareFunction is a depth or stencil test.
type CompareFunction uint8

// StencilOp is the action taken on the stencil buffer after a test.
type StencilOp uint8

const (
	BlendAdd BlendEquation = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorConstantColor
	FactorOneMinusConstantColor
	FactorConstantAlpha
	FactorOneMinusConstantAlpha
	FactorSrcAlphaSaturate
)

const (
	CompareNever CompareFunction = iota
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
	CompareAlways
)

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrement
	StencilIncrementWrap
	StencilDecrement
	StencilDecrementWrap
	StencilInvert
)

// BlendState describes how fragment colors combine with the framebuffer.
type BlendState struct {
	Enabled bool

	EquationRGB   BlendEquation
	EquationAlpha BlendEquation
	SourceRGB     BlendFactor
	DestRGB       BlendFactor
	SourceAlpha   BlendFactor
	DestAlpha     BlendFactor
	// Color is the constant color used by the FactorConstant factors.
	Color [4]float32
}

// DepthState describes the depth test.
type DepthState struct {
	TestingEnabled bool
	Function       CompareFunction
	WriteEnabled   bool
	// Near and Far map normalized device depth to window depth.
	Near, Far  float32
	ClearDepth float32
}

// StencilFace is the stencil configuration of front or back faces.
type StencilFace struct {
	Function  CompareFunction
	Ref       int
	Mask      uint32
	Fail      StencilOp
	DepthFail StencilOp
	Pass      StencilOp
	WriteMask uint32
}

// StencilState describes the stencil test.
type StencilState struct {
	Enabled    bool
	Front      StencilFace
	Back       StencilFace
	ClearValue int
}

var (
	// BlendOpaque disables blending.
	BlendOpaque = BlendState{
		EquationRGB:   BlendAdd,
		EquationAlpha: BlendAdd,
		SourceRGB:     FactorOne,
		DestRGB:       FactorZero,
		SourceAlpha:   FactorOne,
		DestAlpha:     FactorZero,
	}
	// BlendAlpha blends non-premultiplied colors by source alpha.
	BlendAlpha = BlendState{
		Enabled:       true,
		EquationRGB:   BlendAdd,
		EquationAlpha: BlendAdd,
		SourceRGB:     FactorSrcAlpha,
		DestRGB:       FactorOneMinusSrcAlpha,
		SourceAlpha:   FactorOne,
		DestAlpha:     FactorOneMinusSrcAlpha,
	}
	// BlendPremultiplied blends premultiplied colors.
	BlendPremultiplied = BlendState{
		Enabled:       true,
		EquationRGB:   BlendAdd,
		EquationAlpha: BlendAdd,
		SourceRGB:     FactorOne,
		DestRGB:       FactorOneMinusSrcAlpha,
		SourceAlpha:   FactorOne,
		DestAlpha:     FactorOneMinusSrcAlpha,
	}
	BlendAdditive = BlendState{
		Enabled:       true,
		EquationRGB:   BlendAdd,
		EquationAlpha: BlendAdd,
		SourceRGB:     FactorSrcAlpha,
		DestRGB:       FactorOne,
		SourceAlpha:   FactorSrcAlpha,
		DestAlpha:     FactorOne,
	}
	BlendSubtractive = BlendState{
		Enabled:       true,
		EquationRGB:   BlendReverseSubtract,
		EquationAlpha: BlendReverseSubtract,
		SourceRGB:     FactorSrcAlpha,
		DestRGB:       FactorOne,
		SourceAlpha:   FactorSrcAlpha,
		DestAlpha:     FactorOne,
	}

	// DepthNone disables depth testing and writing.
	DepthNone = DepthState{Function: CompareLess, Near: 0, Far: 1, ClearDepth: 1}
	// DepthDefault keeps fragments closer than the stored depth.
	DepthDefault = DepthState{
		TestingEnabled: true,
		Function:       CompareLess,
		WriteEnabled:   true,
		Near:           0,
		Far:            1,
		ClearDepth:     1,
	}
	// DepthLessOrEqual is DepthDefault but keeps fragments at equal depth.
	DepthLessOrEqual = DepthState{
		TestingEnabled: true,
		Function:       CompareLessOrEqual,
		WriteEnabled:   true,
		Near:           0,
		Far:            1,
		ClearDepth:     1,
	}
	// DepthReadOnly tests against but never writes the depth buffer.
	DepthReadOnly = DepthState{
		TestingEnabled: true,
		Function:       CompareLessOrEqual,
		Near:           0,
		Far:            1,
		ClearDepth:     1,
	}

	StencilDisabled = StencilState{
		Front: defaultStencilFace,
		Back:  defaultStencilFace,
	}
)

var defaultStencilFace = StencilFace{
	Function:  CompareAlways,
	Mask:      ^uint32(0),
	Fail:      StencilKeep,
	DepthFail: StencilKeep,
	Pass:      StencilKeep,
	WriteMask: ^uint32(0),
}

// NewStencilState returns an enabled stencil state with the same settings
// for front and back faces.
func NewStencilState(face StencilFace) StencilState {
	return StencilState{Enabled: true, Front: face, Back: face}
}

func (s BlendState) params() blendParams {
	return blendParams{
		eqRGB:  s.EquationRGB.glEnum(),
		eqA:    s.EquationAlpha.glEnum(),
		srcRGB: s.SourceRGB.glEnum(),
		dstRGB: s.DestRGB.glEnum(),
		srcA:   s.SourceAlpha.glEnum(),
		dstA:   s.DestAlpha.glEnum(),
		color:  s.Color,
	}
}

func (s DepthState) params() depthParams {
	return depthParams{
		fn:         s.Function.glEnum(),
		mask:       s.WriteEnabled,
		near:       s.Near,
		far:        s.Far,
		clearDepth: s.ClearDepth,
	}
}

func (f StencilFace) params() stencilParams {
	return stencilParams{
		fn:        f.Function.glEnum(),
		ref:       f.Ref,
		mask:      f.Mask,
		sfail:     f.Fail.glEnum(),
		dpfail:    f.DepthFail.glEnum(),
		dppass:    f.Pass.glEnum(),
		writeMask: f.WriteMask,
	}
}

func (e BlendEquation) glEnum() gl.Enum {
	switch e {
	case BlendAdd:
		return gl.FUNC_ADD
	case BlendSubtract:
		return gl.FUNC_SUBTRACT
	case BlendReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case BlendMin:
		return gl.MIN
	case BlendMax:
		return gl.MAX
	default:
		panic("unknown blend equation")
	}
}

func (f BlendFactor) glEnum() gl.Enum {
	switch f {
	case FactorZero:
		return gl.ZERO
	case FactorOne:
		return gl.ONE
	case FactorSrcColor:
		return gl.SRC_COLOR
	case FactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case FactorDstColor:
		return gl.DST_COLOR
	case FactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case FactorSrcAlpha:
		return gl.SRC_ALPHA
	case FactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case FactorDstAlpha:
		return gl.DST_ALPHA
	case FactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case FactorConstantColor:
		return gl.CONSTANT_COLOR
	case FactorOneMinusConstantColor:
		return gl.ONE_MINUS_CONSTANT_COLOR
	case FactorConstantAlpha:
		return gl.CONSTANT_ALPHA
	case FactorOneMinusConstantAlpha:
		return gl.ONE_MINUS_CONSTANT_ALPHA
	case FactorSrcAlphaSaturate:
		return gl.SRC_ALPHA_SATURATE
	default:
		panic("unknown blend factor")
	}
}

func (f CompareFunction) glEnum() gl.Enum {
	switch f {
	case CompareNever:
		return gl.NEVER
	case CompareLess:
		return gl.LESS
	case CompareEqual:
		return gl.EQUAL
	case CompareLessOrEqual:
		return gl.LEQUAL
	case CompareGreater:
		return gl.GREATER
	case CompareNotEqual:
		return gl.NOTEQUAL
	case CompareGreaterOrEqual:
		return gl.GEQUAL
	case CompareAlways:
		return gl.ALWAYS
	default:
		panic("unknown compare function")
	}
}

func (o StencilOp) glEnum() gl.Enum {
	switch o {
	case StencilKeep:
		return gl.KEEP
	case StencilZero:
		return gl.ZERO
	case StencilReplace:
		return gl.REPLACE
	case StencilIncrement:
		return gl.INCR
	case StencilIncrementWrap:
		return gl.INCR_WRAP
	case StencilDecrement:
		return gl.DECR
	case StencilDecrementWrap:
		return gl.DECR_WRAP
	case StencilInvert:
		return gl.INVERT
	default:
		panic("unknown stencil op")
	}
}
